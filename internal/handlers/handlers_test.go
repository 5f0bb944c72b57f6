package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/reforma-dev/reforma/db"
	"github.com/reforma-dev/reforma/internal/auth"
	"github.com/reforma-dev/reforma/internal/config"
	"github.com/reforma-dev/reforma/internal/router"
)

const testSecret = "handlers-test-secret"

var testCounter int

// setupTest wires the full router against a fresh in-memory database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testCounter++
	name := strings.ReplaceAll(t.Name(), "/", "_") + fmt.Sprintf("_%d", testCounter)
	require.NoError(t, db.ConnectTestDatabase(name))

	cfg := &config.Config{
		Port:           "0",
		JWTSecret:      testSecret,
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	return router.NewRouter(cfg, tokens)
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// newRawTokenRequest sends the token without the "Bearer " scheme prefix.
func newRawTokenRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser creates a user through the API and returns its token.
func registerUser(t *testing.T, r *gin.Engine, email, role string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"nome":     "Usuário de Teste",
		"email":    email,
		"password": "senha123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok, "register response should carry a token")
	return token
}

// createProject creates a project via the API and returns its ID.
func createProject(t *testing.T, r *gin.Engine, token, nome string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{"nome": nome})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	project := body["project"].(map[string]interface{})
	return uint(project["id"].(float64))
}

// createWorkOrder creates a work order via the API and returns its ID.
func createWorkOrder(t *testing.T, r *gin.Engine, token string, projectID uint, payload gin.H) uint {
	t.Helper()

	if payload == nil {
		payload = gin.H{}
	}
	payload["project_id"] = projectID
	if _, ok := payload["titulo"]; !ok {
		payload["titulo"] = "Ordem de teste"
	}

	w := doRequest(t, r, http.MethodPost, "/api/work_orders", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	workOrder := body["work_order"].(map[string]interface{})
	return uint(workOrder["id"].(float64))
}
