package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMaterial(t *testing.T, r *gin.Engine, token string, nome string, estoque float64) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/materials", token, gin.H{
		"nome":           nome,
		"unidade":        "un",
		"custo_unitario": 10.0,
		"estoque":        estoque,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	material := decodeBody(t, w)["material"].(map[string]interface{})
	return uint(material["id"].(float64))
}

func TestCreateMaterialMissingFields(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")

	w := doRequest(t, r, http.MethodPost, "/api/materials", token, gin.H{"nome": "Cimento"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "unidade")
}

func TestMaterialStockAdjustment(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")
	id := createMaterial(t, r, token, "Cimento", 50)

	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/materials/%d/stock", id), token, gin.H{"quantidade": -20})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	material := decodeBody(t, w)["material"].(map[string]interface{})
	assert.Equal(t, float64(30), material["estoque"])

	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/materials/%d/stock", id), token, gin.H{"quantidade": 5})
	require.Equal(t, http.StatusOK, w.Code)
	material = decodeBody(t, w)["material"].(map[string]interface{})
	assert.Equal(t, float64(35), material["estoque"])
}

func TestMaterialStockInsufficient(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")
	id := createMaterial(t, r, token, "Areia", 10)

	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/materials/%d/stock", id), token, gin.H{"quantidade": -11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Estoque insuficiente", decodeBody(t, w)["error"])
}

func TestListMaterialsSearch(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")
	createMaterial(t, r, token, "Cimento CP-II", 10)
	createMaterial(t, r, token, "Areia fina", 10)

	w := doRequest(t, r, http.MethodGet, "/api/materials?search=cimento", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	materials := decodeBody(t, w)["materials"].([]interface{})
	require.Len(t, materials, 1)
	assert.Equal(t, "Cimento CP-II", materials[0].(map[string]interface{})["nome"])
}

func TestMaterialsForbiddenForViewer(t *testing.T) {
	r := setupTest(t)
	viewer := registerUser(t, r, "viewer@x.com", "visualizador")

	w := doRequest(t, r, http.MethodGet, "/api/materials", viewer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
