package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"nome":        "Reforma X",
		"cliente":     "Construtora Alfa",
		"data_inicio": "2025-03-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	project := body["project"].(map[string]interface{})
	assert.Equal(t, "Reforma X", project["nome"])
	assert.Equal(t, "planejado", project["status"], "status should default to planejado")
	assert.NotNil(t, project["data_inicio"])
}

func TestCreateProjectMissingName(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{"cliente": "Alfa"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProjectInvalidDate(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"nome":        "Reforma X",
		"data_inicio": "01/03/2025",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProjectForbiddenForViewer(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "viewer@x.com", "visualizador")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{"nome": "Reforma X"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetProjectNotFound(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "viewer@x.com", "visualizador")

	w := doRequest(t, r, http.MethodGet, "/api/projects/9999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Projeto não encontrado", body["error"])
}

func TestListProjectsPagination(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	for i := 0; i < 12; i++ {
		createProject(t, r, token, fmt.Sprintf("Projeto %02d", i))
	}

	w := doRequest(t, r, http.MethodGet, "/api/projects?page=3&limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	projects := body["projects"].([]interface{})
	pagination := body["pagination"].(map[string]interface{})

	assert.Len(t, projects, 2, "third page of 12 items with limit 5")
	assert.Equal(t, float64(12), pagination["total"])
	assert.Equal(t, float64(3), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
	assert.Equal(t, float64(3), pagination["pages"])
}

func TestListProjectsStatusFilter(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	id := createProject(t, r, token, "Em obra")
	createProject(t, r, token, "Parado")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), token, gin.H{"status": "em_andamento"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := doRequest(t, r, http.MethodGet, "/api/projects?status=em_andamento", token, nil)
	require.Equal(t, http.StatusOK, list.Code)

	body := decodeBody(t, list)
	projects := body["projects"].([]interface{})
	require.Len(t, projects, 1)
	assert.Equal(t, "Em obra", projects[0].(map[string]interface{})["nome"])
}

func TestListProjectsSearch(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"nome":    "Cobertura",
		"cliente": "Construtora BETA",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	createProject(t, r, token, "Fachada")

	list := doRequest(t, r, http.MethodGet, "/api/projects?search=beta", token, nil)
	require.Equal(t, http.StatusOK, list.Code)

	body := decodeBody(t, list)
	projects := body["projects"].([]interface{})
	require.Len(t, projects, 1, "case-insensitive match on cliente")
	assert.Equal(t, "Cobertura", projects[0].(map[string]interface{})["nome"])
}

func TestUpdateProjectPartial(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"nome":     "Reforma X",
		"cliente":  "Alfa",
		"endereco": "Rua A, 10",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeBody(t, w)["project"].(map[string]interface{})["id"].(float64))

	update := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), token, gin.H{"cliente": "Beta"})
	require.Equal(t, http.StatusOK, update.Code, update.Body.String())

	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil)
	project := decodeBody(t, get)["project"].(map[string]interface{})

	assert.Equal(t, "Beta", project["cliente"])
	assert.Equal(t, "Reforma X", project["nome"], "omitted field must not change")
	assert.Equal(t, "Rua A, 10", project["endereco"], "omitted field must not change")
}

func TestUpdateProjectEmptyBodyIsNoOp(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	id := createProject(t, r, token, "Reforma X")

	before := decodeBody(t, doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil))["project"].(map[string]interface{})

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	after := decodeBody(t, doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil))["project"].(map[string]interface{})

	for _, field := range []string{"nome", "endereco", "descricao", "cliente", "status", "data_inicio", "data_previsao_fim"} {
		assert.Equal(t, before[field], after[field], "field %s must survive an empty update", field)
	}
}

func TestUpdateProjectClearsFieldWithEmptyString(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"nome":     "Reforma X",
		"endereco": "Rua A, 10",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeBody(t, w)["project"].(map[string]interface{})["id"].(float64))

	update := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), token, gin.H{"endereco": ""})
	require.Equal(t, http.StatusOK, update.Code)

	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil)
	project := decodeBody(t, get)["project"].(map[string]interface{})
	assert.Equal(t, "", project["endereco"])
}

func TestUpdateProjectNotFound(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "gestor@x.com", "gestor")

	w := doRequest(t, r, http.MethodPut, "/api/projects/9999", token, gin.H{"nome": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")

	id := createProject(t, r, token, "Reforma X")

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestDeleteProjectWithWorkOrdersRestricted(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")

	id := createProject(t, r, token, "Reforma X")
	createWorkOrder(t, r, token, id, nil)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil)
	assert.Equal(t, http.StatusOK, get.Code, "project must survive a restricted delete")
}

func TestDeleteProjectForbiddenForGestor(t *testing.T) {
	r := setupTest(t)
	gestor := registerUser(t, r, "gestor@x.com", "gestor")

	id := createProject(t, r, gestor, "Reforma X")

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), gestor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectStats(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")

	id := createProject(t, r, token, "Reforma X")
	createWorkOrder(t, r, token, id, gin.H{"titulo": "Pintura", "custo_estimado": 10.00})
	createWorkOrder(t, r, token, id, gin.H{"titulo": "Elétrica", "custo_estimado": 20.50})

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/stats", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stats := decodeBody(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_work_orders"])
	assert.InDelta(t, 30.50, stats["total_custo_estimado"].(float64), 0.001)
	assert.InDelta(t, 0.0, stats["total_custo_real"].(float64), 0.001)

	byStatus := stats["work_orders_by_status"].(map[string]interface{})
	assert.Equal(t, float64(2), byStatus["planejada"])
	assert.Len(t, byStatus, 1, "only statuses actually present are keys")
}

func TestProjectStatsNotFound(t *testing.T) {
	r := setupTest(t)
	token := registerUser(t, r, "admin@x.com", "admin")

	w := doRequest(t, r, http.MethodGet, "/api/projects/9999/stats", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
