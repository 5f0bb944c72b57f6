package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reforma-dev/reforma/db"
	"github.com/reforma-dev/reforma/internal/models"
	"github.com/reforma-dev/reforma/internal/types"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Nome            string `json:"nome"`
	Endereco        string `json:"endereco"`
	Descricao       string `json:"descricao"`
	Cliente         string `json:"cliente"`
	DataInicio      string `json:"data_inicio"`
	DataPrevisaoFim string `json:"data_previsao_fim"`
}

// UpdateProjectRequest distinguishes omitted fields (nil) from fields
// provided as empty, so callers can clear a value.
type UpdateProjectRequest struct {
	Nome            *string `json:"nome"`
	Endereco        *string `json:"endereco"`
	Descricao       *string `json:"descricao"`
	Cliente         *string `json:"cliente"`
	Status          *string `json:"status"`
	DataInicio      *string `json:"data_inicio"`
	DataPrevisaoFim *string `json:"data_previsao_fim"`
}

type ProjectStats struct {
	TotalWorkOrders    int            `json:"total_work_orders"`
	WorkOrdersByStatus map[string]int `json:"work_orders_by_status"`
	TotalCustoEstimado float64        `json:"total_custo_estimado"`
	TotalCustoReal     float64        `json:"total_custo_real"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	if req.Nome == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios ausentes: nome"})
		return
	}

	dataInicio, err := parseDate(req.DataInicio)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataPrevisaoFim, err := parseDate(req.DataPrevisaoFim)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := models.Project{
		Nome:            req.Nome,
		Endereco:        req.Endereco,
		Descricao:       req.Descricao,
		Cliente:         req.Cliente,
		Status:          types.ProjectPlanejado,
		DataInicio:      dataInicio,
		DataPrevisaoFim: dataPrevisaoFim,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Projeto criado com sucesso",
		"project": project,
	})
}

func ListProjects(ctx *gin.Context) {
	page, limit := paginationParams(ctx)

	query := db.DB.Model(&models.Project{})

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if search := ctx.Query("search"); search != "" {
		query = searchClause(query, search, "nome", "cliente", "endereco")
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	var projects []models.Project

	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"projects":   projects,
		"pagination": newPagination(total, page, limit),
	})
}

func GetProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": project})
}

func UpdateProject(ctx *gin.Context) {
	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.Nome != nil {
		if *req.Nome == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nome não pode ser vazio"})
			return
		}
		project.Nome = *req.Nome
	}

	if req.Status != nil {
		if !types.IsValidProjectStatus(*req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido"})
			return
		}
		project.Status = *req.Status
	}

	if req.Endereco != nil {
		project.Endereco = *req.Endereco
	}

	if req.Descricao != nil {
		project.Descricao = *req.Descricao
	}

	if req.Cliente != nil {
		project.Cliente = *req.Cliente
	}

	if req.DataInicio != nil {
		parsed, err := parseDate(*req.DataInicio)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		project.DataInicio = parsed
	}

	if req.DataPrevisaoFim != nil {
		parsed, err := parseDate(*req.DataPrevisaoFim)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		project.DataPrevisaoFim = parsed
	}

	if err := db.DB.Save(&project).Error; err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Projeto atualizado com sucesso",
		"project": project,
	})
}

func DeleteProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	var workOrderCount int64

	if err := db.DB.Model(&models.WorkOrder{}).Where("project_id = ?", project.ID).Count(&workOrderCount).Error; err != nil {
		log.Printf("Failed to count work orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if workOrderCount > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Não é possível excluir projeto com ordens de serviço associadas"})
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Projeto excluído com sucesso"})
}

func GetProjectStats(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.First(&project, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	var workOrders []models.WorkOrder

	if err := db.DB.Where("project_id = ?", project.ID).Find(&workOrders).Error; err != nil {
		log.Printf("Failed to fetch work orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	stats := ProjectStats{
		TotalWorkOrders:    len(workOrders),
		WorkOrdersByStatus: map[string]int{},
	}

	for _, wo := range workOrders {
		stats.WorkOrdersByStatus[wo.Status]++
		stats.TotalCustoEstimado += wo.CustoEstimado
		stats.TotalCustoReal += wo.CustoReal
	}

	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}
