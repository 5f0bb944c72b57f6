package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reforma-dev/reforma/db"
	"github.com/reforma-dev/reforma/internal/models"
	"github.com/reforma-dev/reforma/internal/types"
	"gorm.io/gorm"
)

type MaterialItemRequest struct {
	MaterialID uint `json:"material_id"`
	Quantidade int  `json:"quantidade"`
}

type CreateWorkOrderRequest struct {
	ProjectID          uint                  `json:"project_id"`
	Titulo             string                `json:"titulo"`
	Descricao          string                `json:"descricao"`
	TipoServico        string                `json:"tipo_servico"`
	DataPrevistaInicio string                `json:"data_prevista_inicio"`
	DataPrevistaFim    string                `json:"data_prevista_fim"`
	ResponsavelID      *uint                 `json:"responsavel_id"`
	CustoEstimado      float64               `json:"custo_estimado"`
	Materiais          []MaterialItemRequest `json:"materiais"`
}

type UpdateWorkOrderRequest struct {
	Titulo             *string  `json:"titulo"`
	Descricao          *string  `json:"descricao"`
	TipoServico        *string  `json:"tipo_servico"`
	Status             *string  `json:"status"`
	DataPrevistaInicio *string  `json:"data_prevista_inicio"`
	DataPrevistaFim    *string  `json:"data_prevista_fim"`
	ResponsavelID      *uint    `json:"responsavel_id"`
	CustoEstimado      *float64 `json:"custo_estimado"`
	CustoReal          *float64 `json:"custo_real"`
}

type WorkOrderStats struct {
	TotalCheckpoints      int     `json:"total_checkpoints"`
	CheckpointsConcluidos int     `json:"checkpoints_concluidos"`
	TotalMateriais        int     `json:"total_materiais"`
	CustoMateriais        float64 `json:"custo_materiais"`
}

func responsavelExists(id uint) (bool, error) {
	var user models.User

	err := db.DB.First(&user, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	return err == nil, err
}

func CreateWorkOrder(ctx *gin.Context) {
	var req CreateWorkOrderRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	if req.Titulo == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios ausentes: titulo"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Projeto não encontrado"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.ResponsavelID != nil {
		exists, err := responsavelExists(*req.ResponsavelID)
		if err != nil {
			log.Printf("Failed to fetch responsavel: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
			return
		}
		if !exists {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Responsável não encontrado"})
			return
		}
	}

	dataPrevistaInicio, err := parseDate(req.DataPrevistaInicio)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dataPrevistaFim, err := parseDate(req.DataPrevistaFim)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workOrder := models.WorkOrder{
		ProjectID:          project.ID,
		Titulo:             req.Titulo,
		Descricao:          req.Descricao,
		TipoServico:        req.TipoServico,
		Status:             types.WorkOrderPlanejada,
		DataAbertura:       time.Now(),
		DataPrevistaInicio: dataPrevistaInicio,
		DataPrevistaFim:    dataPrevistaFim,
		ResponsavelID:      req.ResponsavelID,
		CustoEstimado:      req.CustoEstimado,
	}

	if err := db.DB.Create(&workOrder).Error; err != nil {
		log.Printf("Failed to create work order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	// Consume requested materials, costed at the current unit cost.
	// Unknown material IDs are skipped.
	for _, item := range req.Materiais {
		var material models.Material

		if err := db.DB.First(&material, item.MaterialID).Error; err != nil {
			continue
		}

		usage := models.MaterialUsage{
			WorkOrderID: workOrder.ID,
			MaterialID:  material.ID,
			Quantidade:  item.Quantidade,
			CustoTotal:  material.CustoUnitario * float64(item.Quantidade),
		}

		if err := db.DB.Create(&usage).Error; err != nil {
			log.Printf("Failed to record material usage: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
			return
		}
	}

	if err := db.DB.Preload("Project").Preload("Responsavel").Preload("MaterialUsages.Material").First(&workOrder, workOrder.ID).Error; err != nil {
		log.Printf("Failed to reload work order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "Ordem de serviço criada com sucesso",
		"work_order": workOrder,
	})
}

func ListWorkOrders(ctx *gin.Context) {
	page, limit := paginationParams(ctx)

	query := db.DB.Model(&models.WorkOrder{})

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if projectID := ctx.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	if responsavelID := ctx.Query("responsavel_id"); responsavelID != "" {
		query = query.Where("responsavel_id = ?", responsavelID)
	}

	if search := ctx.Query("search"); search != "" {
		query = searchClause(query, search, "titulo", "descricao", "tipo_servico")
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count work orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	var workOrders []models.WorkOrder

	err := query.
		Preload("Project").
		Preload("Responsavel").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&workOrders).Error

	if err != nil {
		log.Printf("Failed to list work orders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if workOrders == nil {
		workOrders = []models.WorkOrder{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"work_orders": workOrders,
		"pagination":  newPagination(total, page, limit),
	})
}

func GetWorkOrder(ctx *gin.Context) {
	var workOrder models.WorkOrder

	err := db.DB.
		Preload("Project").
		Preload("Responsavel").
		Preload("Checkpoints").
		Preload("MaterialUsages.Material").
		First(&workOrder, "id = ?", ctx.Param("id")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ordem de serviço não encontrada"})
		} else {
			log.Printf("Failed to fetch work order: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"work_order": workOrder})
}

func UpdateWorkOrder(ctx *gin.Context) {
	var req UpdateWorkOrderRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var workOrder models.WorkOrder

	if err := db.DB.First(&workOrder, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ordem de serviço não encontrada"})
		} else {
			log.Printf("Failed to fetch work order: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.Titulo != nil {
		if *req.Titulo == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Título não pode ser vazio"})
			return
		}
		workOrder.Titulo = *req.Titulo
	}

	if req.Status != nil {
		if !types.IsValidWorkOrderStatus(*req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido"})
			return
		}
		workOrder.Status = *req.Status
	}

	if req.ResponsavelID != nil {
		exists, err := responsavelExists(*req.ResponsavelID)
		if err != nil {
			log.Printf("Failed to fetch responsavel: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
			return
		}
		if !exists {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Responsável não encontrado"})
			return
		}
		workOrder.ResponsavelID = req.ResponsavelID
	}

	if req.Descricao != nil {
		workOrder.Descricao = *req.Descricao
	}

	if req.TipoServico != nil {
		workOrder.TipoServico = *req.TipoServico
	}

	if req.DataPrevistaInicio != nil {
		parsed, err := parseDate(*req.DataPrevistaInicio)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		workOrder.DataPrevistaInicio = parsed
	}

	if req.DataPrevistaFim != nil {
		parsed, err := parseDate(*req.DataPrevistaFim)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		workOrder.DataPrevistaFim = parsed
	}

	if req.CustoEstimado != nil {
		workOrder.CustoEstimado = *req.CustoEstimado
	}

	if req.CustoReal != nil {
		workOrder.CustoReal = *req.CustoReal
	}

	if err := db.DB.Save(&workOrder).Error; err != nil {
		log.Printf("Failed to update work order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if err := db.DB.Preload("Project").Preload("Responsavel").First(&workOrder, workOrder.ID).Error; err != nil {
		log.Printf("Failed to reload work order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Ordem de serviço atualizada com sucesso",
		"work_order": workOrder,
	})
}

func DeleteWorkOrder(ctx *gin.Context) {
	var workOrder models.WorkOrder

	if err := db.DB.First(&workOrder, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ordem de serviço não encontrada"})
		} else {
			log.Printf("Failed to fetch work order: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if err := db.DB.Delete(&workOrder).Error; err != nil {
		log.Printf("Failed to delete work order: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Ordem de serviço excluída com sucesso"})
}

func GetWorkOrderStats(ctx *gin.Context) {
	var workOrder models.WorkOrder

	err := db.DB.
		Preload("Checkpoints").
		Preload("MaterialUsages").
		First(&workOrder, "id = ?", ctx.Param("id")).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ordem de serviço não encontrada"})
		} else {
			log.Printf("Failed to fetch work order: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	stats := WorkOrderStats{
		TotalCheckpoints: len(workOrder.Checkpoints),
		TotalMateriais:   len(workOrder.MaterialUsages),
	}

	for _, checkpoint := range workOrder.Checkpoints {
		if checkpoint.Concluido {
			stats.CheckpointsConcluidos++
		}
	}

	for _, usage := range workOrder.MaterialUsages {
		stats.CustoMateriais += usage.CustoTotal
	}

	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}
