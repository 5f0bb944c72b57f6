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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateCheckpointRequest struct {
	WorkOrderID uint           `json:"work_order_id"`
	Nome        string         `json:"nome"`
	Descricao   string         `json:"descricao"`
	Ordem       int            `json:"ordem"`
	Tipo        string         `json:"tipo"`
	PadraoJSON  datatypes.JSON `json:"padrao_json"`
}

type UpdateCheckpointRequest struct {
	Nome       *string        `json:"nome"`
	Descricao  *string        `json:"descricao"`
	Ordem      *int           `json:"ordem"`
	Tipo       *string        `json:"tipo"`
	PadraoJSON datatypes.JSON `json:"padrao_json"`
	Concluido  *bool          `json:"concluido"`
}

func CreateCheckpoint(ctx *gin.Context) {
	var req CreateCheckpointRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	if req.Nome == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios ausentes: nome"})
		return
	}

	var workOrder models.WorkOrder

	if err := db.DB.First(&workOrder, req.WorkOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ordem de serviço não encontrada"})
		} else {
			log.Printf("Failed to fetch work order: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.Ordem == 0 {
		req.Ordem = 1
	}

	if req.Tipo == "" {
		req.Tipo = types.CheckpointInspecao
	}

	if !types.IsValidCheckpointType(req.Tipo) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tipo inválido"})
		return
	}

	checkpoint := models.Checkpoint{
		WorkOrderID: workOrder.ID,
		Nome:        req.Nome,
		Descricao:   req.Descricao,
		Ordem:       req.Ordem,
		Tipo:        req.Tipo,
		PadraoJSON:  req.PadraoJSON,
	}

	if err := db.DB.Create(&checkpoint).Error; err != nil {
		log.Printf("Failed to create checkpoint: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "Checkpoint criado com sucesso",
		"checkpoint": checkpoint,
	})
}

func ListCheckpoints(ctx *gin.Context) {
	query := db.DB.Model(&models.Checkpoint{})

	if workOrderID := ctx.Query("work_order_id"); workOrderID != "" {
		query = query.Where("work_order_id = ?", workOrderID)
	}

	if tipo := ctx.Query("tipo"); tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}

	var checkpoints []models.Checkpoint

	if err := query.Order("ordem ASC, created_at ASC").Find(&checkpoints).Error; err != nil {
		log.Printf("Failed to list checkpoints: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if checkpoints == nil {
		checkpoints = []models.Checkpoint{}
	}

	ctx.JSON(http.StatusOK, gin.H{"checkpoints": checkpoints})
}

func GetCheckpoint(ctx *gin.Context) {
	var checkpoint models.Checkpoint

	if err := db.DB.First(&checkpoint, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Checkpoint não encontrado"})
		} else {
			log.Printf("Failed to fetch checkpoint: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"checkpoint": checkpoint})
}

func UpdateCheckpoint(ctx *gin.Context) {
	var req UpdateCheckpointRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var checkpoint models.Checkpoint

	if err := db.DB.First(&checkpoint, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Checkpoint não encontrado"})
		} else {
			log.Printf("Failed to fetch checkpoint: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.Nome != nil {
		if *req.Nome == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nome não pode ser vazio"})
			return
		}
		checkpoint.Nome = *req.Nome
	}

	if req.Tipo != nil {
		if !types.IsValidCheckpointType(*req.Tipo) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tipo inválido"})
			return
		}
		checkpoint.Tipo = *req.Tipo
	}

	if req.Descricao != nil {
		checkpoint.Descricao = *req.Descricao
	}

	if req.Ordem != nil {
		checkpoint.Ordem = *req.Ordem
	}

	if req.PadraoJSON != nil {
		checkpoint.PadraoJSON = req.PadraoJSON
	}

	if req.Concluido != nil {
		// Stamp or clear the completion date as the flag flips.
		if *req.Concluido && !checkpoint.Concluido {
			now := time.Now()
			checkpoint.DataConclusao = &now
		} else if !*req.Concluido && checkpoint.Concluido {
			checkpoint.DataConclusao = nil
		}
		checkpoint.Concluido = *req.Concluido
	}

	if err := db.DB.Save(&checkpoint).Error; err != nil {
		log.Printf("Failed to update checkpoint: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Checkpoint atualizado com sucesso",
		"checkpoint": checkpoint,
	})
}

func DeleteCheckpoint(ctx *gin.Context) {
	var checkpoint models.Checkpoint

	if err := db.DB.First(&checkpoint, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Checkpoint não encontrado"})
		} else {
			log.Printf("Failed to fetch checkpoint: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if err := db.DB.Delete(&checkpoint).Error; err != nil {
		log.Printf("Failed to delete checkpoint: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Checkpoint excluído com sucesso"})
}

func CompleteCheckpoint(ctx *gin.Context) {
	var checkpoint models.Checkpoint

	if err := db.DB.First(&checkpoint, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Checkpoint não encontrado"})
		} else {
			log.Printf("Failed to fetch checkpoint: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if checkpoint.Concluido {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Checkpoint já está concluído"})
		return
	}

	now := time.Now()
	checkpoint.Concluido = true
	checkpoint.DataConclusao = &now

	if err := db.DB.Save(&checkpoint).Error; err != nil {
		log.Printf("Failed to complete checkpoint: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Checkpoint concluído com sucesso",
		"checkpoint": checkpoint,
	})
}
