package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/reforma-dev/reforma/db"
	"github.com/reforma-dev/reforma/internal/models"
	"gorm.io/gorm"
)

type CreateMaterialRequest struct {
	Nome          string  `json:"nome"`
	Unidade       string  `json:"unidade"`
	CustoUnitario float64 `json:"custo_unitario"`
	Estoque       int     `json:"estoque"`
}

type UpdateMaterialRequest struct {
	Nome          *string  `json:"nome"`
	Unidade       *string  `json:"unidade"`
	CustoUnitario *float64 `json:"custo_unitario"`
	Estoque       *int     `json:"estoque"`
}

type UpdateStockRequest struct {
	Quantidade int `json:"quantidade"`
}

func CreateMaterial(ctx *gin.Context) {
	var req CreateMaterialRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var missing []string
	if req.Nome == "" {
		missing = append(missing, "nome")
	}
	if req.Unidade == "" {
		missing = append(missing, "unidade")
	}
	if len(missing) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios ausentes: " + strings.Join(missing, ", ")})
		return
	}

	material := models.Material{
		Nome:          req.Nome,
		Unidade:       req.Unidade,
		CustoUnitario: req.CustoUnitario,
		Estoque:       req.Estoque,
	}

	if err := db.DB.Create(&material).Error; err != nil {
		log.Printf("Failed to create material: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Material criado com sucesso",
		"material": material,
	})
}

func ListMaterials(ctx *gin.Context) {
	page, limit := paginationParams(ctx)

	query := db.DB.Model(&models.Material{})

	if search := ctx.Query("search"); search != "" {
		query = searchClause(query, search, "nome", "unidade")
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count materials: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	var materials []models.Material

	if err := query.Order("nome ASC").Offset((page - 1) * limit).Limit(limit).Find(&materials).Error; err != nil {
		log.Printf("Failed to list materials: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if materials == nil {
		materials = []models.Material{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"materials":  materials,
		"pagination": newPagination(total, page, limit),
	})
}

func GetMaterial(ctx *gin.Context) {
	var material models.Material

	if err := db.DB.Preload("Usages").First(&material, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Material não encontrado"})
		} else {
			log.Printf("Failed to fetch material: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"material": material})
}

func UpdateMaterial(ctx *gin.Context) {
	var req UpdateMaterialRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var material models.Material

	if err := db.DB.First(&material, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Material não encontrado"})
		} else {
			log.Printf("Failed to fetch material: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.Nome != nil {
		if *req.Nome == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nome não pode ser vazio"})
			return
		}
		material.Nome = *req.Nome
	}

	if req.Unidade != nil {
		if *req.Unidade == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unidade não pode ser vazia"})
			return
		}
		material.Unidade = *req.Unidade
	}

	if req.CustoUnitario != nil {
		material.CustoUnitario = *req.CustoUnitario
	}

	if req.Estoque != nil {
		material.Estoque = *req.Estoque
	}

	if err := db.DB.Save(&material).Error; err != nil {
		log.Printf("Failed to update material: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Material atualizado com sucesso",
		"material": material,
	})
}

func DeleteMaterial(ctx *gin.Context) {
	var material models.Material

	if err := db.DB.First(&material, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Material não encontrado"})
		} else {
			log.Printf("Failed to fetch material: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if err := db.DB.Delete(&material).Error; err != nil {
		log.Printf("Failed to delete material: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Material excluído com sucesso"})
}

// UpdateStock adjusts the stock level by a signed delta.
func UpdateStock(ctx *gin.Context) {
	var req UpdateStockRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var material models.Material

	if err := db.DB.First(&material, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Material não encontrado"})
		} else {
			log.Printf("Failed to fetch material: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	newStock := material.Estoque + req.Quantidade

	if newStock < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Estoque insuficiente"})
		return
	}

	material.Estoque = newStock

	if err := db.DB.Save(&material).Error; err != nil {
		log.Printf("Failed to update stock: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Estoque atualizado com sucesso",
		"material": material,
	})
}
