package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reforma-dev/reforma/db"
	"github.com/reforma-dev/reforma/internal/models"
	"gorm.io/gorm"
)

type CreateVendorRequest struct {
	Nome     string `json:"nome"`
	CpfCnpj  string `json:"cpf_cnpj"`
	Contato  string `json:"contato"`
	Endereco string `json:"endereco"`
}

type UpdateVendorRequest struct {
	Nome     *string `json:"nome"`
	CpfCnpj  *string `json:"cpf_cnpj"`
	Contato  *string `json:"contato"`
	Endereco *string `json:"endereco"`
}

func CreateVendor(ctx *gin.Context) {
	var req CreateVendorRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	if req.Nome == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios ausentes: nome"})
		return
	}

	vendor := models.Vendor{
		Nome:     req.Nome,
		CpfCnpj:  req.CpfCnpj,
		Contato:  req.Contato,
		Endereco: req.Endereco,
	}

	if err := db.DB.Create(&vendor).Error; err != nil {
		log.Printf("Failed to create vendor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Fornecedor criado com sucesso",
		"vendor":  vendor,
	})
}

func ListVendors(ctx *gin.Context) {
	page, limit := paginationParams(ctx)

	query := db.DB.Model(&models.Vendor{})

	if search := ctx.Query("search"); search != "" {
		query = searchClause(query, search, "nome", "cpf_cnpj", "contato")
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count vendors: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	var vendors []models.Vendor

	if err := query.Order("nome ASC").Offset((page - 1) * limit).Limit(limit).Find(&vendors).Error; err != nil {
		log.Printf("Failed to list vendors: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	if vendors == nil {
		vendors = []models.Vendor{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"vendors":    vendors,
		"pagination": newPagination(total, page, limit),
	})
}

func GetVendor(ctx *gin.Context) {
	var vendor models.Vendor

	if err := db.DB.First(&vendor, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Fornecedor não encontrado"})
		} else {
			log.Printf("Failed to fetch vendor: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

func UpdateVendor(ctx *gin.Context) {
	var req UpdateVendorRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida"})
		return
	}

	var vendor models.Vendor

	if err := db.DB.First(&vendor, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Fornecedor não encontrado"})
		} else {
			log.Printf("Failed to fetch vendor: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if req.Nome != nil {
		if *req.Nome == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nome não pode ser vazio"})
			return
		}
		vendor.Nome = *req.Nome
	}

	if req.CpfCnpj != nil {
		vendor.CpfCnpj = *req.CpfCnpj
	}

	if req.Contato != nil {
		vendor.Contato = *req.Contato
	}

	if req.Endereco != nil {
		vendor.Endereco = *req.Endereco
	}

	if err := db.DB.Save(&vendor).Error; err != nil {
		log.Printf("Failed to update vendor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Fornecedor atualizado com sucesso",
		"vendor":  vendor,
	})
}

func DeleteVendor(ctx *gin.Context) {
	var vendor models.Vendor

	if err := db.DB.First(&vendor, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Fornecedor não encontrado"})
		} else {
			log.Printf("Failed to fetch vendor: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
		return
	}

	if err := db.DB.Delete(&vendor).Error; err != nil {
		log.Printf("Failed to delete vendor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Fornecedor excluído com sucesso"})
}
