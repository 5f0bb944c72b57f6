package models

import "time"

type Project struct {
	BaseModel

	Nome            string     `gorm:"not null" json:"nome"`
	Endereco        string     `gorm:"type:text" json:"endereco"`
	Descricao       string     `gorm:"type:text" json:"descricao"`
	Cliente         string     `json:"cliente"`
	Status          string     `gorm:"not null;default:planejado" json:"status"`
	DataInicio      *time.Time `json:"data_inicio"`
	DataPrevisaoFim *time.Time `json:"data_previsao_fim"`

	// Relationships
	WorkOrders []WorkOrder `gorm:"foreignKey:ProjectID" json:"-"`
}
