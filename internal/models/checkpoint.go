package models

import (
	"time"

	"gorm.io/datatypes"
)

type Checkpoint struct {
	BaseModel

	WorkOrderID   uint           `gorm:"not null;index" json:"work_order_id"`
	Nome          string         `gorm:"not null" json:"nome"`
	Descricao     string         `gorm:"type:text" json:"descricao"`
	Ordem         int            `gorm:"not null;default:1" json:"ordem"`
	Tipo          string         `gorm:"not null;default:inspecao" json:"tipo"`
	PadraoJSON    datatypes.JSON `json:"padrao_json"`
	Concluido     bool           `gorm:"not null;default:false" json:"concluido"`
	DataConclusao *time.Time     `json:"data_conclusao"`

	// Relationships
	WorkOrder WorkOrder `gorm:"foreignKey:WorkOrderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
