package models

import "time"

type WorkOrder struct {
	BaseModel

	ProjectID          uint       `gorm:"not null;index" json:"project_id"`
	Titulo             string     `gorm:"not null" json:"titulo"`
	Descricao          string     `gorm:"type:text" json:"descricao"`
	TipoServico        string     `json:"tipo_servico"`
	Status             string     `gorm:"not null;default:planejada" json:"status"`
	DataAbertura       time.Time  `gorm:"not null" json:"data_abertura"`
	DataPrevistaInicio *time.Time `json:"data_prevista_inicio"`
	DataPrevistaFim    *time.Time `json:"data_prevista_fim"`
	ResponsavelID      *uint      `gorm:"index" json:"responsavel_id"`
	CustoEstimado      float64    `gorm:"type:decimal(10,2);default:0" json:"custo_estimado"`
	CustoReal          float64    `gorm:"type:decimal(10,2);default:0" json:"custo_real"`

	// Relationships
	Project        Project         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade" json:"project,omitempty"`
	Responsavel    *User           `gorm:"foreignKey:ResponsavelID" json:"responsavel,omitempty"`
	Checkpoints    []Checkpoint    `gorm:"foreignKey:WorkOrderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"checkpoints,omitempty"`
	MaterialUsages []MaterialUsage `gorm:"foreignKey:WorkOrderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"material_usages,omitempty"`
}
