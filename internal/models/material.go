package models

type Material struct {
	BaseModel

	Nome          string  `gorm:"not null" json:"nome"`
	Unidade       string  `gorm:"not null" json:"unidade"`
	CustoUnitario float64 `gorm:"type:decimal(10,2);default:0" json:"custo_unitario"`
	Estoque       int     `gorm:"not null;default:0" json:"estoque"`

	// Relationships
	Usages []MaterialUsage `gorm:"foreignKey:MaterialID" json:"-"`
}

type MaterialUsage struct {
	BaseModel

	WorkOrderID uint    `gorm:"not null;index" json:"work_order_id"`
	MaterialID  uint    `gorm:"not null;index" json:"material_id"`
	Quantidade  int     `gorm:"not null" json:"quantidade"`
	CustoTotal  float64 `gorm:"type:decimal(10,2);not null" json:"custo_total"`

	// Relationships
	Material Material `gorm:"foreignKey:MaterialID;constraint:OnUpdate:Cascade" json:"material,omitempty"`
}
