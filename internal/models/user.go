package models

type User struct {
	BaseModel

	Nome         string `gorm:"not null" json:"nome"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:visualizador" json:"role"`

	// Relationships
	WorkOrders []WorkOrder `gorm:"foreignKey:ResponsavelID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
