package models

type Vendor struct {
	BaseModel

	Nome     string `gorm:"not null" json:"nome"`
	CpfCnpj  string `json:"cpf_cnpj"`
	Contato  string `json:"contato"`
	Endereco string `gorm:"type:text" json:"endereco"`
}
