package models

// Unidade is a service unit of the program
type Unidade struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome     string `gorm:"not null;uniqueIndex" json:"nome"`
	Tipo     string `json:"tipo"`
	Endereco string `json:"endereco"`
}

// TableName specifies the table name for Unidade
func (Unidade) TableName() string {
	return "unidades"
}
