package models

import "time"

// Usuario is an operator account for the registration forms and dashboard
type Usuario struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:operador" json:"role"` // operador | coordenador | admin
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Usuario
func (Usuario) TableName() string {
	return "usuarios"
}
