package models

import "fmt"

// RelatorioMensal represents one unit's aggregate attendance count for one
// calendar month. The composite ID makes repeated saves an upsert: writing
// the same (unidade, mes, ano) again replaces the prior value.
type RelatorioMensal struct {
	ID              string `gorm:"primaryKey" json:"id"` // "<unidade_id>-<mes>-<ano>"
	UnidadeID       int64  `gorm:"index;not null" json:"unidade_id"`
	UnidadeNome     string `json:"unidade_nome"`
	UnidadeTipo     string `json:"unidade_tipo"`
	Mes             int    `json:"mes"` // zero-based, January = 0
	Ano             int    `json:"ano"`
	QtdAtendimentos int    `json:"qtd_atendimentos"`
	Timestamp       int64  `json:"timestamp"` // write time, unix millis
}

// TableName specifies the table name for RelatorioMensal
func (RelatorioMensal) TableName() string {
	return "relatorios_consolidados"
}

// RelatorioID builds the composite identifier for a (unit, month, year) triple
func RelatorioID(unidadeID int64, mes, ano int) string {
	return fmt.Sprintf("%d-%d-%d", unidadeID, mes, ano)
}
