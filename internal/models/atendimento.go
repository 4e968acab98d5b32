package models

import (
	"gorm.io/datatypes"
)

// TipoAcao defines the fixed set of action categories for an activity
type TipoAcao string

const (
	TipoAcaoInterna     TipoAcao = "interna"      // Activity inside the unit
	TipoAcaoExterna     TipoAcao = "externa"      // Field/community activity
	TipoAcaoCapacitacao TipoAcao = "capacitacao"  // Training session
	TipoAcaoEvento      TipoAcao = "evento"       // One-off event
)

// Record source markers for the fallback log
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Atendimento represents one logged activity/attendance event.
// Records are write-once: there is no edit or delete path, a record is
// persisted exactly once through the dual-write attempt.
type Atendimento struct {
	ID                  int64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Unidade             string                     `gorm:"not null;index" json:"unidade"`
	TipoAcao            TipoAcao                   `gorm:"not null;index" json:"tipo_acao"`
	AtividadeEspecifica string                     `json:"atividade_especifica"`
	DataRegistro        string                     `gorm:"not null;index" json:"data_registro"` // YYYY-MM-DD
	QtdParticipantes    int                        `json:"qtd_participantes"`
	Profissional        string                     `json:"profissional,omitempty"`
	ACTSessao           *int                       `gorm:"column:act_sessao" json:"act_sessao,omitempty"`
	CompazMetodologia   *string                    `json:"compaz_metodologia,omitempty"`
	FotosURLs           datatypes.JSONSlice[string] `gorm:"column:fotos_urls" json:"fotos_urls"`
	Observacoes         string                     `gorm:"type:text" json:"observacoes"`

	// Source tags which store accepted the record. Not a column: remote rows
	// are implicitly "remote", fallback log entries carry it in JSON.
	Source string `gorm:"-" json:"source,omitempty"`

	Presencas []Presenca `gorm:"foreignKey:AtendimentoID" json:"presencas,omitempty"`
}

// TableName specifies the table name for Atendimento
func (Atendimento) TableName() string {
	return "atendimentos"
}

// Presenca links an atendimento to a beneficiary, tagged present or absent
type Presenca struct {
	ID             int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AtendimentoID  int64 `gorm:"index;not null" json:"atendimento_id"`
	BeneficiarioID int64 `gorm:"index;not null" json:"beneficiario_id"`
	Presente       bool  `gorm:"default:true" json:"presente"`

	Beneficiario *Beneficiario `gorm:"foreignKey:BeneficiarioID" json:"beneficiario,omitempty"`
}

// TableName specifies the table name for Presenca
func (Presenca) TableName() string {
	return "presencas"
}

// Beneficiario is a program participant
type Beneficiario struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Nome  string `gorm:"not null" json:"nome"`
	Grupo string `gorm:"index" json:"grupo"`
	Ativo bool   `gorm:"default:true" json:"ativo"`
}

// TableName specifies the table name for Beneficiario
func (Beneficiario) TableName() string {
	return "beneficiarios"
}
