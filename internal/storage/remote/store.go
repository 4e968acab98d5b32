// Package remote wraps the hosted relational store. Only the read/write
// contract used by the persistence service lives here; the engine behind it
// is an external collaborator.
package remote

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/sedes-ce/sedesgo/internal/database"
	"github.com/sedes-ce/sedesgo/internal/models"
)

// AtendimentoFilter bounds a range query. Dates are inclusive ISO strings.
type AtendimentoFilter struct {
	DataInicio   string
	DataFim      string
	Unidade      string
	Profissional string
}

// Store is the remote store adapter backed by the hosted Postgres
type Store struct {
	db *database.DB
}

// NewStore creates a remote store adapter
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// InsertAtendimento inserts the record and fills in the generated id
func (s *Store) InsertAtendimento(ctx context.Context, rec *models.Atendimento) error {
	if err := s.db.WithContext(ctx).Omit("Presencas").Create(rec).Error; err != nil {
		return fmt.Errorf("insert atendimento: %w", err)
	}
	return nil
}

// InsertPresencas inserts one attendance-link row per participant
func (s *Store) InsertPresencas(ctx context.Context, presencas []models.Presenca) error {
	if len(presencas) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Omit("Beneficiario").Create(&presencas).Error; err != nil {
		return fmt.Errorf("insert presencas: %w", err)
	}
	return nil
}

// QueryAtendimentos returns records in the date range with their attendance
// rows (beneficiary name/group included) embedded in the same query.
func (s *Store) QueryAtendimentos(ctx context.Context, f AtendimentoFilter) ([]models.Atendimento, error) {
	q := s.db.WithContext(ctx).
		Preload("Presencas").
		Preload("Presencas.Beneficiario").
		Where("data_registro >= ? AND data_registro <= ?", f.DataInicio, f.DataFim)

	if f.Unidade != "" {
		q = q.Where("unidade = ?", f.Unidade)
	}
	if f.Profissional != "" {
		q = q.Where("profissional = ?", f.Profissional)
	}

	var recs []models.Atendimento
	if err := q.Order("data_registro").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("query atendimentos: %w", err)
	}
	return recs, nil
}

// UpsertRelatorio inserts or replaces a consolidated report, conflict target id
func (s *Store) UpsertRelatorio(ctx context.Context, rel *models.RelatorioMensal) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rel).Error
	if err != nil {
		return fmt.Errorf("upsert relatorio %s: %w", rel.ID, err)
	}
	return nil
}

// ListRelatorios returns all consolidated reports
func (s *Store) ListRelatorios(ctx context.Context) ([]models.RelatorioMensal, error) {
	var rels []models.RelatorioMensal
	if err := s.db.WithContext(ctx).Order("ano, mes").Find(&rels).Error; err != nil {
		return nil, fmt.Errorf("list relatorios: %w", err)
	}
	return rels, nil
}

// ListUnidades returns all service units
func (s *Store) ListUnidades(ctx context.Context) ([]models.Unidade, error) {
	var unidades []models.Unidade
	if err := s.db.WithContext(ctx).Order("nome").Find(&unidades).Error; err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	return unidades, nil
}
