// Package sheets mirrors consolidated monthly figures into a shared Google
// spreadsheet the coordination team already works from.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/sedes-ce/sedesgo/internal/config"
	"github.com/sedes-ce/sedesgo/internal/models"
)

// Exporter appends consolidated report rows to a spreadsheet
type Exporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewExporter builds a Sheets-backed exporter. Returns nil when no
// spreadsheet is configured; callers skip the export in that case.
func NewExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Exporter, error) {
	if cfg.SpreadsheetID == "" {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}

	return &Exporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// ExportRelatorios appends one row per consolidated report
func (e *Exporter) ExportRelatorios(ctx context.Context, rels []models.RelatorioMensal) error {
	if e == nil || len(rels) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rels))
	for _, rel := range rels {
		values = append(values, []interface{}{
			rel.ID, rel.UnidadeNome, rel.UnidadeTipo, rel.Mes + 1, rel.Ano, rel.QtdAtendimentos, rel.Timestamp,
		})
	}

	payload := &sheetsapi.ValueRange{Values: values}
	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("relatorios exported to sheet",
		zap.Int("rows", len(values)), zap.String("range", e.sheetRange))
	return nil
}
