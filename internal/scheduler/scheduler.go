// Package scheduler runs the monthly consolidation job: on the first day of
// each month the previous month's activity counts are rolled up per unit,
// saved through the dual-write pipeline and exported to the shared sheet.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sedes-ce/sedesgo/internal/config"
	"github.com/sedes-ce/sedesgo/internal/export/sheets"
	"github.com/sedes-ce/sedesgo/internal/models"
	"github.com/sedes-ce/sedesgo/internal/relatorio"
)

// UnidadeLister provides the units to consolidate
type UnidadeLister interface {
	ListUnidades(ctx context.Context) ([]models.Unidade, error)
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	svc      *relatorio.Service
	unidades UnidadeLister
	exporter *sheets.Exporter
	cfg      config.SchedulerConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg config.SchedulerConfig, svc *relatorio.Service, unidades UnidadeLister, exporter *sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		svc:      svc,
		unidades: unidades,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.consolidatePreviousMonth); err != nil {
		s.logger.Error("failed to schedule monthly consolidation", zap.Error(err))
		return
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("cron", s.cfg.CronSpec))
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) consolidatePreviousMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	lastOfPrev := firstOfMonth.AddDate(0, 0, -1)
	firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, time.Local)

	s.logger.Info("consolidating previous month",
		zap.String("inicio", firstOfPrev.Format("2006-01-02")),
		zap.String("fim", lastOfPrev.Format("2006-01-02")))

	if err := s.Consolidate(ctx, firstOfPrev, lastOfPrev); err != nil {
		s.logger.Error("monthly consolidation failed", zap.Error(err))
	}
}

// Consolidate rolls up the activity counts per unit for the given period and
// saves one consolidated report each, then exports the saved figures.
func (s *Scheduler) Consolidate(ctx context.Context, inicio, fim time.Time) error {
	unidades, err := s.unidades.ListUnidades(ctx)
	if err != nil {
		return err
	}

	dataInicio := inicio.Format("2006-01-02")
	dataFim := fim.Format("2006-01-02")
	mes := int(inicio.Month()) - 1 // zero-based
	ano := inicio.Year()

	saved := make([]models.RelatorioMensal, 0, len(unidades))
	for _, u := range unidades {
		recs := s.svc.GetRelatorioData(ctx, dataInicio, dataFim, u.Nome, "")

		// The local-log side of the merged read is bounded by date only, so
		// records saved offline for other units come back too. Count only
		// this unit's records or one offline save inflates every rollup.
		qtd := 0
		for _, rec := range recs {
			if rec.Unidade == u.Nome {
				qtd++
			}
		}

		rel := models.RelatorioMensal{
			ID:              models.RelatorioID(u.ID, mes, ano),
			UnidadeID:       u.ID,
			UnidadeNome:     u.Nome,
			UnidadeTipo:     u.Tipo,
			Mes:             mes,
			Ano:             ano,
			QtdAtendimentos: qtd,
		}
		if err := s.svc.SaveRelatorioConsolidado(ctx, rel); err != nil {
			s.logger.Error("failed to save consolidated report",
				zap.String("unidade", u.Nome), zap.Error(err))
			continue
		}
		saved = append(saved, rel)
	}

	if s.exporter != nil {
		if err := s.exporter.ExportRelatorios(ctx, saved); err != nil {
			s.logger.Error("sheet export failed", zap.Error(err))
		}
	}

	s.logger.Info("monthly consolidation finished", zap.Int("unidades", len(saved)))
	return nil
}
