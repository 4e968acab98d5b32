package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sedes-ce/sedesgo/internal/models"
	"github.com/sedes-ce/sedesgo/internal/relatorio"
	"github.com/sedes-ce/sedesgo/internal/storage/localstore"
	"github.com/sedes-ce/sedesgo/internal/storage/remote"
)

// fakeRemote serves canned data for handler tests
type fakeRemote struct {
	relatorios []models.RelatorioMensal
}

func (f *fakeRemote) InsertAtendimento(_ context.Context, rec *models.Atendimento) error {
	return nil
}

func (f *fakeRemote) InsertPresencas(_ context.Context, _ []models.Presenca) error {
	return nil
}

func (f *fakeRemote) QueryAtendimentos(_ context.Context, _ remote.AtendimentoFilter) ([]models.Atendimento, error) {
	return nil, nil
}

func (f *fakeRemote) UpsertRelatorio(_ context.Context, rel *models.RelatorioMensal) error {
	return nil
}

func (f *fakeRemote) ListRelatorios(_ context.Context) ([]models.RelatorioMensal, error) {
	return f.relatorios, nil
}

func TestFilterByUnidade(t *testing.T) {
	recs := []models.Atendimento{
		{Unidade: "CSMI Curió", DataRegistro: "2026-02-10"},
		{Unidade: "Unidade Móvel", DataRegistro: "2026-02-11"},
		{Unidade: "CSMI Curió", DataRegistro: "2026-02-12"},
	}

	got := filterByUnidade(recs, "CSMI Curió")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, rec := range got {
		if rec.Unidade != "CSMI Curió" {
			t.Errorf("record for %q leaked through the filter", rec.Unidade)
		}
	}

	if got := filterByUnidade(recs, "CSMI José Walter"); len(got) != 0 {
		t.Errorf("len = %d, want 0 for a unit with no records", len(got))
	}
}

func TestDownloadRelatorioPDFLogsGenerationError(t *testing.T) {
	// An id beyond QR capacity makes the generator fail deterministically
	hugeID := strings.Repeat("x", 4000)
	rel := models.RelatorioMensal{
		ID:          hugeID,
		UnidadeID:   1,
		UnidadeNome: "CSMI Curió",
		Mes:         1,
		Ano:         2026,
	}

	core, logs := observer.New(zap.WarnLevel)
	remoteStore := &fakeRemote{relatorios: []models.RelatorioMensal{rel}}
	svc := relatorio.NewService(remoteStore, localstore.NewMemoryStore(), nil)

	rt := &Router{
		Router: mux.NewRouter(),
		deps: Deps{
			Service: svc,
			Logger:  zap.New(core),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/relatorios-consolidados/x/pdf", nil)
	req = mux.SetURLVars(req, map[string]string{"id": hugeID})
	w := httptest.NewRecorder()

	rt.downloadRelatorioPDF(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	entries := logs.FilterMessage("pdf generation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if _, ok := fields["error"]; !ok {
		t.Error("log entry is missing the error field")
	}
}
