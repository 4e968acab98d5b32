package report

import (
	"bytes"
	"testing"

	"github.com/sedes-ce/sedesgo/internal/models"
)

func TestMesNome(t *testing.T) {
	if got := MesNome(0); got != "Janeiro" {
		t.Errorf("MesNome(0) = %q, want Janeiro", got)
	}
	if got := MesNome(11); got != "Dezembro" {
		t.Errorf("MesNome(11) = %q, want Dezembro", got)
	}
	if got := MesNome(12); got != "Mês 12" {
		t.Errorf("MesNome(12) = %q, want fallback", got)
	}
}

func TestGenerateRelatorioPDF(t *testing.T) {
	rel := models.RelatorioMensal{
		ID:              models.RelatorioID(1, 2, 2026),
		UnidadeID:       1,
		UnidadeNome:     "CSMI Curió",
		UnidadeTipo:     "CSMI",
		Mes:             2,
		Ano:             2026,
		QtdAtendimentos: 2,
	}
	recs := []models.Atendimento{
		{DataRegistro: "2026-03-10", TipoAcao: models.TipoAcaoInterna, AtividadeEspecifica: "Roda de conversa", QtdParticipantes: 12},
		{DataRegistro: "2026-03-15", TipoAcao: models.TipoAcaoExterna, AtividadeEspecifica: "Visita domiciliar", QtdParticipantes: 3},
	}

	out, err := GenerateRelatorioPDF(rel, recs)
	if err != nil {
		t.Fatalf("GenerateRelatorioPDF: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty pdf output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a pdf header: %q", out[:8])
	}
}
