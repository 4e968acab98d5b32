package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/sedes-ce/sedesgo/internal/models"
	"github.com/sedes-ce/sedesgo/internal/report"
)

// filterByUnidade drops records belonging to other units. The merged read
// filters its local-log side by date only, so offline saves made for another
// unit leak into a unit-scoped result.
func filterByUnidade(recs []models.Atendimento, unidade string) []models.Atendimento {
	out := make([]models.Atendimento, 0, len(recs))
	for _, rec := range recs {
		if rec.Unidade == unidade {
			out = append(out, rec)
		}
	}
	return out
}

// listRelatoriosConsolidados reads with the remote-wins policy
func (r *Router) listRelatoriosConsolidados(w http.ResponseWriter, req *http.Request) {
	rels := r.deps.Service.GetRelatoriosConsolidados(req.Context())
	if rels == nil {
		rels = []models.RelatorioMensal{}
	}
	respondJSON(w, http.StatusOK, rels)
}

// saveRelatorioConsolidado upserts a monthly figure confirmed by the operator
func (r *Router) saveRelatorioConsolidado(w http.ResponseWriter, req *http.Request) {
	var rel models.RelatorioMensal
	if err := json.NewDecoder(req.Body).Decode(&rel); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if rel.UnidadeID == 0 || rel.Ano == 0 {
		respondError(w, http.StatusBadRequest, "unidade_id and ano are required")
		return
	}

	if err := r.deps.Service.SaveRelatorioConsolidado(req.Context(), rel); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save relatorio")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"id": models.RelatorioID(rel.UnidadeID, rel.Mes, rel.Ano),
	})
}

// downloadRelatorioPDF renders one consolidated report as a printable PDF
func (r *Router) downloadRelatorioPDF(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var rel *models.RelatorioMensal
	for _, candidate := range r.deps.Service.GetRelatoriosConsolidados(req.Context()) {
		if candidate.ID == id {
			rel = &candidate
			break
		}
	}
	if rel == nil {
		respondError(w, http.StatusNotFound, "Relatorio not found")
		return
	}

	// The report month bounds the activity table
	inicio := time.Date(rel.Ano, time.Month(rel.Mes+1), 1, 0, 0, 0, 0, time.UTC)
	fim := inicio.AddDate(0, 1, -1)
	recs := filterByUnidade(r.deps.Service.GetRelatorioData(req.Context(),
		inicio.Format("2006-01-02"), fim.Format("2006-01-02"), rel.UnidadeNome, ""), rel.UnidadeNome)

	pdfBytes, err := report.GenerateRelatorioPDF(*rel, recs)
	if err != nil {
		r.deps.Logger.Error("pdf generation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=relatorio-%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
