package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/datatypes"

	"github.com/sedes-ce/sedesgo/internal/models"
)

type saveAtendimentoRequest struct {
	models.Atendimento
	Participantes []int64 `json:"participantes"`
}

// createAtendimento runs the dual-write save. The response is always a
// success as long as one of the stores accepted the record; the stored_in
// field tells which one.
func (r *Router) createAtendimento(w http.ResponseWriter, req *http.Request) {
	var body saveAtendimentoRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	// Inline photos are pushed to the bucket first; failures keep the
	// inline data so the record never waits on storage
	resolved := r.deps.Uploader.ResolveAll(req.Context(), body.FotosURLs)
	body.FotosURLs = datatypes.JSONSlice[string](resolved)

	result, err := r.deps.Service.SaveAtendimento(req.Context(), body.Atendimento, body.Participantes)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.deps.Hub.Broadcast("atendimento_salvo", map[string]interface{}{
		"id":        result.ID,
		"unidade":   body.Unidade,
		"stored_in": result.StoredIn,
	})

	respondJSON(w, http.StatusCreated, result)
}

// getRelatorioData returns the merged remote+local records for a date range
func (r *Router) getRelatorioData(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	inicio := q.Get("inicio")
	fim := q.Get("fim")
	if inicio == "" || fim == "" {
		respondError(w, http.StatusBadRequest, "inicio and fim are required")
		return
	}

	recs := r.deps.Service.GetRelatorioData(req.Context(), inicio, fim, q.Get("unidade"), q.Get("profissional"))
	if recs == nil {
		recs = []models.Atendimento{}
	}
	respondJSON(w, http.StatusOK, recs)
}

// listUnidades returns all service units
func (r *Router) listUnidades(w http.ResponseWriter, req *http.Request) {
	unidades, err := r.deps.Remote.ListUnidades(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch unidades")
		return
	}
	respondJSON(w, http.StatusOK, unidades)
}
