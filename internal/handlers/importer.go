package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

const maxImportSize = 32 << 20 // 32MB

// importPDF extracts text, images and metadata from an uploaded report so
// the form can be pre-filled. This is the one flow with a user-visible
// failure: a file that is not a readable PDF.
func (r *Router) importPDF(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	doc, err := r.deps.Extractor.Extract(file, header.Size)
	if err != nil {
		r.deps.Logger.Warn("pdf import failed",
			zap.String("filename", header.Filename), zap.Error(err))
		respondError(w, http.StatusUnprocessableEntity, "Não foi possível ler este arquivo")
		return
	}

	respondJSON(w, http.StatusOK, doc)
}
