package pdfextract

import (
	"regexp"
	"strings"

	"github.com/sedes-ce/sedesgo/internal/models"
)

var (
	dateRe         = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	profissionalRe = regexp.MustCompile(`(?i)(?:psic[óo]logo|profissional|respons[áa]vel)\s*:\s*([^\r\n]+)`)
)

// knownUnidades lists the unit-name fragments recognized in imported reports
var knownUnidades = []string{
	"CSMI Curió",
	"CSMI Barra do Ceará",
	"CSMI José Walter",
	"CSMI Cristo Redentor",
	"Unidade Móvel",
}

// parseMetadata derives best-effort metadata from the accumulated document
// text. Each heuristic is independent and optional: a non-match leaves the
// field empty. No validation is performed, any date-shaped substring counts.
func parseMetadata(text string) models.DocumentoMetadata {
	var meta models.DocumentoMetadata

	if m := dateRe.FindStringSubmatch(text); m != nil {
		// DD/MM/YYYY -> YYYY-MM-DD
		meta.Data = m[3] + "-" + m[2] + "-" + m[1]
	}

	lower := strings.ToLower(text)
	for _, unidade := range knownUnidades {
		if strings.Contains(lower, strings.ToLower(unidade)) {
			meta.Unidade = unidade
			break
		}
	}

	if m := profissionalRe.FindStringSubmatch(text); m != nil {
		meta.Profissional = strings.TrimSpace(m[1])
	}

	return meta
}
