package models

// DocumentoExtraido is the output of the PDF extraction utility. It is a
// transient in-memory value, consumed to pre-fill an Atendimento before
// submission, never persisted directly.
type DocumentoExtraido struct {
	Texto    string            `json:"texto"`
	Imagens  []string          `json:"imagens"` // encoded image data URIs, page order
	Metadata DocumentoMetadata `json:"metadata"`
}

// DocumentoMetadata holds the fields guessed from the document text. Every
// field is best-effort: a missing match leaves it empty, never an error.
type DocumentoMetadata struct {
	Unidade      string `json:"unidade,omitempty"`
	Data         string `json:"data,omitempty"` // YYYY-MM-DD
	Profissional string `json:"profissional,omitempty"`
}
