package pdfextract

import "testing"

func TestParseMetadata_Date(t *testing.T) {
	meta := parseMetadata("Relatório de Atividades\nData: 15/03/2026\nGrupo GAP")
	if meta.Data != "2026-03-15" {
		t.Errorf("Expected 2026-03-15, got %q", meta.Data)
	}

	meta = parseMetadata("Relatório sem nenhuma data no corpo do texto")
	if meta.Data != "" {
		t.Errorf("Expected unset date, got %q", meta.Data)
	}
}

func TestParseMetadata_DateFirstOccurrenceWins(t *testing.T) {
	meta := parseMetadata("Emitido em 01/02/2026. Atividade realizada em 15/03/2026.")
	if meta.Data != "2026-02-01" {
		t.Errorf("Expected the first date-shaped substring, got %q", meta.Data)
	}
}

func TestParseMetadata_Unidade(t *testing.T) {
	meta := parseMetadata("RELATÓRIO MENSAL - csmi curió - fevereiro")
	if meta.Unidade != "CSMI Curió" {
		t.Errorf("Expected case-insensitive unit match, got %q", meta.Unidade)
	}

	meta = parseMetadata("Unidade desconhecida qualquer")
	if meta.Unidade != "" {
		t.Errorf("Expected unset unit, got %q", meta.Unidade)
	}
}

func TestParseMetadata_Profissional(t *testing.T) {
	cases := map[string]string{
		"Psicólogo: Maria das Dores\nData: 01/01/2026": "Maria das Dores",
		"PROFISSIONAL: João Batista":                   "João Batista",
		"Responsável:  Ana Lima  \nOutra linha":        "Ana Lima",
	}
	for text, want := range cases {
		meta := parseMetadata(text)
		if meta.Profissional != want {
			t.Errorf("Text %q: expected %q, got %q", text, want, meta.Profissional)
		}
	}

	meta := parseMetadata("Documento sem rótulo de profissional")
	if meta.Profissional != "" {
		t.Errorf("Expected unset professional, got %q", meta.Profissional)
	}
}
