// Package report renders consolidated monthly reports as PDF documents for
// printing and archival.
package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/sedes-ce/sedesgo/internal/models"
)

var nomesMeses = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MesNome returns the display name of a zero-based month
func MesNome(mes int) string {
	if mes < 0 || mes >= len(nomesMeses) {
		return fmt.Sprintf("Mês %d", mes)
	}
	return nomesMeses[mes]
}

// GenerateRelatorioPDF renders a consolidated report with its underlying
// activity records and a QR verification code carrying the composite id.
func GenerateRelatorioPDF(rel models.RelatorioMensal, atendimentos []models.Atendimento) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr("Relatório Mensal de Atendimentos"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s — %s / %d", rel.UnidadeNome, MesNome(rel.Mes), rel.Ano)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Totals
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Total de atendimentos: %d", rel.QtdAtendimentos)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Activity table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(28, 7, "Data", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, tr("Ação"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(87, 7, "Atividade", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Participantes", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, a := range atendimentos {
		pdf.CellFormat(28, 6, a.DataRegistro, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, tr(string(a.TipoAcao)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(87, 6, tr(a.AtividadeEspecifica), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", a.QtdParticipantes), "1", 1, "C", false, 0, "")
	}

	// QR verification code in the footer, content is the composite report id
	qrPng, err := qrcode.Encode(rel.ID, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr_relatorio", imgOptions, bytes.NewReader(qrPng))
	pdf.ImageOptions("qr_relatorio", 15, 255, 25, 25, false, imgOptions, 0, "")

	pdf.SetXY(45, 265)
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(0, 4, tr(fmt.Sprintf("Verificação: %s", rel.ID)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
