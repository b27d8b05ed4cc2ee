package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"example.com/fitsgate/internal/verify"
)

// PDFOptions controls rendering of the acceptance PDF.
type PDFOptions struct {
	Lang Language
	// MaxFindings truncates the findings section; 0 means all.
	MaxFindings int
}

// SaveAcceptancePDF renders the given acceptance report into a PDF
// document, including a QR stamp of each file's SHA-256 checksum.
func SaveAcceptancePDF(rep Acceptance, out string, opts PDFOptions) error {
	t := NewTranslator(opts.Lang)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(t.T("report.title"), false)
	pdf.SetAuthor("fitsverify", false)
	pdf.SetCreator("fitsverify", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, t.T("report.title"))
	addSummarySection(pdf, t, rep)
	addFileMatrixSection(pdf, t, rep.Files)
	addChecksumSection(pdf, t, rep.Files)
	addFindingsSection(pdf, t, rep.Findings, opts.MaxFindings)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addSummarySection(pdf *gofpdf.Fpdf, t Translator, rep Acceptance) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, t.T("summary.heading"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: t.T("summary.files"), value: strconv.Itoa(rep.Summary.Files)},
		{label: t.T("summary.hdus"), value: strconv.Itoa(rep.Summary.HDUs)},
		{label: t.T("summary.errors"), value: strconv.Itoa(rep.Summary.Errors)},
		{label: t.T("summary.warnings"), value: strconv.Itoa(rep.Summary.Warnings)},
		{label: t.T("summary.overall"), value: passLabel(t, rep.Summary.Pass)},
	}
	for _, item := range items {
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addFileMatrixSection(pdf *gofpdf.Fpdf, t Translator, files []FileResult) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, t.T("files.heading"))
	pdf.Ln(9)

	headers := []string{
		t.T("files.file"), t.T("files.hdus"), t.T("files.warnings"),
		t.T("files.errors"), t.T("files.status"),
	}
	widths := []float64{92, 20, 24, 20, 24}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	lineHeight := 5.0
	for _, f := range files {
		status := passLabel(t, f.Errors == 0)
		if f.Aborted {
			status = t.T("files.aborted")
		}
		values := []string{
			emptyFallback(f.File, "-"),
			strconv.Itoa(f.HDUs),
			strconv.Itoa(f.Warnings),
			strconv.Itoa(f.Errors),
			status,
		}
		renderTableRow(pdf, widths, values, lineHeight)
	}
	pdf.Ln(4)
}

// addChecksumSection stamps a QR code of each file's SHA-256 so the
// report can be matched to the exact bytes that were verified.
func addChecksumSection(pdf *gofpdf.Fpdf, t Translator, files []FileResult) {
	const qrSizeMM = 28.0
	drawn := 0
	for i, f := range files {
		if f.Sha256 == "" {
			continue
		}
		png, err := ChecksumQR(f.Sha256, 256)
		if err != nil {
			continue
		}
		if drawn == 0 {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Cell(0, 8, t.T("qr.heading"))
			pdf.Ln(9)
		}
		name := fmt.Sprintf("qr-%d", i)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		x := pdf.GetX()
		y := pdf.GetY()
		pdf.ImageOptions(name, x, y, qrSizeMM, qrSizeMM, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetXY(x+qrSizeMM+4, y)
		pdf.SetFont("Helvetica", "", 9)
		caption := t.Format("qr.caption", emptyFallback(f.File, "-"))
		pdf.MultiCell(0, 5, caption+"\nSHA-256: "+f.Sha256, "", "L", false)
		bottom := y + qrSizeMM + 4
		if pdf.GetY() < bottom {
			pdf.SetY(bottom)
		}
		drawn++
	}
	if drawn > 0 {
		pdf.Ln(2)
	}
}

func addFindingsSection(pdf *gofpdf.Fpdf, t Translator, findings []verify.Message, max int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, t.T("findings.heading"))
	pdf.Ln(9)

	if len(findings) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, t.T("findings.none"), "", "L", false)
		return
	}

	shown := findings
	if max > 0 && len(shown) > max {
		shown = shown[:max]
	}
	for i, m := range shown {
		pdf.SetFont("Helvetica", "B", 10)
		header := fmt.Sprintf("%d. [%s] %s %d, HDU %d", i+1, m.Severity, t.T("findings.code"), int(m.Code), m.HDU)
		pdf.MultiCell(0, 5, header, "", "L", false)

		if text := strings.TrimSpace(m.Text); text != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, text, "", "L", false)
		}
		if m.FixHint != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 4, t.T("findings.fix")+": "+m.FixHint, "", "L", false)
		}
		if m.Explain != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 4, t.T("findings.explanation")+": "+m.Explain, "", "L", false)
		}
		pdf.Ln(2)
	}
	if max > 0 && len(findings) > max {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, t.Format("findings.truncated", len(findings)-max), "", "L", false)
	}
}

func renderTableRow(pdf *gofpdf.Fpdf, widths []float64, values []string, lineHeight float64) {
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	maxLines := 1
	splitCols := make([][]string, len(values))
	for i, val := range values {
		text := strings.TrimSpace(val)
		if text == "" {
			text = "-"
		}
		lines := pdf.SplitText(text, widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		splitCols[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := float64(maxLines) * lineHeight
	x := xStart
	for i, lines := range splitCols {
		pdf.SetXY(x, yStart)
		cellText := strings.Join(lines, "\n")
		pdf.MultiCell(widths[i], lineHeight, cellText, "1", "L", false)
		x += widths[i]
	}
	pdf.SetXY(xStart, yStart+rowHeight)
}

func passLabel(t Translator, pass bool) string {
	if pass {
		return t.T("label.pass")
	}
	return t.T("label.fail")
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
