package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foerderrechner/internal/linkcheck"
	"foerderrechner/internal/models"
	"foerderrechner/internal/rechner"
	sentryutil "foerderrechner/internal/sentry"

	"github.com/jung-kurt/gofpdf"
)

// ReportHandler renders the calculation as a downloadable PDF summary.
// POST /api/report with the same body as /api/calculate.
func ReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	query := req.toQuery()
	result := rechner.Calculate(Catalog.Get(), query)
	linkcheck.ApplyStatus(result.Ergebnisse)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(18, 15, 18)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(87, 8, "foerderrechner.de", "", 0, "L", false, 0, "")
		pdf.CellFormat(87, 8, strconv.Itoa(pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(27, 58, 84)
	pdf.CellFormat(0, 10, tr("Ihre E-Auto-Förderung"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Erstellt am %s · Datenstand %s",
		time.Now().Format("02.01.2006"), orDash(result.Stand))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Query summary
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 30, 30)
	summary := fmt.Sprintf("Bundesland: %s · Fahrzeugpreis: %s", orDash(query.Land), fmtEuro(query.Preis))
	if query.THG {
		summary += tr(" · inkl. THG-Prämie")
	}
	if query.LeasingMonate > 0 {
		summary += fmt.Sprintf(" · Leasing %d Monate", query.LeasingMonate)
	}
	pdf.CellFormat(0, 7, tr(summary), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr(result.ScoreText), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(result.Ergebnisse) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, tr("Keine passenden Programme gefunden. Tipp: NRW/RLP/NDS/BAY oder Landesname ausschreiben."), "", "L", false)
	} else {
		drawResultsTable(pdf, tr, result.Ergebnisse)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="foerderrechner-report.pdf"`)
	if err := pdf.Output(w); err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "report", "phase": "output"})
	}
}

func drawResultsTable(pdf *gofpdf.Fpdf, tr func(string) string, results []models.GrantResult) {
	widths := []float64{62, 28, 28, 28, 28}
	headers := []string{"Programm", "Gebiet", "Förderung", "Netto", "Leasing"}

	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetFillColor(27, 58, 84)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8.5)
	pdf.SetTextColor(30, 30, 30)
	for i, res := range results {
		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 242)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		leasing := "-"
		if res.Leasing != nil {
			leasing = fmt.Sprintf("%d EUR/M (%dM)", res.Leasing.Rate, res.Leasing.Monate)
		}
		cells := []string{
			truncate(res.Programm, 38),
			truncate(res.Gebiet, 16),
			fmtEuro(float64(res.FoerderSumme)),
			fmtEuro(float64(res.Netto)),
			leasing,
		}
		for j, c := range cells {
			pdf.CellFormat(widths[j], 7, tr(c), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fmtEuro formats a value as "1.234 EUR" with dot as thousands separator.
func fmtEuro(v float64) string {
	n := int64(v)
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var b strings.Builder
		rem := len(s) % 3
		if rem == 0 {
			rem = 3
		}
		b.WriteString(s[:rem])
		for i := rem; i < len(s); i += 3 {
			b.WriteByte('.')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	return s + " EUR"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
