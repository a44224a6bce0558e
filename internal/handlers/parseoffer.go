package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"

	sentryutil "foerderrechner/internal/sentry"

	"github.com/ledongthuc/pdf"
)

type offerResponse struct {
	Preis float64 `json:"preis"`
	Found bool    `json:"found"`
}

// ParseOfferHandler extracts the vehicle price from an uploaded dealer
// offer PDF so the user doesn't have to copy it over by hand.
// POST /api/parse-offer, multipart field "file".
func ParseOfferHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Limit upload to 5MB
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "Datei zu groß (max. 5MB)", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Datei nicht gefunden", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "parse-offer", "phase": "read"})
		http.Error(w, "Fehler beim Lesen der Datei", http.StatusInternalServerError)
		return
	}

	// Reject non-PDF uploads early
	mime := http.DetectContentType(data)
	if mime != "application/pdf" {
		http.Error(w, "Ungültiges Format: nur PDF erlaubt", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "parse-offer", "phase": "pdf-parse"})
		json.NewEncoder(w).Encode(offerResponse{Preis: 0, Found: false})
		return
	}

	var textBuilder strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		p := pdfReader.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString(" ")
	}

	preis := extractPreis(textBuilder.String())
	if preis > 0 {
		json.NewEncoder(w).Encode(offerResponse{Preis: preis, Found: true})
	} else {
		json.NewEncoder(w).Encode(offerResponse{Preis: 0, Found: false})
	}
}

var preisRe = regexp.MustCompile(`(?i)(?:kaufpreis|gesamtpreis|fahrzeugpreis|endpreis|bruttopreis)[:\s€]*([0-9][0-9.,]*)`)

func extractPreis(text string) float64 {
	matches := preisRe.FindStringSubmatch(text)
	if len(matches) < 2 {
		return 0
	}
	val, err := parseGermanNumber(matches[1])
	if err != nil {
		return 0
	}
	return val
}
