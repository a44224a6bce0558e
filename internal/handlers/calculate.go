package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"foerderrechner/internal/catalog"
	"foerderrechner/internal/linkcheck"
	"foerderrechner/internal/metrics"
	"foerderrechner/internal/models"
	"foerderrechner/internal/rechner"
	sentryutil "foerderrechner/internal/sentry"
)

// Catalog is the store the handlers serve from, set once in main.
var Catalog *catalog.Store

// calcRequest is the permissive wire form of a query. Price and term
// arrive from an HTML form, so they may be numbers, numeric strings
// (possibly German-formatted) or missing; the THG flag may be a bool
// or a "ja"/"nein" select value. Anything unparseable degrades to the
// zero value instead of an error.
type calcRequest struct {
	Land          string          `json:"land"`
	Preis         json.RawMessage `json:"preis"`
	THG           json.RawMessage `json:"thg"`
	LeasingMonate json.RawMessage `json:"leasing_monate"`
}

func (cr calcRequest) toQuery() models.Query {
	q := models.Query{Land: strings.TrimSpace(cr.Land)}
	q.Preis = coerceNumber(cr.Preis)
	if q.Preis < 0 {
		q.Preis = 0
	}
	q.THG = coerceBool(cr.THG)
	q.LeasingMonate = int(coerceNumber(cr.LeasingMonate))
	return q
}

func coerceNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := parseGermanNumber(s)
	if err != nil {
		return 0
	}
	return f
}

// parseGermanNumber reads a human-typed amount. A comma is always the
// decimal separator ("45.990,50"). Without a comma, a dot followed by
// exactly three digits is a thousands separator ("45.990" -> 45990),
// anything else is a decimal point ("45.99" -> 45.99).
func parseGermanNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if i := strings.LastIndex(s, "."); i >= 0 && len(s)-i-1 == 3 {
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}

func coerceBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "ja" || s == "true" || s == "1"
}

// CalculateHandler runs one subsidy calculation: filter the catalog by
// the queried state, compute grant/net/leasing per program, rank and
// label. Zero matches is a regular response, not an error.
func CalculateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sentryutil.CaptureError(err, map[string]string{"handler": "calculate", "phase": "decode"})
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	IncrementCounter()
	metrics.CalculationsTotal.Inc()

	result := rechner.Calculate(Catalog.Get(), req.toQuery())
	linkcheck.ApplyStatus(result.Ergebnisse)

	metrics.MatchesPerQuery.Observe(float64(result.Treffer))
	if result.Treffer == 0 {
		metrics.EmptyResultsTotal.Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	// No caching - results are query-scoped
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	json.NewEncoder(w).Encode(result)
}
