package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"foerderrechner/internal/rechner"
	"foerderrechner/internal/region"
)

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "86400")
}

// ProgramsHandler returns the full program catalog as JSON.
// GET /api/programs, optionally filtered with ?land=NW.
func ProgramsHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c := Catalog.Get()
	programs := c.Programs
	if land := r.URL.Query().Get("land"); land != "" {
		programs = rechner.Select(c, land)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"programs": programs,
		"meta":     c.Meta,
		"stand":    rechner.MaxStand(c),
	})
}

// ProgramDetailHandler returns a single program by ID.
// GET /api/programs/{id}
func ProgramDetailHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/programs/")
	id := strings.TrimSuffix(path, "/")
	if id == "" {
		http.Error(w, "Programm-ID erforderlich", http.StatusBadRequest)
		return
	}

	for _, p := range Catalog.Get().Programs {
		if p.ID == id {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "public, max-age=3600")
			json.NewEncoder(w).Encode(p)
			return
		}
	}

	http.Error(w, "Programm nicht gefunden", http.StatusNotFound)
}

// RegionsHandler returns the known state codes with their accepted
// spellings resolved, so clients can prefill a select box.
// GET /api/regions?q=nrw resolves a single spelling instead.
func RegionsHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if q := r.URL.Query().Get("q"); q != "" {
		json.NewEncoder(w).Encode(map[string]string{"input": q, "code": region.Normalize(q)})
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	json.NewEncoder(w).Encode(region.Codes())
}
