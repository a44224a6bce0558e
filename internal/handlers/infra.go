package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"foerderrechner/internal/rechner"
)

var startTime = time.Now()

var (
	linkCheckMu   sync.Mutex
	lastLinkCheck time.Time
)

// SetLastLinkCheck records when the link checker last completed.
func SetLastLinkCheck(t time.Time) {
	linkCheckMu.Lock()
	defer linkCheckMu.Unlock()
	lastLinkCheck = t
}

func getLastLinkCheck() time.Time {
	linkCheckMu.Lock()
	defer linkCheckMu.Unlock()
	return lastLinkCheck
}

// HealthHandler reports service health plus catalog freshness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	c := Catalog.Get()
	uptime := time.Since(startTime)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"uptime_seconds":  int(uptime.Seconds()),
		"uptime_human":    formatDuration(uptime),
		"programs":        len(c.Programs),
		"catalog_version": c.Meta.Version,
		"stand":           rechner.MaxStand(c),
		"berechnungen":    GetCounter(),
	})
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// StatsHandler exposes the public usage counter.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"berechnungen":        GetCounter(),
		"last_update_display": now.Format("02.01.2006") + " um " + now.Format("15:04"),
	})
}

// StatusHandler reports operational detail for the admin dashboard.
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	c := Catalog.Get()
	last := getLastLinkCheck()
	lastStr := ""
	if !last.IsZero() {
		lastStr = last.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"programs":        len(c.Programs),
		"catalog_version": c.Meta.Version,
		"generated_at":    c.Meta.GeneratedAt,
		"stand":           rechner.MaxStand(c),
		"last_linkcheck":  lastStr,
	})
}
