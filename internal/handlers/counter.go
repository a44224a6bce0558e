package handlers

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

type counterData struct {
	Berechnungen int64 `json:"berechnungen"`
}

var (
	counterMu       sync.Mutex
	counterValue    int64
	pendingWrites   int
	counterFilePath = "counter.json"
	flushTicker     *time.Ticker
)

const flushEveryN = 10
const flushInterval = 30 * time.Second

// InitCounter loads the persisted calculation counter and starts the
// periodic flush. The counter is best-effort: a lost write costs at
// most a few increments.
func InitCounter() {
	counterMu.Lock()
	defer counterMu.Unlock()

	data, err := os.ReadFile(counterFilePath)
	if err != nil {
		counterValue = 0
		log.Printf("[counter] counter.json nicht gefunden, starte bei %d", counterValue)
	} else {
		var cd counterData
		if err := json.Unmarshal(data, &cd); err != nil {
			counterValue = 0
			log.Printf("[counter] counter.json unlesbar, starte bei %d", counterValue)
		} else {
			counterValue = cd.Berechnungen
			log.Printf("[counter] Zähler geladen: %d", counterValue)
		}
	}

	flushTicker = time.NewTicker(flushInterval)
	go func() {
		for range flushTicker.C {
			flushCounter()
		}
	}()
}

func IncrementCounter() int64 {
	counterMu.Lock()
	counterValue++
	val := counterValue
	pendingWrites++
	shouldFlush := pendingWrites >= flushEveryN
	counterMu.Unlock()

	if shouldFlush {
		flushCounter()
	}
	return val
}

func GetCounter() int64 {
	counterMu.Lock()
	defer counterMu.Unlock()
	return counterValue
}

func flushCounter() {
	counterMu.Lock()
	if pendingWrites == 0 {
		counterMu.Unlock()
		return
	}
	val := counterValue
	pendingWrites = 0
	counterMu.Unlock()

	cd := counterData{Berechnungen: val}
	data, err := json.Marshal(cd)
	if err != nil {
		log.Printf("[counter] Marshal-Fehler: %v", err)
		return
	}
	if err := os.WriteFile(counterFilePath, data, 0644); err != nil {
		log.Printf("[counter] Schreibfehler counter.json: %v", err)
	}
}
