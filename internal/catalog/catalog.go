// Package catalog loads and validates the program catalog produced by
// the spreadsheet pipeline. The core never sees an invalid catalog:
// load or validation failure is fatal at startup, and a failed reload
// keeps the previous snapshot.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"foerderrechner/internal/config"
	"foerderrechner/internal/logger"
	"foerderrechner/internal/metrics"
	"foerderrechner/internal/models"
)

// Source provides a validated catalog. The serving layer only depends
// on this interface, not on where the data comes from.
type Source interface {
	Name() string
	Load() (models.Catalog, error)
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Load() (models.Catalog, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return models.Catalog{}, err
	}
	return parse(data)
}

// HTTPSource fetches the catalog from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Load() (models.Catalog, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: config.Cfg.CatalogTimeout}
	}
	req, err := http.NewRequest("GET", s.URL, nil)
	if err != nil {
		return models.Catalog{}, err
	}
	req.Header.Set("User-Agent", config.Cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return models.Catalog{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return models.Catalog{}, fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.URL)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return models.Catalog{}, err
	}
	return parse(data)
}

func parse(data []byte) (models.Catalog, error) {
	var c models.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return models.Catalog{}, fmt.Errorf("catalog: invalid JSON: %w", err)
	}
	if err := Validate(c); err != nil {
		return models.Catalog{}, err
	}
	return c, nil
}

// NewSource picks the source from config: a URL when set, the local
// file otherwise.
func NewSource() Source {
	if config.Cfg.CatalogURL != "" {
		return &HTTPSource{URL: config.Cfg.CatalogURL}
	}
	return &FileSource{Path: config.Cfg.CatalogPath}
}

// Store holds the current catalog snapshot. Readers get a consistent
// immutable value; Reload swaps the whole snapshot atomically.
type Store struct {
	source  Source
	current atomic.Value // models.Catalog
}

// NewStore loads the initial catalog from src. There is no degraded
// start: a service without a catalog cannot answer anything.
func NewStore(src Source) (*Store, error) {
	c, err := src.Load()
	if err != nil {
		return nil, err
	}
	st := &Store{source: src}
	st.current.Store(c)
	metrics.CatalogPrograms.Set(float64(len(c.Programs)))
	logger.Info("catalog: loaded", map[string]interface{}{
		"source": src.Name(), "programs": len(c.Programs), "version": c.Meta.Version,
	})
	return st, nil
}

// Get returns the current snapshot.
func (st *Store) Get() models.Catalog {
	return st.current.Load().(models.Catalog)
}

// Reload re-reads the source. On failure the previous snapshot stays
// active and the error is returned for logging.
func (st *Store) Reload() error {
	c, err := st.source.Load()
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	st.current.Store(c)
	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogPrograms.Set(float64(len(c.Programs)))
	logger.Info("catalog: reloaded", map[string]interface{}{
		"source": st.source.Name(), "programs": len(c.Programs),
	})
	return nil
}
