// Package linkcheck verifies that the Richtlinie and Antrag URLs in the
// catalog still resolve. State portals reorganize their sites often; a
// dead application link is worse than no link, so results are surfaced
// on the program records.
package linkcheck

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"foerderrechner/internal/config"
	"foerderrechner/internal/logger"
	"foerderrechner/internal/models"
	sentryutil "foerderrechner/internal/sentry"

	"github.com/getsentry/sentry-go"
	"golang.org/x/net/html"
)

type linkStatus struct {
	Verified   bool
	VerifiedAt string
}

var statusCache sync.Map // map[string]linkStatus, keyed by program ID

var client = &http.Client{
	Timeout: 10 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) >= 3 {
			return http.ErrUseLastResponse
		}
		return nil
	},
}

// ApplyStatus copies cached verification results onto a result slice.
func ApplyStatus(results []models.GrantResult) {
	for i := range results {
		if v, ok := statusCache.Load(results[i].ID); ok {
			s := v.(linkStatus)
			results[i].LinkVerifiziert = s.Verified
			results[i].LinkVerifiziertAm = s.VerifiedAt
		}
	}
}

// CheckLink verifies that a URL answers with 2xx/3xx. HEAD first; some
// portals reject HEAD, so a 405 falls back to GET with soft-404
// detection on the page title.
func CheckLink(url string) (ok bool, statusCode int) {
	req, err := http.NewRequest("HEAD", url, nil)
	if err != nil {
		return false, 0
	}
	req.Header.Set("User-Agent", config.Cfg.UserAgent)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return false, 0
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		return checkWithGet(url)
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 400, resp.StatusCode
}

func checkWithGet(url string) (bool, int) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return false, 0
	}
	req.Header.Set("User-Agent", config.Cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, 0
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return false, resp.StatusCode
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return false, resp.StatusCode
	}
	if isSoft404(body) {
		return false, resp.StatusCode
	}
	return true, resp.StatusCode
}

// isSoft404 catches pages that answer 200 but are really an error page.
func isSoft404(body []byte) bool {
	title := strings.ToLower(pageTitle(body))
	if title == "" {
		return false
	}
	for _, marker := range []string{"seite nicht gefunden", "nicht verfügbar", "404", "fehler"} {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// pageTitle extracts the <title> text from an HTML document.
func pageTitle(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// CheckAll checks all program links concurrently and fills the status
// cache. Returns the number of programs with at least one broken link.
func CheckAll(programs []models.Program) int {
	broken := 0
	today := time.Now().Format("2006-01-02")

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, 5)

	for _, p := range programs {
		if p.Richtlinie == "" && p.Antrag == "" {
			continue
		}
		wg.Add(1)
		go func(prog models.Program) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ok := true
			if prog.Richtlinie != "" {
				if linkOK, status := CheckLink(prog.Richtlinie); !linkOK {
					ok = false
					logger.Warn("linkcheck: richtlinie broken", map[string]interface{}{
						"program_id": prog.ID, "url": prog.Richtlinie, "status": status,
					})
				}
			}
			if prog.Antrag != "" {
				if linkOK, status := CheckLink(prog.Antrag); !linkOK {
					ok = false
					logger.Warn("linkcheck: antrag broken", map[string]interface{}{
						"program_id": prog.ID, "url": prog.Antrag, "status": status,
					})
				}
			}

			statusCache.Store(prog.ID, linkStatus{Verified: ok, VerifiedAt: today})
			if !ok {
				mu.Lock()
				broken++
				mu.Unlock()
			}
		}(p)
	}

	wg.Wait()
	if broken > 0 {
		sentryutil.CaptureMessage("linkcheck: kaputte Links im Katalog", sentry.LevelWarning,
			map[string]string{"broken": strconv.Itoa(broken)})
	}
	return broken
}
