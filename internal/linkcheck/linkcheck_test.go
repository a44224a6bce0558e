package linkcheck

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"foerderrechner/internal/models"
)

func TestCheckLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	if ok, _ := CheckLink(srv.URL + "/ok"); !ok {
		t.Error("200 sollte ok sein")
	}
	if ok, status := CheckLink(srv.URL + "/gone"); ok || status != 404 {
		t.Errorf("404 sollte broken sein, got ok=%v status=%d", ok, status)
	}
}

func TestCheckLink_HeadRejectedFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte("<html><head><title>Förderprogramm</title></head><body>ok</body></html>"))
	}))
	defer srv.Close()

	if ok, _ := CheckLink(srv.URL); !ok {
		t.Error("GET-Fallback sollte greifen")
	}
}

func TestIsSoft404(t *testing.T) {
	err404 := []byte("<html><head><title>Seite nicht gefunden</title></head></html>")
	if !isSoft404(err404) {
		t.Error("Fehlerseite nicht erkannt")
	}
	okPage := []byte("<html><head><title>Umweltbonus beantragen</title></head></html>")
	if isSoft404(okPage) {
		t.Error("normale Seite als soft 404 markiert")
	}
	if isSoft404([]byte("kein html")) {
		t.Error("Seite ohne Titel ist kein soft 404")
	}
}

func TestCheckAllAndApplyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	programs := []models.Program{
		{ID: "good", Richtlinie: srv.URL + "/r", Antrag: srv.URL + "/a"},
		{ID: "bad", Richtlinie: srv.URL + "/dead"},
		{ID: "nolinks"},
	}
	broken := CheckAll(programs)
	if broken != 1 {
		t.Errorf("broken = %d, want 1", broken)
	}

	results := []models.GrantResult{
		{Program: models.Program{ID: "good"}},
		{Program: models.Program{ID: "bad"}},
	}
	ApplyStatus(results)
	if !results[0].LinkVerifiziert {
		t.Error("good sollte verifiziert sein")
	}
	if results[1].LinkVerifiziert {
		t.Error("bad darf nicht verifiziert sein")
	}
	if results[0].LinkVerifiziertAm == "" {
		t.Error("Verifikationsdatum fehlt")
	}
}
