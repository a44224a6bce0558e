package region

import "testing"

func TestNormalize_AliasTable(t *testing.T) {
	cases := map[string]string{
		"NRW":                 "NW",
		"nrw":                 "NW",
		"Nordrhein-Westfalen": "NW",
		"NORDRHEINWESTFALEN":  "NW",
		"RLP":                 "RP",
		"Rheinland-Pfalz":     "RP",
		"NDS":                 "NI",
		"Niedersachsen":       "NI",
		"BAY":                 "BY",
		"Bayern":              "BY",
		"Bavaria":             "BY",
		"Thüringen":           "TH",
		"THUERINGEN":          "TH",
		"Sachsen-Anhalt":      "ST",
		"Schleswig-Holstein":  "SH",
		"Mecklenburg-Vorpommern": "MV",
		"Hessen":              "HE",
		"Berlin":              "BE",
		"hamburg":             "HH",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize_CanonicalCodesMapToThemselves(t *testing.T) {
	for _, code := range []string{"BW", "BY", "BE", "BB", "HB", "HH", "HE", "MV", "NI", "NW", "RP", "SL", "SN", "ST", "SH", "TH"} {
		if got := Normalize(code); got != code {
			t.Errorf("Normalize(%q) = %q, Code sollte auf sich selbst abbilden", code, got)
		}
	}
}

func TestNormalize_UnknownFallsBackToCleanedForm(t *testing.T) {
	if got := Normalize("Stadt Köln"); got != "STADTKOLN" {
		t.Errorf("Normalize(Stadt Köln) = %q", got)
	}
	// Two differently-spelled-but-unmapped strings that clean identically
	// must still match each other.
	if Normalize("stadt-köln") != Normalize("Stadt Koln") {
		t.Error("gleich bereinigte unbekannte Eingaben sollten identisch normalisieren")
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want \"\"", got)
	}
}

func TestNormalize_Eszett(t *testing.T) {
	if got := Normalize("Gießen"); got != "GIESSEN" {
		t.Errorf("Normalize(Gießen) = %q, want GIESSEN", got)
	}
}

func TestMatches_BadenWuerttembergVariants(t *testing.T) {
	variants := []string{
		"Baden-Württemberg",
		"BADEN-WUERTTEMBERG",
		"badenwurttemberg",
		"BW",
		"Land Baden-Württemberg",
	}
	for _, v := range variants {
		if !Matches(v, "BW") {
			t.Errorf("Matches(%q, BW) sollte true sein", v)
		}
		if !Matches(v, "Baden-Württemberg") {
			t.Errorf("Matches(%q, Baden-Württemberg) sollte true sein", v)
		}
	}
}

func TestMatches_BWFallbackIsOneSided(t *testing.T) {
	// The fragment fallback applies only when the query targets BW;
	// other compound names still need an exact normalized match.
	if Matches("Land Mecklenburg-Vorpommern", "MV") {
		t.Error("Fragment-Fallback darf nicht für MV gelten")
	}
	if Matches("Bayern", "BW") {
		t.Error("Bayern darf nicht als BW matchen")
	}
}

func TestMatches_SymmetricUnderNormalization(t *testing.T) {
	pairs := [][2]string{
		{"NRW", "NW"},
		{"Nordrhein-Westfalen", "nrw"},
		{"Thüringen", "THURINGEN"},
		{"Lower Saxony", "NDS"},
	}
	for _, p := range pairs {
		if !Matches(p[0], p[1]) || !Matches(p[1], p[0]) {
			t.Errorf("Matches(%q, %q) sollte in beide Richtungen true sein", p[0], p[1])
		}
	}
}

func TestMatches_EmptyNeverMatches(t *testing.T) {
	if Matches("", "") {
		t.Error("leere Eingaben dürfen nicht matchen")
	}
	if Matches("NRW", "") {
		t.Error("leere Abfrage darf nicht matchen")
	}
}
