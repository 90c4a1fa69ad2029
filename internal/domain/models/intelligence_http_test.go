package models

import (
	"testing"

	"github.com/creasty/defaults"
)

func TestHTTPRequestDefaults(t *testing.T) {
	req := IntelligenceHTTPRequest{Ticker: "MSTR"}
	if err := defaults.Set(&req); err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if req.Category != "generic" {
		t.Fatalf("category default = %q", req.Category)
	}
	if req.Timeframe != "7D" {
		t.Fatalf("timeframe default = %q", req.Timeframe)
	}
	if len(req.Sources) != 1 || req.Sources[0] != "news" {
		t.Fatalf("sources default = %v", req.Sources)
	}
	if req.MaxArticles != 10 {
		t.Fatalf("max_articles default = %d", req.MaxArticles)
	}
	if req.IncludeSentiment == nil || !*req.IncludeSentiment {
		t.Fatalf("include_sentiment default = %v", req.IncludeSentiment)
	}
}

func TestHTTPRequestToRequest(t *testing.T) {
	no := false
	req := IntelligenceHTTPRequest{
		Ticker:           " mstr ",
		Category:         "CRYPTO",
		Timeframe:        "30D",
		Sources:          []string{"social"},
		MaxArticles:      5,
		IncludeSentiment: &no,
	}
	r := req.ToRequest()
	if r.NormalizedTicker() != "MSTR" {
		t.Fatalf("normalized ticker = %q", r.NormalizedTicker())
	}
	if r.Category != CategoryCrypto {
		t.Fatalf("category = %q", r.Category)
	}
	if r.Params.Window() != "30D" {
		t.Fatalf("window = %q", r.Params.Window())
	}
	if r.Params.SentimentIncluded() {
		t.Fatalf("sentiment should be excluded")
	}
}

func TestParseCategoryUnknownIsGeneric(t *testing.T) {
	for _, in := range []string{"", "bogus", "CRYPTO", "news"} {
		got := ParseCategory(in)
		if in == "CRYPTO" && got != CategoryCrypto {
			t.Fatalf("CRYPTO parsed as %q", got)
		}
		if (in == "" || in == "bogus") && got != CategoryGeneric {
			t.Fatalf("%q parsed as %q, want generic", in, got)
		}
	}
}
