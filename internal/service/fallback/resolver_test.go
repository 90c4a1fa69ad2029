package fallback

import (
	"testing"

	"IntelPull/internal/domain/models"
)

func TestFromCurated(t *testing.T) {
	r := NewResolver()
	for _, ticker := range []string{"MSTR", "TSLA", "COIN", "mstr"} {
		if !r.FromCurated(ticker) {
			t.Fatalf("expected %q to be curated", ticker)
		}
	}
	if r.FromCurated("ZZZZ") {
		t.Fatalf("ZZZZ should not be curated")
	}
}

func TestResolveCuratedOverlay(t *testing.T) {
	r := NewResolver()
	c := r.Resolve("mstr", models.CategoryCrypto, models.Params{})

	if got := c[models.FieldTicker]; got != "MSTR" {
		t.Fatalf("ticker = %v", got)
	}
	if got := c[models.FieldCompanyName]; got != "MicroStrategy Incorporated" {
		t.Fatalf("company name = %v", got)
	}
	if got := c[models.FieldSharePrice]; got != 1500.00 {
		t.Fatalf("share price = %v", got)
	}
	if got := c[models.FieldMarketCap]; got != float64(25_000_000_000) {
		t.Fatalf("market cap = %v", got)
	}

	// the curated table has no crypto block; synthesis must still supply it
	holdings, ok := c[models.FieldCryptoHoldings].([]models.CryptoHolding)
	if !ok || len(holdings) == 0 {
		t.Fatalf("missing synthesized holdings: %v", c[models.FieldCryptoHoldings])
	}
	total, ok := c[models.FieldTotalCryptoValue].(float64)
	if !ok || total <= 0 {
		t.Fatalf("total crypto value = %v", c[models.FieldTotalCryptoValue])
	}
	var sum float64
	for _, h := range holdings {
		sum += h.USDValue
	}
	if sum != total {
		t.Fatalf("total %v does not match holdings sum %v", total, sum)
	}
}

func TestResolveUnknownTickerSynthesized(t *testing.T) {
	r := NewResolver()
	c := r.Resolve("QQQQ", models.CategoryFinancial, models.Params{})

	if got := c[models.FieldTicker]; got != "QQQQ" {
		t.Fatalf("ticker = %v", got)
	}
	if got := c[models.FieldCompanyName]; got != "QQQQ Corporation" {
		t.Fatalf("company name = %v", got)
	}
	price, ok := c[models.FieldSharePrice].(float64)
	if !ok || price < 10 || price > 500 {
		t.Fatalf("share price out of range: %v", c[models.FieldSharePrice])
	}
	score, ok := c[models.FieldSentimentScore].(float64)
	if !ok || score < -1 || score > 1 {
		t.Fatalf("sentiment score out of range: %v", c[models.FieldSentimentScore])
	}
	for _, key := range []string{
		models.FieldWebsite, models.FieldExchange, models.FieldSector,
		models.FieldDescription, models.FieldCurrency, models.FieldLastUpdated,
	} {
		if s, ok := c[key].(string); !ok || s == "" {
			t.Fatalf("field %s missing or empty: %v", key, c[key])
		}
	}
}

func TestResolveSentimentBlock(t *testing.T) {
	r := NewResolver()
	params := models.Params{Sources: []string{"social", "analyst"}, Timeframe: "30D"}
	c := r.Resolve("ZZZZ", models.CategorySentiment, params)

	sources, ok := c[models.FieldSentimentSources].([]models.SentimentSource)
	if !ok || len(sources) < 2 {
		t.Fatalf("expected sources from both pools, got %v", c[models.FieldSentimentSources])
	}
	for _, s := range sources {
		if s.Source == "" || s.Score <= 0 || s.Score > 1 {
			t.Fatalf("bad sentiment source: %+v", s)
		}
	}
	keywords, ok := c[models.FieldKeywords].([]string)
	if !ok || len(keywords) < 3 {
		t.Fatalf("keywords = %v", c[models.FieldKeywords])
	}
	if got := c[models.FieldTimePeriod]; got != "30D" {
		t.Fatalf("time period = %v", got)
	}
}

func TestResolveSentimentUnknownSourceKind(t *testing.T) {
	r := NewResolver()
	c := r.Resolve("ZZZZ", models.CategorySentiment, models.Params{Sources: []string{"bogus"}})

	sources, ok := c[models.FieldSentimentSources].([]models.SentimentSource)
	if !ok || len(sources) != 1 || sources[0].Source != "Default Sentiment Analysis" {
		t.Fatalf("expected default sentiment source, got %v", c[models.FieldSentimentSources])
	}
}

func TestResolveNewsBlock(t *testing.T) {
	r := NewResolver()
	c := r.Resolve("ZZZZ", models.CategoryNews, models.Params{MaxArticles: 2})

	articles, ok := c[models.FieldArticles].([]models.NewsArticle)
	if !ok || len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %v", c[models.FieldArticles])
	}
	for _, a := range articles {
		if a.Title == "" || a.URL == "" || a.Source == "" || a.PublishedAt == "" {
			t.Fatalf("incomplete article: %+v", a)
		}
		if a.RelevanceScore < 0.7 || a.RelevanceScore > 1.0 {
			t.Fatalf("relevance out of range: %v", a.RelevanceScore)
		}
		if a.Sentiment == "" {
			t.Fatalf("sentiment included by default, missing on %+v", a)
		}
	}
	top, ok := c[models.FieldTopSources].([]string)
	if !ok || len(top) != 3 {
		t.Fatalf("top sources = %v", c[models.FieldTopSources])
	}
	start, _ := c[models.FieldDateRangeStart].(string)
	end, _ := c[models.FieldDateRangeEnd].(string)
	if start == "" || end == "" || start >= end {
		t.Fatalf("bad date range: %q .. %q", start, end)
	}
}

func TestResolveNewsSentimentExcluded(t *testing.T) {
	r := NewResolver()
	no := false
	c := r.Resolve("ZZZZ", models.CategoryNews, models.Params{IncludeSentiment: &no})

	articles := c[models.FieldArticles].([]models.NewsArticle)
	for _, a := range articles {
		if a.Sentiment != "" {
			t.Fatalf("sentiment should be omitted: %+v", a)
		}
	}
}

func TestSampleDistinct(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	got := sample(pool, 3)
	if len(got) != 3 {
		t.Fatalf("sample size = %d", len(got))
	}
	seen := map[string]bool{}
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate %q in sample %v", v, got)
		}
		seen[v] = true
	}
	if got := sample(pool, 10); len(got) != len(pool) {
		t.Fatalf("oversized sample should clamp to pool, got %d", len(got))
	}
}
