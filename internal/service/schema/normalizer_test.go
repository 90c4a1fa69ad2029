package schema

import (
	"reflect"
	"testing"

	"IntelPull/internal/domain/models"
)

func TestNormalizeEmptyCandidateIsComplete(t *testing.T) {
	for _, cat := range models.Categories() {
		record := Normalize(cat, "zzzz", nil, models.Params{})
		if record.RecordCategory() != cat {
			t.Fatalf("category mismatch: %s vs %s", record.RecordCategory(), cat)
		}

		c := record.Candidate()
		if c[models.FieldTicker] != "ZZZZ" {
			t.Fatalf("%s: ticker not uppercased: %v", cat, c[models.FieldTicker])
		}
		if c[models.FieldCompanyName] != "ZZZZ Corporation" {
			t.Fatalf("%s: default company name wrong: %v", cat, c[models.FieldCompanyName])
		}
		for _, field := range []string{
			models.FieldExchange, models.FieldSector, models.FieldCurrency,
			models.FieldDescription, models.FieldLastUpdated,
		} {
			if v, ok := c[field].(string); !ok || v == "" {
				t.Fatalf("%s: field %s not filled: %v", cat, field, c[field])
			}
		}
		for _, field := range []string{
			models.FieldConfidenceScore, models.FieldFreshnessScore, models.FieldCompletenessScore,
		} {
			score, ok := c[field].(float64)
			if !ok || score < 0 || score > 1 {
				t.Fatalf("%s: quality %s out of range: %v", cat, field, c[field])
			}
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	params := models.Params{Timeframe: "30D", MaxArticles: 5}
	for _, cat := range models.Categories() {
		first := Normalize(cat, "ABCD", nil, params)
		second := Normalize(cat, "ABCD", first.Candidate(), params)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%s: normalize is not a fixed point:\nfirst:  %+v\nsecond: %+v", cat, first, second)
		}
	}
}

func TestNormalizePassesThroughValidValues(t *testing.T) {
	c := models.Candidate{
		models.FieldCompanyName: "Tesla, Inc.",
		models.FieldSharePrice:  250.0,
		models.FieldSector:      "Manufacturing",
	}
	record := Normalize(models.CategoryGeneric, "TSLA", c, models.Params{}).(models.GenericRecord)
	if record.Company.CompanyName != "Tesla, Inc." {
		t.Fatalf("name overwritten: %s", record.Company.CompanyName)
	}
	if record.Company.SharePrice != 250.0 {
		t.Fatalf("price overwritten: %v", record.Company.SharePrice)
	}
	if record.Company.Industry != "Manufacturing" {
		t.Fatalf("industry should default to sector: %s", record.Company.Industry)
	}
}

func TestNormalizeCoercesNumericStrings(t *testing.T) {
	c := models.Candidate{
		models.FieldSharePrice: "123.45",
		models.FieldMarketCap:  "25000000000",
	}
	record := Normalize(models.CategoryFinancial, "MSTR", c, models.Params{}).(models.FinancialRecord)
	if record.Data.SharePrice != 123.45 {
		t.Fatalf("string price not coerced: %v", record.Data.SharePrice)
	}
	if record.Data.MarketCap != 25000000000 {
		t.Fatalf("string market cap not coerced: %v", record.Data.MarketCap)
	}
}

func TestNormalizeCryptoTotalsFromHoldings(t *testing.T) {
	c := models.Candidate{
		models.FieldCryptoHoldings: []models.CryptoHolding{
			{Currency: "BTC", Amount: 100, USDValue: 5_000_000},
			{Currency: "ETH", Amount: 2000, USDValue: 1_000_000},
		},
	}
	record := Normalize(models.CategoryCrypto, "MSTR", c, models.Params{}).(models.CryptoRecord)
	if record.Data.CurrentTotalUSD != 6_000_000 {
		t.Fatalf("total not summed from holdings: %v", record.Data.CurrentTotalUSD)
	}
	if len(record.Data.HistoricalHoldings) == 0 {
		t.Fatalf("historical snapshot must be synthesized")
	}
	for _, h := range record.Data.CurrentHoldings {
		if h.LastUpdated == "" {
			t.Fatalf("holding timestamp must be filled")
		}
	}
}

func TestNormalizeNewsArticleRules(t *testing.T) {
	c := models.Candidate{
		models.FieldArticles: []models.NewsArticle{
			{Title: "A", RelevanceScore: 1.7, Sentiment: "positive"},
			{Title: "B", RelevanceScore: 0.8, Sentiment: "negative"},
			{Title: "C"},
			{Title: "D", RelevanceScore: 0.9},
		},
	}
	params := models.Params{MaxArticles: 3}
	record := Normalize(models.CategoryNews, "TSLA", c, params).(models.NewsRecord)

	if len(record.Data.Articles) != 3 {
		t.Fatalf("article list must be capped at max_articles: %d", len(record.Data.Articles))
	}
	if got := record.Data.Articles[0].RelevanceScore; got != 1.7 {
		t.Fatalf("out-of-range relevance must pass through unclamped, got %v", got)
	}
	if got := record.Data.Articles[2].RelevanceScore; got < 0.7 || got > 1.0 {
		t.Fatalf("absent relevance must be filled in range, got %v", got)
	}
	for _, a := range record.Data.Articles {
		if a.Sentiment == "" {
			t.Fatalf("sentiment must be filled when included")
		}
	}
	if record.Data.Summary.TotalArticles != 3 {
		t.Fatalf("summary count mismatch: %d", record.Data.Summary.TotalArticles)
	}

	total := 0
	for _, n := range record.Data.Summary.SentimentBreakdown {
		total += n
	}
	if total != 3 {
		t.Fatalf("breakdown must cover every article: %v", record.Data.Summary.SentimentBreakdown)
	}
}

func TestNormalizeNewsSentimentExcluded(t *testing.T) {
	off := false
	params := models.Params{IncludeSentiment: &off}
	c := models.Candidate{
		models.FieldArticles: []models.NewsArticle{
			{Title: "A", RelevanceScore: 0.8, Sentiment: "positive"},
		},
	}
	record := Normalize(models.CategoryNews, "TSLA", c, params).(models.NewsRecord)
	if record.Data.Articles[0].Sentiment != "" {
		t.Fatalf("sentiment must be stripped when excluded")
	}
}

func TestNormalizeSentimentDefaults(t *testing.T) {
	record := Normalize(models.CategorySentiment, "COIN", nil, models.Params{Timeframe: "30D"}).(models.SentimentRecord)
	if len(record.Data.Sources) == 0 {
		t.Fatalf("sentiment sources must be defaulted")
	}
	if len(record.Data.Keywords) == 0 {
		t.Fatalf("keywords must be defaulted")
	}
	if record.Data.TimePeriod != "30D" {
		t.Fatalf("time period should follow the request window: %s", record.Data.TimePeriod)
	}
	if record.Data.SentimentScore < -1 || record.Data.SentimentScore > 1 {
		t.Fatalf("sentiment score out of range: %v", record.Data.SentimentScore)
	}
}
