package schema

import (
	"encoding/json"
	"strconv"

	"IntelPull/internal/domain/models"
)

// AsFloat coerces v into a float64. Numeric strings coerce; anything else
// does not.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func getFloat(c models.Candidate, key string, def func() float64) float64 {
	if v, ok := c[key]; ok {
		if f, ok := AsFloat(v); ok {
			return f
		}
	}
	return def()
}

func getString(c models.Candidate, key, def string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

func getStringList(c models.Candidate, key string) []string {
	v, ok := c[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// asCandidate views a nested value as a candidate map for field extraction.
func asCandidate(v any) (models.Candidate, bool) {
	switch m := v.(type) {
	case models.Candidate:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

func anyList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	return nil, false
}

func getHoldings(c models.Candidate, key string) []models.CryptoHolding {
	v, ok := c[key]
	if !ok {
		return nil
	}
	if typed, ok := v.([]models.CryptoHolding); ok {
		return typed
	}
	list, ok := anyList(v)
	if !ok {
		return nil
	}
	out := make([]models.CryptoHolding, 0, len(list))
	for _, item := range list {
		m, ok := asCandidate(item)
		if !ok {
			continue
		}
		out = append(out, models.CryptoHolding{
			Currency:    getString(m, "currency", "BTC"),
			Amount:      getFloat(m, "amount", zero),
			USDValue:    getFloat(m, "usdValue", zero),
			LastUpdated: getString(m, "lastUpdated", ""),
		})
	}
	return out
}

func getSnapshots(c models.Candidate, key string) []models.HoldingsSnapshot {
	v, ok := c[key]
	if !ok {
		return nil
	}
	if typed, ok := v.([]models.HoldingsSnapshot); ok {
		return typed
	}
	list, ok := anyList(v)
	if !ok {
		return nil
	}
	out := make([]models.HoldingsSnapshot, 0, len(list))
	for _, item := range list {
		m, ok := asCandidate(item)
		if !ok {
			continue
		}
		out = append(out, models.HoldingsSnapshot{
			RecordedAt:    getString(m, "recordedAt", ""),
			TotalUSDValue: getFloat(m, "totalUsdValue", zero),
			Holdings:      getHoldings(m, "holdings"),
		})
	}
	return out
}

func getArticles(c models.Candidate, key string) []models.NewsArticle {
	v, ok := c[key]
	if !ok {
		return nil
	}
	if typed, ok := v.([]models.NewsArticle); ok {
		return typed
	}
	list, ok := anyList(v)
	if !ok {
		return nil
	}
	out := make([]models.NewsArticle, 0, len(list))
	for _, item := range list {
		m, ok := asCandidate(item)
		if !ok {
			continue
		}
		out = append(out, models.NewsArticle{
			Title:          getString(m, "title", ""),
			Summary:        getString(m, "summary", ""),
			URL:            getString(m, "url", ""),
			Source:         getString(m, "source", ""),
			PublishedAt:    getString(m, "published_date", ""),
			RelevanceScore: getFloat(m, "relevance_score", zero),
			Sentiment:      getString(m, "sentiment", ""),
		})
	}
	return out
}

func getSentimentSources(c models.Candidate, key string) []models.SentimentSource {
	v, ok := c[key]
	if !ok {
		return nil
	}
	if typed, ok := v.([]models.SentimentSource); ok {
		return typed
	}
	list, ok := anyList(v)
	if !ok {
		return nil
	}
	out := make([]models.SentimentSource, 0, len(list))
	for _, item := range list {
		m, ok := asCandidate(item)
		if !ok {
			continue
		}
		out = append(out, models.SentimentSource{
			Source:    getString(m, "source", ""),
			Sentiment: getString(m, "sentiment", "neutral"),
			Score:     getFloat(m, "score", zero),
			Timestamp: getString(m, "timestamp", ""),
		})
	}
	return out
}

func zero() float64 { return 0 }
