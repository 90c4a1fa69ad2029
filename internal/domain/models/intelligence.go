package models

import (
	"errors"
	"strings"
	"time"
)

// ErrAggregationEmpty is reported by the aggregator when no source produced
// usable data. It triggers fallback resolution and never reaches the caller.
var ErrAggregationEmpty = errors.New("aggregation: no valid source results")

// TimeLayout is the timestamp format used across all record fields.
const TimeLayout = "2006-01-02T15:04:05"

// FormatTime renders t in the canonical record timestamp format (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Params carries the recognized category-specific request options.
// Each option is optional and has a documented default applied at the
// HTTP boundary.
type Params struct {
	Fields           []string // FINANCIAL: restrict/annotate the metric subset
	Timeframe        string   // SENTIMENT, NEWS: lookback window, default "7D"
	Sources          []string // SENTIMENT: subset of social|news|analyst, default ["news"]
	MaxArticles      int      // NEWS: default 10
	IncludeSentiment *bool    // NEWS: default true
}

// Window returns the lookback window, defaulted.
func (p Params) Window() string {
	if p.Timeframe == "" {
		return "7D"
	}
	return p.Timeframe
}

// SourceSet returns the sentiment source types, defaulted.
func (p Params) SourceSet() []string {
	if len(p.Sources) == 0 {
		return []string{"news"}
	}
	return p.Sources
}

// ArticleLimit returns the article cap, defaulted.
func (p Params) ArticleLimit() int {
	if p.MaxArticles <= 0 {
		return 10
	}
	return p.MaxArticles
}

// SentimentIncluded reports whether per-article sentiment is requested.
func (p Params) SentimentIncluded() bool {
	return p.IncludeSentiment == nil || *p.IncludeSentiment
}

// IntelligenceRequest is the single query the pipeline answers.
type IntelligenceRequest struct {
	Ticker   string
	Category Category
	Params   Params
}

// NormalizedTicker returns the uppercase ticker used for all keys.
func (r IntelligenceRequest) NormalizedTicker() string {
	return strings.ToUpper(strings.TrimSpace(r.Ticker))
}

// Candidate is the canonical pre-normalization shape every adapter maps its
// output into. Values are one level deep: scalars, lists, or opaque nested
// maps keyed by the canonical field names.
type Candidate map[string]any

// Clone returns a shallow copy; list and nested values are shared.
func (c Candidate) Clone() Candidate {
	out := make(Candidate, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// SourceResult is what a single adapter produces. A result with a non-empty
// Error or nil Data is invalid and excluded from aggregation, as is a
// confidence outside [0,1].
type SourceResult struct {
	Source     string
	Data       Candidate
	Error      string
	Confidence float64
}

// Valid reports whether the result may contribute to aggregation.
func (r SourceResult) Valid() bool {
	return r.Error == "" && r.Data != nil && r.Confidence >= 0 && r.Confidence <= 1
}

// IntelligenceResponse is the assembled response envelope. Data is
// schema-complete whenever Success is true.
type IntelligenceResponse struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data"`
	ErrorMessage string `json:"errorMessage"`
}

// FailureResponse builds the minimal ticker-only payload returned when an
// error escapes the whole pipeline.
func FailureResponse(ticker string, err error) IntelligenceResponse {
	msg := "unknown error occurred"
	if err != nil {
		msg = err.Error()
	}
	return IntelligenceResponse{
		Success:      false,
		Data:         map[string]any{"company": map[string]any{"ticker": ticker}},
		ErrorMessage: msg,
	}
}

// ServedEvent describes one answered intelligence request. Events feed the
// optional serving-telemetry sink, not the pipeline itself.
type ServedEvent struct {
	Ticker    string    `json:"ticker"`
	Category  Category  `json:"category"`
	CacheHit  bool      `json:"cache_hit"`
	Success   bool      `json:"success"`
	Fallback  bool      `json:"fallback"`
	Sources   []string  `json:"sources"`
	LatencyMs int64     `json:"latency_ms"`
	ServedAt  time.Time `json:"served_at"`
}
