package sources

import (
	"context"
	"fmt"
	"strings"

	"IntelPull/internal/domain/models"
	xhttp "IntelPull/pkg/http"
)

// SentimentFeed pulls aggregated sentiment from an external scoring API.
type SentimentFeed struct {
	client  *xhttp.Client
	baseURL string
	apiKey  string
}

// NewSentimentFeed creates the sentiment adapter.
func NewSentimentFeed(client *xhttp.Client, baseURL, apiKey string) *SentimentFeed {
	return &SentimentFeed{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (s *SentimentFeed) Name() string { return "sentimentfeed" }

func (s *SentimentFeed) Supports(category models.Category) bool {
	return category == models.CategorySentiment
}

type sentimentFeedSource struct {
	Name      string  `json:"name"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

type sentimentFeedPayload struct {
	Ticker     string                `json:"ticker"`
	Overall    string                `json:"overall"`
	Score      float64               `json:"score"`
	Confidence float64               `json:"confidence"`
	Sources    []sentimentFeedSource `json:"sources"`
	Keywords   []string              `json:"keywords"`
}

func (s *SentimentFeed) Fetch(ctx context.Context, req models.IntelligenceRequest) (models.SourceResult, error) {
	ticker := req.NormalizedTicker()

	var payload sentimentFeedPayload
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v1/sentiment/%s", s.baseURL, ticker),
		Headers: map[string]string{
			"X-Api-Key": s.apiKey,
		},
		QueryParams: map[string][]string{
			"window":  {req.Params.Window()},
			"sources": {strings.Join(req.Params.SourceSet(), ",")},
		},
	}, &payload)
	if err != nil {
		return models.SourceResult{}, fmt.Errorf("sentimentfeed fetch %s: %w", ticker, err)
	}
	if payload.Overall == "" {
		return models.SourceResult{}, fmt.Errorf("sentimentfeed fetch %s: empty payload", ticker)
	}

	sources := make([]models.SentimentSource, 0, len(payload.Sources))
	for _, src := range payload.Sources {
		sources = append(sources, models.SentimentSource{
			Source:    src.Name,
			Sentiment: src.Sentiment,
			Score:     src.Score,
			Timestamp: src.Timestamp,
		})
	}

	data := models.Candidate{
		models.FieldTicker:           ticker,
		models.FieldOverallSentiment: payload.Overall,
		models.FieldSentimentScore:   payload.Score,
		models.FieldTimePeriod:       req.Params.Window(),
	}
	if payload.Confidence > 0 {
		data[models.FieldSentimentConfidence] = payload.Confidence
	}
	if len(sources) > 0 {
		data[models.FieldSentimentSources] = sources
	}
	if len(payload.Keywords) > 0 {
		data[models.FieldKeywords] = payload.Keywords
	}

	confidence := payload.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.75
	}

	return models.SourceResult{
		Source:     s.Name(),
		Data:       data,
		Confidence: confidence,
	}, nil
}
