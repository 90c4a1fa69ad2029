package sources

import (
	"context"
	"fmt"

	"IntelPull/internal/domain/models"
	xhttp "IntelPull/pkg/http"
)

// Fundamentals pulls company profile and financial figures from an external
// fundamentals API. It covers the financial, crypto and generic categories;
// crypto treasury detail still comes from other sources, this one contributes
// the company-level figures.
type Fundamentals struct {
	client  *xhttp.Client
	baseURL string
	apiKey  string
}

// NewFundamentals creates the fundamentals adapter.
func NewFundamentals(client *xhttp.Client, baseURL, apiKey string) *Fundamentals {
	return &Fundamentals{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (f *Fundamentals) Name() string { return "fundamentals" }

func (f *Fundamentals) Supports(category models.Category) bool {
	switch category {
	case models.CategoryFinancial, models.CategoryCrypto, models.CategoryGeneric:
		return true
	}
	return false
}

type fundamentalsPayload struct {
	Ticker            string  `json:"ticker"`
	Name              string  `json:"name"`
	Exchange          string  `json:"exchange"`
	Sector            string  `json:"sector"`
	Industry          string  `json:"industry"`
	Website           string  `json:"website"`
	Country           string  `json:"country"`
	Currency          string  `json:"currency"`
	MarketCap         float64 `json:"market_cap"`
	SharePrice        float64 `json:"share_price"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	Volume            float64 `json:"volume"`
	EPS               float64 `json:"eps"`
	BookValue         float64 `json:"book_value"`
	Confidence        float64 `json:"confidence"`
	UpdatedAt         string  `json:"updated_at"`
}

func (f *Fundamentals) Fetch(ctx context.Context, req models.IntelligenceRequest) (models.SourceResult, error) {
	ticker := req.NormalizedTicker()

	var payload fundamentalsPayload
	err := f.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v1/fundamentals/%s", f.baseURL, ticker),
		Headers: map[string]string{
			"Authorization": "Bearer " + f.apiKey,
		},
		QueryParams: map[string][]string{
			"window": {req.Params.Window()},
		},
	}, &payload)
	if err != nil {
		return models.SourceResult{}, fmt.Errorf("fundamentals fetch %s: %w", ticker, err)
	}
	if payload.Ticker == "" {
		return models.SourceResult{}, fmt.Errorf("fundamentals fetch %s: empty payload", ticker)
	}

	data := models.Candidate{
		models.FieldTicker: ticker,
	}
	putString(data, models.FieldCompanyName, payload.Name)
	putString(data, models.FieldExchange, payload.Exchange)
	putString(data, models.FieldSector, payload.Sector)
	putString(data, models.FieldIndustry, payload.Industry)
	putString(data, models.FieldWebsite, payload.Website)
	putString(data, models.FieldCountry, payload.Country)
	putString(data, models.FieldCurrency, payload.Currency)
	putString(data, models.FieldLastUpdated, payload.UpdatedAt)
	putFloat(data, models.FieldMarketCap, payload.MarketCap)
	putFloat(data, models.FieldSharePrice, payload.SharePrice)
	putFloat(data, models.FieldSharesOutstanding, payload.SharesOutstanding)
	putFloat(data, models.FieldVolume, payload.Volume)
	putFloat(data, models.FieldEPS, payload.EPS)
	putFloat(data, models.FieldBookValue, payload.BookValue)

	confidence := payload.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.85
	}

	return models.SourceResult{
		Source:     f.Name(),
		Data:       data,
		Confidence: confidence,
	}, nil
}

func putString(c models.Candidate, key, v string) {
	if v != "" {
		c[key] = v
	}
}

func putFloat(c models.Candidate, key string, v float64) {
	if v != 0 {
		c[key] = v
	}
}
