package models

// IntelligenceHTTPRequest is the HTTP-facing query for the intelligence
// endpoint. Defaults are applied with creasty/defaults and validation with
// go-playground/validator, both at the binding layer.
type IntelligenceHTTPRequest struct {
	Ticker           string   `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
	Category         string   `query:"category" json:"category" default:"generic"`
	Fields           []string `query:"fields" json:"fields"`
	Timeframe        string   `query:"timeframe" json:"timeframe" default:"7D" validate:"oneof=1D 7D 30D 90D"`
	Sources          []string `query:"sources" json:"sources" default:"[\"news\"]" validate:"dive,oneof=social news analyst"`
	MaxArticles      int      `query:"max_articles" json:"max_articles" default:"10" validate:"gte=1,lte=50"`
	IncludeSentiment *bool    `query:"include_sentiment" json:"include_sentiment" default:"true"`
}

// ToRequest converts the HTTP query into the pipeline request.
func (r *IntelligenceHTTPRequest) ToRequest() IntelligenceRequest {
	return IntelligenceRequest{
		Ticker:   r.Ticker,
		Category: ParseCategory(r.Category),
		Params: Params{
			Fields:           r.Fields,
			Timeframe:        r.Timeframe,
			Sources:          r.Sources,
			MaxArticles:      r.MaxArticles,
			IncludeSentiment: r.IncludeSentiment,
		},
	}
}
