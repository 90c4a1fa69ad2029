package models

// Canonical candidate field names. Adapters map their output onto these keys
// before aggregation; the normalizer reads the same keys when shaping records.
const (
	FieldTicker            = "ticker"
	FieldCompanyName       = "companyName"
	FieldWebsite           = "website"
	FieldExchange          = "exchange"
	FieldSector            = "sector"
	FieldIndustry          = "industry"
	FieldMarketCap         = "marketCap"
	FieldSharePrice        = "sharePrice"
	FieldVolume            = "volume"
	FieldEPS               = "eps"
	FieldBookValue         = "bookValue"
	FieldDescription       = "description"
	FieldHeadquarters      = "headquarters"
	FieldCountry           = "country"
	FieldCountryCode       = "countryCode"
	FieldAddress           = "address"
	FieldCurrency          = "currency"
	FieldSharesFloat       = "sharesFloat"
	FieldSharesOutstanding = "sharesOutstanding"
	FieldSentiment         = "sentiment"
	FieldSentimentScore    = "sentimentScore"
	FieldLastUpdated       = "lastUpdated"

	FieldConfidenceScore   = "confidenceScore"
	FieldFreshnessScore    = "freshnessScore"
	FieldCompletenessScore = "completenessScore"

	FieldCryptoHoldings     = "cryptoHoldings"
	FieldTotalCryptoValue   = "totalCryptoValue"
	FieldHistoricalHoldings = "historicalHoldings"

	FieldMetricFields = "fields"

	FieldOverallSentiment    = "overallSentiment"
	FieldSentimentConfidence = "sentimentConfidence"
	FieldSentimentSources    = "sentimentSources"
	FieldKeywords            = "keywords"
	FieldTimePeriod          = "timePeriod"

	FieldArticles       = "articles"
	FieldTopSources     = "topSources"
	FieldDateRangeStart = "dateRangeStart"
	FieldDateRangeEnd   = "dateRangeEnd"
)

func (c Company) candidate() Candidate {
	return Candidate{
		FieldTicker:            c.Ticker,
		FieldCompanyName:       c.CompanyName,
		FieldWebsite:           c.Website,
		FieldExchange:          c.Exchange,
		FieldSector:            c.Sector,
		FieldIndustry:          c.Industry,
		FieldMarketCap:         c.MarketCap,
		FieldSharePrice:        c.SharePrice,
		FieldVolume:            c.Volume,
		FieldEPS:               c.EPS,
		FieldBookValue:         c.BookValue,
		FieldDescription:       c.Description,
		FieldHeadquarters:      c.Headquarters,
		FieldCountry:           c.Country,
		FieldCountryCode:       c.CountryCode,
		FieldAddress:           c.Address,
		FieldCurrency:          c.Currency,
		FieldSharesFloat:       c.SharesFloat,
		FieldSharesOutstanding: c.SharesOutstanding,
		FieldSentiment:         c.Sentiment,
		FieldSentimentScore:    c.SentimentScore,
		FieldLastUpdated:       c.LastUpdated,
	}
}

func (q Quality) addTo(c Candidate) {
	c[FieldConfidenceScore] = q.Confidence
	c[FieldFreshnessScore] = q.Freshness
	c[FieldCompletenessScore] = q.Completeness
}

// Candidate rebuilds the canonical candidate shape of a crypto record.
func (r CryptoRecord) Candidate() Candidate {
	c := r.Company.candidate()
	r.Quality.addTo(c)
	c[FieldCryptoHoldings] = r.Data.CurrentHoldings
	c[FieldTotalCryptoValue] = r.Data.CurrentTotalUSD
	c[FieldHistoricalHoldings] = r.Data.HistoricalHoldings
	return c
}

// Candidate rebuilds the canonical candidate shape of a financial record.
func (r FinancialRecord) Candidate() Candidate {
	c := r.Company.candidate()
	r.Quality.addTo(c)
	if len(r.Data.Fields) > 0 {
		c[FieldMetricFields] = r.Data.Fields
	}
	return c
}

// Candidate rebuilds the canonical candidate shape of a sentiment record.
func (r SentimentRecord) Candidate() Candidate {
	c := r.Company.candidate()
	r.Quality.addTo(c)
	c[FieldOverallSentiment] = r.Data.OverallSentiment
	c[FieldSentimentScore] = r.Data.SentimentScore
	c[FieldSentimentConfidence] = r.Data.Confidence
	c[FieldSentimentSources] = r.Data.Sources
	c[FieldKeywords] = r.Data.Keywords
	c[FieldTimePeriod] = r.Data.TimePeriod
	return c
}

// Candidate rebuilds the canonical candidate shape of a news record.
func (r NewsRecord) Candidate() Candidate {
	c := r.Company.candidate()
	r.Quality.addTo(c)
	c[FieldArticles] = r.Data.Articles
	c[FieldTopSources] = r.Data.Summary.TopSources
	c[FieldDateRangeStart] = r.Data.Summary.DateRangeStart
	c[FieldDateRangeEnd] = r.Data.Summary.DateRangeEnd
	return c
}

// Candidate rebuilds the canonical candidate shape of a generic record.
func (r GenericRecord) Candidate() Candidate {
	c := r.Company.candidate()
	r.Quality.addTo(c)
	return c
}
