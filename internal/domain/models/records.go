package models

// Record is the tagged union of normalized per-category outputs. Every record
// carries the shared company block and the three quality indicators, and can
// rebuild the canonical candidate shape it was normalized from.
type Record interface {
	RecordCategory() Category
	Candidate() Candidate
}

// Company is the descriptor block shared by all categories.
type Company struct {
	Ticker            string  `json:"ticker"`
	CompanyName       string  `json:"companyName"`
	Website           string  `json:"website"`
	Exchange          string  `json:"exchange"`
	Sector            string  `json:"sector"`
	Industry          string  `json:"industry"`
	MarketCap         float64 `json:"marketCap"`
	SharePrice        float64 `json:"sharePrice"`
	Volume            float64 `json:"volume"`
	EPS               float64 `json:"eps"`
	BookValue         float64 `json:"bookValue"`
	Description       string  `json:"description"`
	Headquarters      string  `json:"headquarters"`
	Country           string  `json:"country"`
	CountryCode       string  `json:"countryCode"`
	Address           string  `json:"address"`
	Currency          string  `json:"currency"`
	Symbol            string  `json:"symbol"`
	SharesFloat       float64 `json:"sharesFloat"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	Sentiment         string  `json:"sentiment"`
	SentimentScore    float64 `json:"sentimentScore"`
	LastUpdated       string  `json:"lastUpdated"`
}

// Quality carries the fixed scalar quality indicators, each in [0,1].
type Quality struct {
	Confidence   float64 `json:"confidenceScore"`
	Freshness    float64 `json:"freshnessScore"`
	Completeness float64 `json:"completenessScore"`
}

// CryptoHolding is one asset entry in a crypto holdings block.
type CryptoHolding struct {
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
	USDValue    float64 `json:"usdValue"`
	LastUpdated string  `json:"lastUpdated"`
}

// HoldingsSnapshot is a point-in-time view of total crypto holdings.
type HoldingsSnapshot struct {
	RecordedAt    string          `json:"recordedAt"`
	TotalUSDValue float64         `json:"totalUsdValue"`
	Holdings      []CryptoHolding `json:"holdings"`
}

// CryptoData is the category-specific block of a crypto record.
type CryptoData struct {
	CurrentHoldings    []CryptoHolding    `json:"currentHoldings"`
	CurrentTotalUSD    float64            `json:"currentTotalUsd"`
	HistoricalHoldings []HoldingsSnapshot `json:"historicalHoldings"`
}

// CryptoRecord is the normalized output for the CRYPTO category.
type CryptoRecord struct {
	Company Company    `json:"company"`
	Data    CryptoData `json:"data"`
	Quality
}

func (CryptoRecord) RecordCategory() Category { return CategoryCrypto }

// FinancialMetrics is the valuation metrics block of a financial record.
type FinancialMetrics struct {
	MarketCap  float64  `json:"marketCap"`
	SharePrice float64  `json:"sharePrice"`
	Sector     string   `json:"sector"`
	Industry   string   `json:"industry"`
	Volume     float64  `json:"volume"`
	EPS        float64  `json:"eps"`
	BookValue  float64  `json:"bookValue"`
	Fields     []string `json:"fields,omitempty"`
}

// FinancialRecord is the normalized output for the FINANCIAL category.
type FinancialRecord struct {
	Company Company          `json:"company"`
	Data    FinancialMetrics `json:"data"`
	Quality
}

func (FinancialRecord) RecordCategory() Category { return CategoryFinancial }

// SentimentSource is one contributor to the sentiment breakdown.
type SentimentSource struct {
	Source    string  `json:"source"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

// SentimentData is the category-specific block of a sentiment record.
type SentimentData struct {
	OverallSentiment string            `json:"overallSentiment"`
	SentimentScore   float64           `json:"sentimentScore"`
	Confidence       float64           `json:"confidence"`
	Sources          []SentimentSource `json:"sources"`
	Keywords         []string          `json:"keywords"`
	TimePeriod       string            `json:"timePeriod"`
}

// SentimentRecord is the normalized output for the SENTIMENT category.
type SentimentRecord struct {
	Company Company       `json:"company"`
	Data    SentimentData `json:"data"`
	Quality
}

func (SentimentRecord) RecordCategory() Category { return CategorySentiment }

// NewsArticle is one entry in a news record's article list.
type NewsArticle struct {
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	URL            string  `json:"url"`
	Source         string  `json:"source"`
	PublishedAt    string  `json:"published_date"`
	RelevanceScore float64 `json:"relevance_score"`
	Sentiment      string  `json:"sentiment,omitempty"`
}

// NewsSummary aggregates an article list.
type NewsSummary struct {
	TotalArticles      int            `json:"total_articles"`
	DateRangeStart     string         `json:"date_range_start"`
	DateRangeEnd       string         `json:"date_range_end"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	TopSources         []string       `json:"top_sources"`
}

// NewsData is the category-specific block of a news record.
type NewsData struct {
	Articles []NewsArticle `json:"articles"`
	Summary  NewsSummary   `json:"summary"`
}

// NewsRecord is the normalized output for the NEWS category.
type NewsRecord struct {
	Company Company  `json:"company"`
	Data    NewsData `json:"data"`
	Quality
}

func (NewsRecord) RecordCategory() Category { return CategoryNews }

// GenericRecord is the normalized output for any unrecognized category.
type GenericRecord struct {
	Company Company `json:"company"`
	Quality
}

func (GenericRecord) RecordCategory() Category { return CategoryGeneric }
