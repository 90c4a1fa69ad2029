package schema

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"IntelPull/internal/domain/models"
	"IntelPull/pkg/util"
)

// Default quality indicators attached when a candidate carries none.
const (
	DefaultConfidence   = 0.95
	DefaultFreshness    = 0.98
	DefaultCompleteness = 0.95
)

var sentimentValues = []string{"positive", "neutral", "negative"}

// newsSourcePool backs defaulted article sources and top-source lists.
var newsSourcePool = []string{
	"Reuters", "Bloomberg", "CNBC", "MarketWatch", "Yahoo Finance",
	"Financial Times", "Wall Street Journal", "Barron's", "Investing.com",
	"Seeking Alpha",
}

// Normalize shapes a candidate record into the category's fixed output
// schema. Every required field ends up present with a valid type; missing
// fields are filled with schema-valid defaults and numeric strings are
// coerced. Values already in range are passed through untouched, so
// normalizing an already-normalized record is a no-op.
func Normalize(category models.Category, ticker string, c models.Candidate, params models.Params) models.Record {
	if c == nil {
		c = models.Candidate{}
	}
	ticker = strings.ToUpper(ticker)

	switch category {
	case models.CategoryCrypto:
		return normalizeCrypto(ticker, c)
	case models.CategoryFinancial:
		return normalizeFinancial(ticker, c, params)
	case models.CategorySentiment:
		return normalizeSentiment(ticker, c, params)
	case models.CategoryNews:
		return normalizeNews(ticker, c, params)
	default:
		return models.GenericRecord{
			Company: normalizeCompany(ticker, c),
			Quality: normalizeQuality(c),
		}
	}
}

func normalizeCompany(ticker string, c models.Candidate) models.Company {
	sector := getString(c, models.FieldSector, "Technology")
	return models.Company{
		Ticker:      ticker,
		CompanyName: getString(c, models.FieldCompanyName, ticker+" Corporation"),
		Website:     getString(c, models.FieldWebsite, fmt.Sprintf("https://www.%s.com", strings.ToLower(ticker))),
		Exchange:    getString(c, models.FieldExchange, "NASDAQ"),
		Sector:      sector,
		Industry:    getString(c, models.FieldIndustry, sector),
		MarketCap:   getFloat(c, models.FieldMarketCap, func() float64 { return float64(randInt(1_000_000_000, 100_000_000_000)) }),
		SharePrice:  getFloat(c, models.FieldSharePrice, func() float64 { return randFloat(10, 500) }),
		Volume:      getFloat(c, models.FieldVolume, func() float64 { return float64(randInt(1_000_000, 100_000_000)) }),
		EPS:         getFloat(c, models.FieldEPS, func() float64 { return randFloat(0.5, 20) }),
		BookValue:   getFloat(c, models.FieldBookValue, func() float64 { return randFloat(5, 100) }),
		Description: getString(c, models.FieldDescription,
			fmt.Sprintf("%s Corporation is a leading %s company with strong market presence and innovative solutions.", ticker, strings.ToLower(sector))),
		Headquarters:      getString(c, models.FieldHeadquarters, "New York, NY"),
		Country:           getString(c, models.FieldCountry, "USA"),
		CountryCode:       getString(c, models.FieldCountryCode, "US"),
		Address:           getString(c, models.FieldAddress, "123 Business Street, New York, NY 10001"),
		Currency:          getString(c, models.FieldCurrency, "USD"),
		Symbol:            ticker,
		SharesFloat:       getFloat(c, models.FieldSharesFloat, func() float64 { return float64(randInt(10_000_000, 1_000_000_000)) }),
		SharesOutstanding: getFloat(c, models.FieldSharesOutstanding, func() float64 { return float64(randInt(50_000_000, 5_000_000_000)) }),
		Sentiment:         getString(c, models.FieldSentiment, sentimentValues[rand.Intn(len(sentimentValues))]),
		SentimentScore:    getFloat(c, models.FieldSentimentScore, func() float64 { return randFloat(-1, 1) }),
		LastUpdated:       getString(c, models.FieldLastUpdated, models.FormatTime(time.Now())),
	}
}

func normalizeQuality(c models.Candidate) models.Quality {
	return models.Quality{
		Confidence:   getFloat(c, models.FieldConfidenceScore, func() float64 { return DefaultConfidence }),
		Freshness:    getFloat(c, models.FieldFreshnessScore, func() float64 { return DefaultFreshness }),
		Completeness: getFloat(c, models.FieldCompletenessScore, func() float64 { return DefaultCompleteness }),
	}
}

func normalizeCrypto(ticker string, c models.Candidate) models.CryptoRecord {
	holdings := getHoldings(c, models.FieldCryptoHoldings)
	if len(holdings) == 0 {
		holdings = defaultHoldings()
	}
	for i := range holdings {
		if holdings[i].Currency == "" {
			holdings[i].Currency = "BTC"
		}
		if holdings[i].LastUpdated == "" {
			holdings[i].LastUpdated = models.FormatTime(time.Now())
		}
	}

	total := getFloat(c, models.FieldTotalCryptoValue, func() float64 {
		var sum float64
		for _, h := range holdings {
			sum += h.USDValue
		}
		return sum
	})

	snapshots := getSnapshots(c, models.FieldHistoricalHoldings)
	if len(snapshots) == 0 {
		snapshots = []models.HoldingsSnapshot{{
			RecordedAt:    models.FormatTime(time.Now()),
			TotalUSDValue: total,
			Holdings:      holdings,
		}}
	}

	return models.CryptoRecord{
		Company: normalizeCompany(ticker, c),
		Data: models.CryptoData{
			CurrentHoldings:    holdings,
			CurrentTotalUSD:    total,
			HistoricalHoldings: snapshots,
		},
		Quality: normalizeQuality(c),
	}
}

func normalizeFinancial(ticker string, c models.Candidate, params models.Params) models.FinancialRecord {
	company := normalizeCompany(ticker, c)
	fields := params.Fields
	if len(fields) == 0 {
		fields = getStringList(c, models.FieldMetricFields)
	}
	return models.FinancialRecord{
		Company: company,
		Data: models.FinancialMetrics{
			MarketCap:  company.MarketCap,
			SharePrice: company.SharePrice,
			Sector:     company.Sector,
			Industry:   company.Industry,
			Volume:     company.Volume,
			EPS:        company.EPS,
			BookValue:  company.BookValue,
			Fields:     fields,
		},
		Quality: normalizeQuality(c),
	}
}

func normalizeSentiment(ticker string, c models.Candidate, params models.Params) models.SentimentRecord {
	company := normalizeCompany(ticker, c)

	sources := getSentimentSources(c, models.FieldSentimentSources)
	if len(sources) == 0 {
		sources = []models.SentimentSource{{
			Source:    "Default Sentiment Analysis",
			Sentiment: company.Sentiment,
			Score:     randFloat(0.1, 1.0),
			Timestamp: models.FormatTime(time.Now()),
		}}
	}

	keywords := getStringList(c, models.FieldKeywords)
	if len(keywords) == 0 {
		keywords = defaultKeywords(ticker)
	}

	return models.SentimentRecord{
		Company: company,
		Data: models.SentimentData{
			OverallSentiment: getString(c, models.FieldOverallSentiment, company.Sentiment),
			SentimentScore:   company.SentimentScore,
			Confidence:       getFloat(c, models.FieldSentimentConfidence, func() float64 { return randFloat(0.7, 0.95) }),
			Sources:          sources,
			Keywords:         keywords,
			TimePeriod:       getString(c, models.FieldTimePeriod, params.Window()),
		},
		Quality: normalizeQuality(c),
	}
}

func normalizeNews(ticker string, c models.Candidate, params models.Params) models.NewsRecord {
	company := normalizeCompany(ticker, c)
	limit := params.ArticleLimit()

	articles := getArticles(c, models.FieldArticles)
	if len(articles) == 0 {
		articles = defaultArticles(ticker, company.CompanyName, min(3, limit))
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}
	for i := range articles {
		// Zero means absent; out-of-range values pass through unclamped.
		if articles[i].RelevanceScore == 0 {
			articles[i].RelevanceScore = randFloat(0.7, 1.0)
		}
		if articles[i].PublishedAt == "" {
			articles[i].PublishedAt = models.FormatTime(time.Now())
		}
		if params.SentimentIncluded() {
			if articles[i].Sentiment == "" {
				articles[i].Sentiment = sentimentValues[rand.Intn(len(sentimentValues))]
			}
		} else {
			articles[i].Sentiment = ""
		}
	}

	breakdown := map[string]int{"positive": 0, "negative": 0, "neutral": 0}
	for _, a := range articles {
		if _, ok := breakdown[a.Sentiment]; ok {
			breakdown[a.Sentiment]++
		}
	}

	topSources := getStringList(c, models.FieldTopSources)
	if len(topSources) == 0 {
		topSources = newsSourcePool[:3]
	}

	now := time.Now()
	return models.NewsRecord{
		Company: company,
		Data: models.NewsData{
			Articles: articles,
			Summary: models.NewsSummary{
				TotalArticles:      len(articles),
				DateRangeStart:     getString(c, models.FieldDateRangeStart, models.FormatTime(now.Add(-util.WindowDefault(params.Window())))),
				DateRangeEnd:       getString(c, models.FieldDateRangeEnd, models.FormatTime(now)),
				SentimentBreakdown: breakdown,
				TopSources:         topSources,
			},
		},
		Quality: normalizeQuality(c),
	}
}

func defaultHoldings() []models.CryptoHolding {
	now := models.FormatTime(time.Now())
	return []models.CryptoHolding{
		{Currency: "BTC", Amount: float64(randInt(500, 25_000)), USDValue: float64(randInt(15_000_000, 1_000_000_000)), LastUpdated: now},
		{Currency: "ETH", Amount: float64(randInt(2_000, 100_000)), USDValue: float64(randInt(3_000_000, 300_000_000)), LastUpdated: now},
	}
}

func defaultKeywords(ticker string) []string {
	return []string{
		ticker + " strong performance",
		ticker + " market leadership",
		ticker + " strategic growth",
	}
}

func defaultArticles(ticker, companyName string, n int) []models.NewsArticle {
	if n < 1 {
		n = 1
	}
	now := models.FormatTime(time.Now())
	pool := []models.NewsArticle{
		{
			Title:   fmt.Sprintf("%s Reports Strong Performance", ticker),
			Summary: fmt.Sprintf("%s demonstrates continued success in market leadership", companyName),
		},
		{
			Title:   fmt.Sprintf("Analysts Upgrade %s Rating", ticker),
			Summary: fmt.Sprintf("Investment experts revise outlook on %s based on recent performance", companyName),
		},
		{
			Title:   fmt.Sprintf("%s Announces Strategic Initiative", ticker),
			Summary: fmt.Sprintf("%s continues growth through market expansion", companyName),
		},
	}
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]models.NewsArticle, n)
	copy(out, pool[:n])
	for i := range out {
		out[i].URL = fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(ticker), i+1)
		out[i].Source = newsSourcePool[rand.Intn(len(newsSourcePool))]
		out[i].PublishedAt = now
		out[i].RelevanceScore = randFloat(0.7, 1.0)
	}
	return out
}

func randFloat(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func randInt(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Int63n(hi-lo)
}
