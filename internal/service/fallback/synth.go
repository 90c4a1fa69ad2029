package fallback

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"IntelPull/internal/domain/models"
	"IntelPull/pkg/util"
)

var sectors = []string{"Technology", "Finance", "Manufacturing", "Healthcare"}

var sentimentValues = []string{"positive", "neutral", "negative"}

// sentimentSourcePools maps requested source types onto realistic provider
// names for the per-source sentiment breakdown.
var sentimentSourcePools = map[string][]string{
	"social": {
		"Twitter Sentiment Analysis", "Reddit Community Sentiment",
		"StockTwits Analysis", "Social Media Sentiment",
		"Community Forum Analysis",
	},
	"news": {
		"Bloomberg Terminal", "Reuters Analytics", "Yahoo Finance",
		"MarketWatch", "Financial Times", "Wall Street Journal",
	},
	"analyst": {
		"Seeking Alpha", "Motley Fool", "TradingView", "Alpha Vantage",
		"Finnhub", "Institutional Research",
	},
}

var newsSources = []string{
	"Reuters", "Bloomberg", "CNBC", "MarketWatch", "Yahoo Finance",
	"Financial Times", "Wall Street Journal", "Barron's", "Investing.com",
	"Seeking Alpha", "Motley Fool", "TheStreet", "Benzinga", "TipRanks",
	"Zacks Investment Research", "Morningstar",
}

var sectorKeywords = map[string][]string{
	"technology": {
		"innovation leadership", "digital transformation", "software solutions",
		"cloud computing", "AI and machine learning", "platform scalability",
	},
	"finance": {
		"financial services", "banking solutions", "investment performance",
		"fintech innovation", "digital banking", "wealth management",
	},
	"manufacturing": {
		"manufacturing efficiency", "production capacity", "supply chain optimization",
		"quality control", "automation technology", "operational excellence",
	},
	"healthcare": {
		"healthcare innovation", "medical technology", "pharmaceutical development",
		"clinical research", "patient care solutions", "medical device advancement",
	},
}

var genericKeywords = []string{
	"strong performance", "market leadership", "strategic growth",
	"operational excellence", "competitive advantage", "revenue growth",
}

// synthesize builds a schema-complete candidate for an unknown ticker.
// Every value respects its declared range; the shape is deterministic per
// category even though individual values are drawn at random.
func synthesize(ticker string, category models.Category, params models.Params) models.Candidate {
	sector := sectors[rand.Intn(len(sectors))]
	now := time.Now()

	c := models.Candidate{
		models.FieldTicker:      ticker,
		models.FieldCompanyName: ticker + " Corporation",
		models.FieldWebsite:     fmt.Sprintf("https://www.%s.com", strings.ToLower(ticker)),
		models.FieldExchange:    "NASDAQ",
		models.FieldSector:      sector,
		models.FieldIndustry:    sector,
		models.FieldMarketCap:   float64(randInt(1_000_000_000, 100_000_000_000)),
		models.FieldSharePrice:  randFloat(10, 500),
		models.FieldVolume:      float64(randInt(1_000_000, 100_000_000)),
		models.FieldEPS:         randFloat(0.5, 20),
		models.FieldBookValue:   randFloat(5, 100),
		models.FieldDescription: fmt.Sprintf("%s Corporation is a leading %s company with strong market presence and innovative solutions.",
			ticker, strings.ToLower(sector)),
		models.FieldHeadquarters:      "New York, NY",
		models.FieldCountry:           "USA",
		models.FieldCountryCode:       "US",
		models.FieldAddress:           "123 Business Street, New York, NY 10001",
		models.FieldCurrency:          "USD",
		models.FieldSharesFloat:       float64(randInt(10_000_000, 1_000_000_000)),
		models.FieldSharesOutstanding: float64(randInt(50_000_000, 5_000_000_000)),
		models.FieldSentiment:         sentimentValues[rand.Intn(len(sentimentValues))],
		models.FieldSentimentScore:    randFloat(-1, 1),
		models.FieldLastUpdated:       models.FormatTime(now),
	}

	switch category {
	case models.CategoryCrypto:
		synthesizeCryptoBlock(c, now)
	case models.CategorySentiment:
		synthesizeSentimentBlock(c, ticker, sector, params, now)
	case models.CategoryNews:
		synthesizeNewsBlock(c, ticker, params, now)
	}
	return c
}

func synthesizeCryptoBlock(c models.Candidate, now time.Time) {
	updated := models.FormatTime(now)
	holdings := []models.CryptoHolding{
		{Currency: "BTC", Amount: float64(randInt(500, 25_000)), USDValue: float64(randInt(15_000_000, 1_000_000_000)), LastUpdated: updated},
		{Currency: "ETH", Amount: float64(randInt(2_000, 100_000)), USDValue: float64(randInt(3_000_000, 300_000_000)), LastUpdated: updated},
		{Currency: "SOL", Amount: float64(randInt(10_000, 500_000)), USDValue: float64(randInt(500_000, 50_000_000)), LastUpdated: updated},
	}
	var total float64
	for _, h := range holdings {
		total += h.USDValue
	}
	c[models.FieldCryptoHoldings] = holdings
	c[models.FieldTotalCryptoValue] = total
	c[models.FieldHistoricalHoldings] = []models.HoldingsSnapshot{{
		RecordedAt:    updated,
		TotalUSDValue: total,
		Holdings:      holdings,
	}}
}

func synthesizeSentimentBlock(c models.Candidate, ticker, sector string, params models.Params, now time.Time) {
	overall := sentimentValues[rand.Intn(len(sentimentValues))]

	var sources []models.SentimentSource
	for _, kind := range params.SourceSet() {
		pool, ok := sentimentSourcePools[kind]
		if !ok {
			continue
		}
		n := 1 + rand.Intn(2)
		for _, name := range sample(pool, n) {
			sources = append(sources, models.SentimentSource{
				Source:    name,
				Sentiment: sentimentValues[rand.Intn(len(sentimentValues))],
				Score:     randFloat(0.1, 1.0),
				Timestamp: models.FormatTime(now),
			})
		}
	}
	if len(sources) == 0 {
		sources = []models.SentimentSource{{
			Source:    "Default Sentiment Analysis",
			Sentiment: overall,
			Score:     randFloat(0.1, 1.0),
			Timestamp: models.FormatTime(now),
		}}
	}

	pool, ok := sectorKeywords[strings.ToLower(sector)]
	if !ok {
		pool = genericKeywords
	}
	n := 3 + rand.Intn(3)
	keywords := make([]string, 0, n)
	for _, kw := range sample(pool, n) {
		keywords = append(keywords, ticker+" "+kw)
	}

	c[models.FieldOverallSentiment] = overall
	c[models.FieldSentiment] = overall
	c[models.FieldSentimentConfidence] = randFloat(0.7, 0.95)
	c[models.FieldSentimentSources] = sources
	c[models.FieldKeywords] = keywords
	c[models.FieldTimePeriod] = params.Window()
}

func synthesizeNewsBlock(c models.Candidate, ticker string, params models.Params, now time.Time) {
	companyName := ticker + " Corporation"
	if name, ok := c[models.FieldCompanyName].(string); ok {
		companyName = name
	}

	templates := []models.NewsArticle{
		{
			Title:   fmt.Sprintf("%s Reports Strong Q%d Performance", ticker, 1+rand.Intn(4)),
			Summary: fmt.Sprintf("%s demonstrates continued growth and market leadership", companyName),
		},
		{
			Title:   fmt.Sprintf("Analysts Upgrade %s Rating", ticker),
			Summary: fmt.Sprintf("Investment firms revise outlook on %s based on recent performance", companyName),
		},
		{
			Title:   fmt.Sprintf("%s Expands Strategic Initiative", ticker),
			Summary: fmt.Sprintf("%s continues growth through market expansion and product development", companyName),
		},
	}

	limit := params.ArticleLimit()
	if limit > len(templates) {
		limit = len(templates)
	}
	articles := make([]models.NewsArticle, limit)
	copy(articles, templates[:limit])
	for i := range articles {
		articles[i].URL = fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(ticker), i+1)
		articles[i].Source = newsSources[rand.Intn(len(newsSources))]
		articles[i].PublishedAt = models.FormatTime(now)
		articles[i].RelevanceScore = randFloat(0.7, 1.0)
		if params.SentimentIncluded() {
			articles[i].Sentiment = sentimentValues[rand.Intn(len(sentimentValues))]
		}
	}

	c[models.FieldArticles] = articles
	c[models.FieldTopSources] = sample(newsSources, 3)
	c[models.FieldDateRangeEnd] = models.FormatTime(now)
	c[models.FieldDateRangeStart] = models.FormatTime(now.Add(-util.WindowDefault(params.Window())))
}

// sample returns up to n distinct elements of pool in random order.
func sample(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	idx := rand.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
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
