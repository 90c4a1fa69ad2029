package fallback

import (
	"time"

	"IntelPull/internal/domain/models"
)

// curatedCompanies is the hand-authored table of well-known tickers, used
// before synthesis when no source produced data. Entries carry a complete
// company descriptor block; the category block is layered on by the
// synthesizer so the resolved candidate is always schema-complete.
func curatedCompanies(now time.Time) map[string]models.Candidate {
	updated := models.FormatTime(now)
	return map[string]models.Candidate{
		"MSTR": {
			models.FieldCompanyName:  "MicroStrategy Incorporated",
			models.FieldWebsite:      "https://www.microstrategy.com",
			models.FieldExchange:     "NASDAQ",
			models.FieldSector:       "Technology",
			models.FieldMarketCap:    float64(25_000_000_000),
			models.FieldSharePrice:   1500.00,
			models.FieldDescription:  "MicroStrategy is a business intelligence and mobile software company.",
			models.FieldHeadquarters: "Tysons Corner, Virginia",
			models.FieldCountry:      "USA",
			models.FieldCountryCode:  "US",
			models.FieldLastUpdated:  updated,
		},
		"TSLA": {
			models.FieldCompanyName:  "Tesla, Inc.",
			models.FieldWebsite:      "https://www.tesla.com",
			models.FieldExchange:     "NASDAQ",
			models.FieldSector:       "Manufacturing",
			models.FieldMarketCap:    float64(800_000_000_000),
			models.FieldSharePrice:   250.00,
			models.FieldDescription:  "Tesla designs, develops, manufactures, leases, and sells electric vehicles and energy generation and storage systems.",
			models.FieldHeadquarters: "Austin, Texas",
			models.FieldCountry:      "USA",
			models.FieldCountryCode:  "US",
			models.FieldLastUpdated:  updated,
		},
		"COIN": {
			models.FieldCompanyName:  "Coinbase Global, Inc.",
			models.FieldWebsite:      "https://www.coinbase.com",
			models.FieldExchange:     "NASDAQ",
			models.FieldSector:       "Finance",
			models.FieldMarketCap:    float64(45_000_000_000),
			models.FieldSharePrice:   200.00,
			models.FieldDescription:  "Coinbase is a cryptocurrency exchange platform that allows users to buy, sell, and trade various cryptocurrencies.",
			models.FieldHeadquarters: "San Francisco, California",
			models.FieldCountry:      "USA",
			models.FieldCountryCode:  "US",
			models.FieldLastUpdated:  updated,
		},
	}
}
