package models

import "strings"

// Category identifies the kind of intelligence being requested.
type Category string

const (
	CategoryCrypto    Category = "crypto"
	CategoryFinancial Category = "financial"
	CategorySentiment Category = "sentiment"
	CategoryNews      Category = "news"
	CategoryGeneric   Category = "generic"
)

// ParseCategory maps a raw category string onto a known Category.
// Unknown values route to the generic formatting path.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryCrypto:
		return CategoryCrypto
	case CategoryFinancial:
		return CategoryFinancial
	case CategorySentiment:
		return CategorySentiment
	case CategoryNews:
		return CategoryNews
	default:
		return CategoryGeneric
	}
}

// Categories lists every category with a distinct output schema.
func Categories() []Category {
	return []Category{CategoryCrypto, CategoryFinancial, CategorySentiment, CategoryNews, CategoryGeneric}
}
