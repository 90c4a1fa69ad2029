package schema

import (
	"IntelPull/internal/domain/models"
)

// MergePolicy declares how the aggregator combines a field present in more
// than one source result.
type MergePolicy int

const (
	// MergeNumeric takes the confidence-weighted mean over the results
	// containing the field, weights renormalized over that subset.
	MergeNumeric MergePolicy = iota
	// MergeCategorical takes the value from the highest-confidence
	// contributing result, ties broken by first-seen order.
	MergeCategorical
	// MergeList concatenates contributions and removes duplicates.
	MergeList
)

// policies is the declared per-field merge policy table keyed by the
// canonical candidate schema. Fields not listed fall back to inference from
// the runtime value type.
var policies = map[string]MergePolicy{
	models.FieldMarketCap:           MergeNumeric,
	models.FieldSharePrice:          MergeNumeric,
	models.FieldVolume:              MergeNumeric,
	models.FieldEPS:                 MergeNumeric,
	models.FieldBookValue:           MergeNumeric,
	models.FieldSharesFloat:         MergeNumeric,
	models.FieldSharesOutstanding:   MergeNumeric,
	models.FieldSentimentScore:      MergeNumeric,
	models.FieldTotalCryptoValue:    MergeNumeric,
	models.FieldSentimentConfidence: MergeNumeric,
	models.FieldConfidenceScore:     MergeNumeric,
	models.FieldFreshnessScore:      MergeNumeric,
	models.FieldCompletenessScore:   MergeNumeric,

	models.FieldCryptoHoldings:     MergeList,
	models.FieldHistoricalHoldings: MergeList,
	models.FieldArticles:           MergeList,
	models.FieldKeywords:           MergeList,
	models.FieldTopSources:         MergeList,
	models.FieldSentimentSources:   MergeList,
	models.FieldMetricFields:       MergeList,

	models.FieldTicker:           MergeCategorical,
	models.FieldCompanyName:      MergeCategorical,
	models.FieldSector:           MergeCategorical,
	models.FieldIndustry:         MergeCategorical,
	models.FieldExchange:         MergeCategorical,
	models.FieldSentiment:        MergeCategorical,
	models.FieldOverallSentiment: MergeCategorical,
	models.FieldLastUpdated:      MergeCategorical,
}

// PolicyFor returns the merge policy for a canonical field. The sample value
// drives inference for undeclared fields; nested maps and anything else
// non-numeric merge categorically, so type disagreement between sources can
// never fail the merge.
func PolicyFor(field string, sample any) MergePolicy {
	if p, ok := policies[field]; ok {
		return p
	}
	if _, ok := AsFloat(sample); ok {
		return MergeNumeric
	}
	switch sample.(type) {
	case []any, []string:
		return MergeList
	}
	return MergeCategorical
}
