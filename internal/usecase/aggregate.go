package usecase

import (
	"encoding/json"
	"fmt"

	"IntelPull/internal/domain/models"
	"IntelPull/internal/service/schema"
)

// Aggregator reduces valid source results into one candidate record using
// confidence-weighted field merge. The merge is commutative over the valid
// set: the outcome depends only on which adapters contributed, not on
// completion order.
type Aggregator struct{}

func NewAggregator() *Aggregator { return &Aggregator{} }

// Merge combines results. Zero valid results yields ErrAggregationEmpty; a
// single result passes through unchanged; two or more merge field by field
// under the declared policy table.
func (a *Aggregator) Merge(results []models.SourceResult) (models.Candidate, error) {
	valid := results[:0:0]
	for _, r := range results {
		if r.Valid() {
			valid = append(valid, r)
		}
	}

	switch len(valid) {
	case 0:
		return nil, models.ErrAggregationEmpty
	case 1:
		return valid[0].Data.Clone(), nil
	}

	// First-seen field order, for deterministic tie-breaking.
	var order []string
	seen := make(map[string]bool)
	for _, r := range valid {
		for k := range r.Data {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}

	merged := make(models.Candidate, len(order))
	for _, field := range order {
		merged[field] = mergeField(field, valid)
	}
	return merged, nil
}

type contribution struct {
	value      any
	confidence float64
}

func mergeField(field string, results []models.SourceResult) any {
	var contribs []contribution
	for _, r := range results {
		if v, ok := r.Data[field]; ok {
			contribs = append(contribs, contribution{value: v, confidence: r.Confidence})
		}
	}
	if len(contribs) == 1 {
		return contribs[0].value
	}

	switch schema.PolicyFor(field, contribs[0].value) {
	case schema.MergeNumeric:
		if v, ok := mergeNumeric(contribs); ok {
			return v
		}
		// Type disagreement never fails the merge: fall back to the
		// highest-confidence rule.
		return mergeCategorical(contribs)
	case schema.MergeList:
		return mergeList(contribs)
	default:
		return mergeCategorical(contribs)
	}
}

// mergeNumeric returns the weighted mean over the contributions carrying the
// field, weights renormalized over that subset. It refuses when any
// contribution is not numeric.
func mergeNumeric(contribs []contribution) (float64, bool) {
	var sum, weight float64
	for _, c := range contribs {
		v, ok := schema.AsFloat(c.value)
		if !ok {
			return 0, false
		}
		sum += c.confidence * v
		weight += c.confidence
	}
	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}

// mergeCategorical picks the highest-confidence value, first-seen on ties.
func mergeCategorical(contribs []contribution) any {
	best := contribs[0]
	for _, c := range contribs[1:] {
		if c.confidence > best.confidence {
			best = c
		}
	}
	return best.value
}

// mergeList concatenates contributions in confidence-independent input order
// and removes duplicates. Non-list contributions are treated as single
// elements so shape disagreement cannot abort the merge.
func mergeList(contribs []contribution) any {
	allStrings := true
	var flat []any
	for _, c := range contribs {
		switch list := c.value.(type) {
		case []string:
			for _, s := range list {
				flat = append(flat, s)
			}
		case []any:
			allStrings = false
			flat = append(flat, list...)
		default:
			allStrings = false
			flat = append(flat, c.value)
		}
	}

	seen := make(map[string]bool, len(flat))
	var dedup []any
	for _, v := range flat {
		key := listKey(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		dedup = append(dedup, v)
	}

	if allStrings {
		out := make([]string, 0, len(dedup))
		for _, v := range dedup {
			out = append(out, v.(string))
		}
		return out
	}
	return dedup
}

func listKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
