package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/baalimago/hotelagent/internal/search"
)

// Vocabulary is the fixed set of amenities the pattern extractor recognizes.
var Vocabulary = []string{"infinity pool", "spa", "wifi", "beachfront", "gym", "restaurant"}

var (
	locationRe = regexp.MustCompile(`(?i)\bin\s+(\p{L}+(?:\s+\p{L}+)*)`)
	budgetRe   = regexp.MustCompile(`(?i)\bunder\s+\$?(\d{1,3}(?:,\d{3})+|\d+)`)
	amenityRe  = regexp.MustCompile(`(?i)\b(` + strings.Join(Vocabulary, "|") + `)\b`)
)

// connectives end a location, "in Paris under $200" yields "Paris".
var connectives = map[string]struct{}{
	"under":   {},
	"with":    {},
	"for":     {},
	"from":    {},
	"on":      {},
	"between": {},
	"near":    {},
	"at":      {},
	"and":     {},
	"during":  {},
	"in":      {},
}

// PatternExtractor extracts parameters with regular expressions only.
type PatternExtractor struct{}

func (PatternExtractor) Extract(_ context.Context, query string) (search.Request, error) {
	req := search.Request{
		Location:  extractLocation(query),
		Budget:    extractBudget(query),
		Amenities: extractAmenities(query),
	}
	return req, nil
}

func extractLocation(query string) string {
	for _, m := range locationRe.FindAllStringSubmatch(query, -1) {
		if loc := locationFrom(strings.Fields(m[1])); loc != "" {
			return loc
		}
	}
	return search.UnknownLocation
}

// locationFrom collects words up to the first connective. If that leaves
// nothing, the search restarts after the next "in" within the same run of words.
func locationFrom(words []string) string {
	for start := 0; start < len(words); {
		i := start
		for i < len(words) && !isConnective(words[i]) {
			i++
		}
		if i > start {
			return strings.Join(words[start:i], " ")
		}
		next := -1
		for j := i; j < len(words); j++ {
			if strings.EqualFold(words[j], "in") {
				next = j + 1
				break
			}
		}
		if next < 0 {
			return ""
		}
		start = next
	}
	return ""
}

func isConnective(w string) bool {
	_, ok := connectives[strings.ToLower(w)]
	return ok
}

// extractBudget accepts digit group commas, "under $1,500" is 1500. A number
// out of float range is treated as no budget.
func extractBudget(query string) *float64 {
	m := budgetRe.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	b, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &b
}

func extractAmenities(query string) []string {
	return search.NormalizeAmenities(amenityRe.FindAllString(query, -1))
}
