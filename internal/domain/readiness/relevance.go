package readiness

import "strings"

// Keywords maps a sub-pillar name to the lowercase terms that mark a
// free-text entry as relevant to it.
type Keywords map[string][]string

// Relevance returns the fraction [0,1] of the sub-pillar's keywords that
// appear anywhere in the joined text fields. Each keyword counts once no
// matter how often it occurs. Unknown sub-pillar names match nothing.
func (k Keywords) Relevance(subPillarName string, fields ...string) float64 {
	keywords := k[subPillarName]
	if len(keywords) == 0 {
		return 0
	}

	fullText := strings.ToLower(strings.Join(fields, " "))

	matches := 0
	for _, kw := range keywords {
		if strings.Contains(fullText, kw) {
			matches++
		}
	}

	relevance := float64(matches) / float64(len(keywords))
	if relevance > 1 {
		relevance = 1
	}
	return relevance
}
