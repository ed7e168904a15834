package verification

import (
	"math"
	"strings"
)

// LinkApprovalThreshold is the evidence score at which a link request is
// approved synchronously instead of waiting for manual review.
const LinkApprovalThreshold = 50

// ScoreEvidenceURL routes a link to the matching stub scorer. No network
// calls are made: link credibility is a fixed heuristic over the URL.
func ScoreEvidenceURL(url string) float64 {
	if strings.Contains(strings.ToLower(url), "github.com") {
		return VerifyGithubLink(url)
	}
	return VerifyPortfolioLink(url)
}

// VerifyGithubLink scores a GitHub evidence URL: 50 base plus 20 for a
// well-formed github.com link, capped at 100.
func VerifyGithubLink(url string) float64 {
	score := 50.0
	if strings.Contains(strings.ToLower(url), "github.com") {
		score += 20
	}
	return math.Min(score, 100)
}

// VerifyPortfolioLink scores a live portfolio URL at the flat base.
func VerifyPortfolioLink(url string) float64 {
	score := 50.0
	return math.Min(score, 100)
}
