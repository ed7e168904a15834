package quiz

import (
	"math"
	"strconv"
	"strings"
)

const (
	basePoints        = 15
	detailBonus       = 10
	partialBonus      = 5
	maxPointsPerQuest = 25
	passingScore      = 60
)

// Passed reports whether an evaluated score clears the approval bar.
func Passed(score float64) bool {
	return score >= passingScore
}

// Evaluate scores submitted answers against the generated questions and
// returns 0..100. Answers are keyed by the question ID as a string.
//
// Each non-empty answer earns base points; text questions with a word
// minimum earn a full bonus at the minimum and a partial bonus at 70% of
// it. The sum is normalized against 25 points per question and rounded
// to two decimals.
func Evaluate(questions []Question, answers map[string]string) float64 {
	if len(questions) == 0 {
		return 0
	}

	sum := 0
	for _, q := range questions {
		answer := strings.TrimSpace(answers[strconv.Itoa(q.ID)])
		if answer == "" {
			continue
		}

		points := basePoints

		if q.Kind == KindText && q.MinWords > 0 {
			wordCount := len(strings.Fields(answer))
			switch {
			case wordCount >= q.MinWords:
				points += detailBonus
			case float64(wordCount) >= float64(q.MinWords)*0.7:
				points += partialBonus
			}
		}

		sum += points
	}

	maxPossible := float64(len(questions) * maxPointsPerQuest)
	normalized := math.Min(float64(sum)/maxPossible*100, 100)
	return math.Round(normalized*100) / 100
}
