package quiz

import "fmt"

type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindText           Kind = "text"
)

type Question struct {
	ID         int      `json:"id"`
	Prompt     string   `json:"question"`
	Kind       Kind     `json:"type"`
	Options    []string `json:"options,omitempty"`
	MinWords   int      `json:"min_words,omitempty"`
	Validation string   `json:"validation,omitempty"`
}

func ForSkill(skillName string) []Question {
	return []Question{
		{
			ID:      1,
			Prompt:  fmt.Sprintf("What is your proficiency level with %s?", skillName),
			Kind:    KindMultipleChoice,
			Options: []string{"Beginner", "Intermediate", "Advanced", "Expert"},
		},
		{
			ID:         2,
			Prompt:     fmt.Sprintf("How many months/years have you been using %s?", skillName),
			Kind:       KindText,
			Validation: "numeric",
		},
		{
			ID:       3,
			Prompt:   fmt.Sprintf("Describe a practical project where you applied %s", skillName),
			Kind:     KindText,
			MinWords: 20,
		},
		{
			ID:       4,
			Prompt:   fmt.Sprintf("What related skills do you use alongside %s?", skillName),
			Kind:     KindText,
			MinWords: 10,
		},
	}
}

func ForExperience(company string) []Question {
	return []Question{
		{
			ID:       1,
			Prompt:   fmt.Sprintf("What were your primary responsibilities at %s?", company),
			Kind:     KindText,
			MinWords: 30,
		},
		{
			ID:       2,
			Prompt:   "Which technologies/tools did you use daily?",
			Kind:     KindText,
			MinWords: 15,
		},
		{
			ID:       3,
			Prompt:   "Describe a significant challenge you overcame",
			Kind:     KindText,
			MinWords: 40,
		},
		{
			ID:      4,
			Prompt:  "What was the team size you worked with?",
			Kind:    KindMultipleChoice,
			Options: []string{"Solo", "2-5 people", "6-15 people", "15+ people"},
		},
	}
}

func ForProject(title string) []Question {
	return []Question{
		{
			ID:       1,
			Prompt:   fmt.Sprintf("Explain the main technical architecture of %s", title),
			Kind:     KindText,
			MinWords: 40,
		},
		{
			ID:       2,
			Prompt:   "What was your specific role and contribution?",
			Kind:     KindText,
			MinWords: 30,
		},
		{
			ID:       3,
			Prompt:   "What was the biggest technical challenge?",
			Kind:     KindText,
			MinWords: 30,
		},
		{
			ID:         4,
			Prompt:     "How long did the project take from start to completion?",
			Kind:       KindText,
			Validation: "numeric",
		},
	}
}
