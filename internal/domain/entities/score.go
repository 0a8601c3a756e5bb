package entities

import "math"

// ScoreSummary is derived from questions and answers on demand and never stored.
type ScoreSummary struct {
	Correct    int
	Total      int
	Percentage int
}

// ComputeScore counts answers matching the correct option at the same position.
func ComputeScore(questions []QuizQuestion, answers []string) ScoreSummary {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && q.IsCorrect(answers[i]) {
			correct++
		}
	}

	return ScoreSummary{
		Correct:    correct,
		Total:      len(questions),
		Percentage: percent(correct, len(questions)),
	}
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
