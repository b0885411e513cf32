// Package quiz scores a submission against the question set.
package quiz

import (
	"net/url"

	"quizapp/internal/models"
)

type Result struct {
	Correct int
	Total   int
}

// Score counts the questions whose submitted label equals the correct
// option. Unanswered questions count as wrong; answers for ids that are not
// in questions are ignored.
func Score(questions []models.Question, answers map[string]string) Result {
	res := Result{Total: len(questions)}
	for _, q := range questions {
		if a, ok := answers[q.ID]; ok && a == q.Correct {
			res.Correct++
		}
	}
	return res
}

// AnswersFromForm reads one radio group per question, named by question id.
func AnswersFromForm(questions []models.Question, form url.Values) map[string]string {
	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		if v, ok := form[q.ID]; ok && len(v) > 0 {
			answers[q.ID] = v[0]
		}
	}
	return answers
}
