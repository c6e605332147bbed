package session

import "github.com/prepdex/prepdex-backend/internal/model"

// Compile scores a finished attempt against the authoritative answer key.
// Questions absent from the answer map are unanswered; present entries
// either match the key (correct) or differ (wrong). The raw score is one
// mark per correct answer, matching how the results screen presents it.
func Compile(paper *model.TestPaper, answers map[string]string, key model.AnswerKey) model.ScoreReport {
	report := model.ScoreReport{
		TotalQuestions: len(paper.Questions),
	}

	for _, q := range paper.Questions {
		selected, ok := answers[q.ID]
		if !ok || selected == "" {
			report.Unanswered++
			continue
		}
		if entry, found := key[q.ID]; found && selected == entry.Answer {
			report.CorrectAnswers++
			report.Score++
		} else {
			report.WrongAnswers++
		}
	}

	report.Accuracy = model.FormatAccuracy(report.CorrectAnswers, report.TotalQuestions)
	return report
}
