package session

import (
	"testing"

	"github.com/prepdex/prepdex-backend/internal/model"
)

func TestCompile(t *testing.T) {
	p := paper(3, 0)
	key := model.AnswerKey{
		"q1": {ID: "q1", Answer: "a"},
		"q2": {ID: "q2", Answer: "b"},
		"q3": {ID: "q3", Answer: "c"},
	}

	// One correct, one wrong, one never answered.
	answers := map[string]string{
		"q1": "a",
		"q2": "d",
	}

	report := Compile(p, answers, key)
	want := model.ScoreReport{
		TotalQuestions: 3,
		CorrectAnswers: 1,
		WrongAnswers:   1,
		Unanswered:     1,
		Score:          1,
		Accuracy:       "33.33",
	}
	if report != want {
		t.Fatalf("Compile = %+v, want %+v", report, want)
	}
}

func TestCompileAllUnanswered(t *testing.T) {
	p := paper(4, 0)
	report := Compile(p, map[string]string{}, model.AnswerKey{})
	if report.Unanswered != 4 || report.Score != 0 || report.Accuracy != "0.00" {
		t.Fatalf("Compile = %+v", report)
	}
}

func TestCompileEmptySelectionIsUnanswered(t *testing.T) {
	p := paper(2, 0)
	key := model.AnswerKey{
		"q1": {ID: "q1", Answer: "a"},
		"q2": {ID: "q2", Answer: "b"},
	}
	report := Compile(p, map[string]string{"q1": ""}, key)
	if report.Unanswered != 2 || report.WrongAnswers != 0 {
		t.Fatalf("Compile = %+v", report)
	}
}

func TestCompileMissingKeyEntryCountsWrong(t *testing.T) {
	p := paper(1, 0)
	report := Compile(p, map[string]string{"q1": "a"}, model.AnswerKey{})
	if report.WrongAnswers != 1 || report.CorrectAnswers != 0 {
		t.Fatalf("Compile = %+v", report)
	}
}

func TestCompileEmptyPaper(t *testing.T) {
	report := Compile(&model.TestPaper{ID: "tp-0"}, nil, nil)
	if report.TotalQuestions != 0 || report.Accuracy != "0.00" {
		t.Fatalf("Compile = %+v", report)
	}
}
