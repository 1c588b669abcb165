package problemgen

import (
	"errors"
	"testing"
)

const validArray = `[
  {"question": "Сколько будет 2+2?", "answer": "4", "explanation": "Сложение"},
  {"question": "Сколько будет 3*3?", "answer": "9"}
]`

func TestExtractQuestionsPlainArray(t *testing.T) {
	questions, err := ExtractQuestions(validArray)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].Answer != "4" {
		t.Errorf("answer = %q, want 4", questions[0].Answer)
	}
	if questions[1].Explanation != "" {
		t.Errorf("explanation should be optional, got %q", questions[1].Explanation)
	}
}

func TestExtractQuestionsJSONFence(t *testing.T) {
	fenced := "```json\n" + validArray + "\n```"
	questions, err := ExtractQuestions(fenced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
}

func TestExtractQuestionsBareFence(t *testing.T) {
	fenced := "```\n" + validArray + "\n```"
	if _, err := ExtractQuestions(fenced); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractQuestionsSurroundingProse(t *testing.T) {
	noisy := "Вот ваши задачи:\n" + validArray + "\nУдачи на экзамене!"
	questions, err := ExtractQuestions(noisy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
}

func TestExtractQuestionsNoBracket(t *testing.T) {
	_, err := ExtractQuestions("Извините, я не могу сгенерировать задачи.")
	var noArr *NoArrayError
	if !errors.As(err, &noArr) {
		t.Fatalf("expected *NoArrayError, got %v", err)
	}
}

func TestExtractQuestionsMissingClosingBracket(t *testing.T) {
	_, err := ExtractQuestions(`[{"question": "a", "answer": "b"}`)
	var noArr *NoArrayError
	if !errors.As(err, &noArr) {
		t.Fatalf("expected *NoArrayError, got %v", err)
	}
}

func TestExtractQuestionsMalformedJSON(t *testing.T) {
	_, err := ExtractQuestions(`[{"question": "a", "answer": }]`)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestExtractQuestionsWrongShape(t *testing.T) {
	// A valid JSON array whose items are not question objects.
	_, err := ExtractQuestions(`["just", "strings"]`)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}

	// Objects missing required fields.
	_, err = ExtractQuestions(`[{"question": "a"}]`)
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError for missing answer, got %v", err)
	}
}

func TestExtractQuestionsEmptyArray(t *testing.T) {
	questions, err := ExtractQuestions(`[]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("got %d questions, want 0", len(questions))
	}
}
