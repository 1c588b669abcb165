package problemgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"egetutor/internal/exam"
)

// questionListSchema is the shape the recovered array must have: objects
// with string question and answer, explanation optional.
var questionListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":    map[string]any{"type": "string"},
			"answer":      map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []any{"question", "answer"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledQuestionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question-list.json", questionListSchema); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://question-list.json")
	})
	return compiledSchema, compileErr
}

// ExtractQuestions recovers a question list from free-form completion text.
// Models routinely wrap the JSON in code fences or surround it with prose,
// so recovery is best-effort: strip a leading/trailing fence, slice from the
// first "[" to the last "]", then parse and validate.
//
// Failure causes are distinguishable: *NoArrayError when no bracketed span
// exists, *ParseError when the span is not a valid question array.
func ExtractQuestions(text string) ([]exam.Question, error) {
	content := strings.TrimSpace(text)
	content = stripFences(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < start {
		return nil, &NoArrayError{Text: content}
	}
	span := content[start : end+1]

	var parsed any
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return nil, &ParseError{Raw: span, Err: err}
	}

	schema, err := compiledQuestionSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ParseError{Raw: span, Err: err}
	}

	var questions []exam.Question
	if err := json.Unmarshal([]byte(span), &questions); err != nil {
		return nil, &ParseError{Raw: span, Err: err}
	}
	return questions, nil
}

// stripFences removes a leading ``` or ```json marker and a trailing ```
// from fenced completion text. Text without a leading fence is returned
// unchanged.
func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
