package exam

import "strings"

// AnswerMatches compares a submitted answer against the expected one.
// Both sides are whitespace-trimmed; the comparison itself is exact and
// case-sensitive. "  5 " matches "5"; "five" does not.
func AnswerMatches(submitted, expected string) bool {
	return strings.TrimSpace(submitted) == strings.TrimSpace(expected)
}

// Grade scores a completed attempt. answers is indexed parallel to
// questions; missing trailing answers count as wrong.
func Grade(questions []Question, answers []string) (correct, total int) {
	total = len(questions)
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if AnswerMatches(answers[i], q.Answer) {
			correct++
		}
	}
	return correct, total
}
