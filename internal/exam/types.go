package exam

// Mode selects what kind of attempt the user is making.
type Mode string

const (
	// ModeFull is a simulated full exam: 21 questions, one per topic.
	ModeFull Mode = "full"

	// ModeSingle is repeated variants of one fixed task category.
	ModeSingle Mode = "single"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeFull || m == ModeSingle
}

// Question is a single generated practice problem.
// Questions are transient: only aggregate attempt results are persisted.
type Question struct {
	// Question is the problem statement shown to the user.
	Question string `json:"question"`

	// Answer is the expected answer as a string. Correctness is judged by
	// trimmed, case-sensitive equality against the user's input.
	Answer string `json:"answer"`

	// Explanation is a short worked solution, shown after grading.
	// May be empty.
	Explanation string `json:"explanation,omitempty"`
}
