package exam

import (
	"fmt"
	"strings"
)

// jsonContract is the trailing instruction every prompt ends with. The
// generator's recovery logic depends on the model honoring (or at least
// approximating) this format, so the wording stays fixed.
const jsonContract = `Ответ в формате JSON:
[
  {"question": "...", "answer": "...", "explanation": "Краткое объяснение"}
]
Никаких пояснений вне JSON!`

// difficultyClause maps a level to its Russian difficulty descriptor.
// Unknown levels fall back to the easiest wording.
func difficultyClause(level int) string {
	switch level {
	case 2:
		return "среднего"
	case 3:
		return "сложного"
	default:
		return "легкого"
	}
}

// BuildPrompt constructs the generation request for one completion call.
//
// For ModeFull it asks for count distinct problems, one per topic. For
// ModeSingle it asks for count variants of the given task category, looked
// up from the topic table. An optional theme is woven into every problem.
func BuildPrompt(mode Mode, taskNumber, count int, theme string, level int) string {
	var themeClause string
	if theme != "" {
		themeClause = fmt.Sprintf(" Все задачи должны содержать тематику %q.", theme)
	}

	var b strings.Builder
	switch mode {
	case ModeSingle:
		fmt.Fprintf(&b, "Ты — преподаватель математики. Сгенерируй %d задач типа №%d (%s) %s уровня сложности для базового ЕГЭ.",
			count, taskNumber, TaskTheme(taskNumber), difficultyClause(level))
	default:
		fmt.Fprintf(&b, "Ты — преподаватель математики. Сгенерируй %d разных задач %s уровня сложности для подготовки к ЕГЭ (базовый уровень), каждая из своей темы.",
			count, difficultyClause(level))
	}
	b.WriteString(themeClause)
	b.WriteString("\n")
	b.WriteString(jsonContract)

	return b.String()
}
