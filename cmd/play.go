package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"egetutor/internal/exam"
	"egetutor/internal/llm"
	"egetutor/internal/problemgen"
	"egetutor/internal/session"
	"egetutor/internal/store"
	"egetutor/internal/ui/theme"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		log := newLogger()
		defer log.Sync()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		provider, err := llm.NewProviderFromEnv(ctx, log)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		gen := problemgen.New(provider, problemgen.DefaultConfig(), log)
		svc := session.NewService(st, gen, log)

		return runPlay(ctx, svc, bufio.NewScanner(os.Stdin))
	},
}

// errInputClosed reports that stdin was exhausted mid-session (EOF on a
// prompt). Every prompting loop bails out with it instead of re-prompting.
var errInputClosed = errors.New("input closed")

// runPlay drives one interactive practice session on the terminal.
func runPlay(ctx context.Context, svc *session.Service, in *bufio.Scanner) error {
	fmt.Println(theme.Title.Render("Подготовка к ЕГЭ — базовая математика"))

	username, err := signIn(svc, in)
	if err != nil {
		return err
	}
	fmt.Println(theme.Notice.Render("Вы вошли как " + username))

	mode, taskNumber, count, err := chooseMode(svc, username, in)
	if err != nil {
		return err
	}
	examTheme, ok := promptLine(in, "Тема, которая тебе интересна (например, космос): ")
	if !ok {
		return errInputClosed
	}

	var questions []exam.Question
	if mode == exam.ModeFull {
		questions, err = svc.StartFull(ctx, username, examTheme)
	} else {
		questions, err = svc.StartSingle(ctx, username, taskNumber, count, examTheme)
	}
	if err != nil || len(questions) == 0 {
		// Generation failures are soft: report and end the session cleanly.
		fmt.Println(theme.Incorrect.Render("Не удалось сгенерировать задания. Попробуйте ещё раз."))
		return nil
	}

	correct, err := answerLoop(questions, in)
	if err != nil {
		return err
	}

	outcome, err := svc.RecordAttempt(username, mode, taskNumber, len(questions), correct)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	fmt.Println()
	fmt.Println(theme.Notice.Render(fmt.Sprintf("Правильных ответов: %d из %d (%.1f%%)",
		outcome.Correct, outcome.Total, outcome.Percent)))
	if outcome.LeveledUp() {
		fmt.Println(theme.Correct.Render(fmt.Sprintf("Уровень сложности повышен до %d!", outcome.NewLevel)))
	}

	showHistory(svc, username, mode, taskNumber, 10)
	return nil
}

// signIn runs the login/register loop until a session is established or the
// input is exhausted.
func signIn(svc *session.Service, in *bufio.Scanner) (string, error) {
	for {
		action, ok := promptLine(in, "Войти (в) или зарегистрироваться (р)? ")
		if !ok {
			return "", errInputClosed
		}
		username, ok := promptLine(in, "Имя пользователя: ")
		if !ok {
			return "", errInputClosed
		}
		password, ok := promptLine(in, "Пароль: ")
		if !ok {
			return "", errInputClosed
		}
		if username == "" {
			continue
		}

		if strings.HasPrefix(strings.ToLower(action), "р") {
			ok, err := svc.Register(username, password)
			if err != nil {
				return "", err
			}
			if !ok {
				fmt.Println(theme.Incorrect.Render("Пользователь с таким именем уже существует."))
				continue
			}
			fmt.Println(theme.Notice.Render("Регистрация прошла успешно."))
		}

		user, err := svc.Login(username, password)
		if err != nil {
			return "", err
		}
		if user == nil {
			fmt.Println(theme.Incorrect.Render("Ошибка авторизации. Попробуйте снова."))
			continue
		}
		return username, nil
	}
}

// chooseMode asks for the attempt scope and, for single mode, the task
// number and variant count. It also shows the current level for the scope.
func chooseMode(svc *session.Service, username string, in *bufio.Scanner) (exam.Mode, int, int, error) {
	choice, ok := promptLine(in, "Режим: весь вариант (1) или одно задание с вариациями (2)? ")
	if !ok {
		return exam.ModeFull, 0, 0, errInputClosed
	}
	if choice != "2" {
		level, err := svc.Level(username, exam.ModeFull, 0)
		if err != nil {
			return exam.ModeFull, 0, 0, err
		}
		fmt.Println(theme.Dim.Render(fmt.Sprintf("Текущий уровень сложности: %d", level)))
		return exam.ModeFull, 0, exam.TaskCount, nil
	}

	taskNumber, ok := promptInt(in, fmt.Sprintf("Номер задания (1–%d): ", exam.TaskCount), 1)
	for ok && !exam.ValidTask(taskNumber) {
		taskNumber, ok = promptInt(in, fmt.Sprintf("Номер задания (1–%d): ", exam.TaskCount), 1)
	}
	if !ok {
		return exam.ModeSingle, 0, 0, errInputClosed
	}
	fmt.Println(theme.Dim.Render(exam.TaskTheme(taskNumber)))

	level, err := svc.Level(username, exam.ModeSingle, taskNumber)
	if err != nil {
		return exam.ModeSingle, 0, 0, err
	}
	fmt.Println(theme.Dim.Render(fmt.Sprintf("Уровень сложности для задания №%d: %d", taskNumber, level)))

	count, ok := promptInt(in, "Сколько вариантов сгенерировать (1–10)? ", 5)
	if !ok {
		return exam.ModeSingle, 0, 0, errInputClosed
	}
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}

	return exam.ModeSingle, taskNumber, count, nil
}

// answerLoop presents each question, grades the answer immediately and
// returns the number of correct answers.
func answerLoop(questions []exam.Question, in *bufio.Scanner) (int, error) {
	correct := 0
	for i, q := range questions {
		fmt.Println()
		fmt.Println(theme.Title.Render(fmt.Sprintf("Вопрос %d:", i+1)), q.Question)
		answer, ok := promptLine(in, "Ваш ответ: ")
		if !ok {
			return correct, errInputClosed
		}

		if exam.AnswerMatches(answer, q.Answer) {
			correct++
			fmt.Println(theme.Correct.Render("Верно!"))
		} else {
			fmt.Println(theme.Incorrect.Render("Неверно. Правильный ответ: " + q.Answer))
		}
		if q.Explanation != "" {
			fmt.Println(theme.Dim.Render("Пояснение: " + q.Explanation))
		}
	}
	return correct, nil
}

func showHistory(svc *session.Service, username string, mode exam.Mode, taskNumber, limit int) {
	entries, err := svc.History(username, mode, taskNumber, limit)
	if err != nil || len(entries) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(theme.Title.Render("История тренировок:"))
	for _, e := range entries {
		printEntry(e)
	}
}

func printEntry(e store.ResultEntry) {
	taskInfo := ""
	if e.TaskNumber != nil {
		taskInfo = fmt.Sprintf(" №%d", *e.TaskNumber)
	}
	fmt.Printf("  %s | %s%s | %d/%d (%.1f%%) | Уровень %d\n",
		e.Datetime, e.Mode, taskInfo, e.Correct, e.Total, e.Percent, e.Level)
}

// promptLine reads one trimmed line. ok is false when the scanner is
// exhausted, which callers must treat as the end of the session rather than
// an empty answer.
func promptLine(in *bufio.Scanner, label string) (_ string, ok bool) {
	fmt.Print(label)
	if !in.Scan() {
		fmt.Println()
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func promptInt(in *bufio.Scanner, label string, fallback int) (int, bool) {
	s, ok := promptLine(in, label)
	if !ok {
		return 0, false
	}
	if s == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback, true
	}
	return n, true
}
