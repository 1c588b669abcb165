package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"egetutor/internal/exam"
	"egetutor/internal/problemgen"
	"egetutor/internal/session"
	"egetutor/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent attempts for one mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		// History never talks to the LLM; a nil-provider generator keeps
		// the service constructor uniform.
		svc := session.NewService(st, problemgen.New(nil, problemgen.DefaultConfig(), log), log)

		in := bufio.NewScanner(os.Stdin)
		username, ok := promptLine(in, "Имя пользователя: ")
		if !ok {
			return errInputClosed
		}
		password, ok := promptLine(in, "Пароль: ")
		if !ok {
			return errInputClosed
		}
		user, err := svc.Login(username, password)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Println(theme.Incorrect.Render("Ошибка авторизации."))
			return nil
		}

		mode := exam.ModeFull
		taskNumber := 0
		if m, _ := cmd.Flags().GetString("mode"); m == string(exam.ModeSingle) {
			mode = exam.ModeSingle
			taskNumber, _ = cmd.Flags().GetInt("task")
			if !exam.ValidTask(taskNumber) {
				return fmt.Errorf("invalid task number %d", taskNumber)
			}
		}
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := svc.History(username, mode, taskNumber, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(theme.Dim.Render("История пуста."))
			return nil
		}

		for _, e := range entries {
			printEntry(e)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("mode", "full", `Attempt mode: "full" or "single"`)
	historyCmd.Flags().Int("task", 0, "Task number (required for single mode)")
	historyCmd.Flags().Int("limit", 10, "Maximum number of entries to show")
}
