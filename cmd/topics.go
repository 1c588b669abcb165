package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"egetutor/internal/exam"
	"egetutor/internal/ui/theme"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the 21 task categories",
	Run: func(cmd *cobra.Command, args []string) {
		for n := 1; n <= exam.TaskCount; n++ {
			fmt.Printf("%s %s\n",
				theme.Title.Render(fmt.Sprintf("№%2d", n)),
				exam.TaskTheme(n))
		}
	},
}
