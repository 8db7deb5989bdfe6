package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/navsyncx/internal/production"
)

var journalCmd = &cobra.Command{
	Use:   "journal <program-id>",
	Short: "List a program's navigation journal in event order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		journal, err := production.NewSQLiteJournal(resolveJournalPath(cfg))
		if err != nil {
			exitErr("open journal", err)
		}
		defer journal.Close()

		entries, err := journal.Entries(context.Background(), args[0])
		if err != nil {
			exitErr("read journal", err)
		}
		if len(entries) == 0 {
			fmt.Println("no entries")
			return
		}
		for _, e := range entries {
			fmt.Printf("%s  %-8s %-7s %s\n", e.ID, e.Kind, e.Entry, e.URL)
		}
	},
}

func init() {
	RootCmd.AddCommand(journalCmd)
}
