package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/comalice/navsyncx/internal/core"
	"github.com/comalice/navsyncx/internal/production"
	"github.com/comalice/navsyncx/replay"
)

var saveJournal bool

var runCmd = &cobra.Command{
	Use:   "run <trace.yaml>",
	Short: "Replay a recorded trace through the reconciliation engine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			exitErr("read trace", err)
		}
		trace, err := replay.DecodeTrace(data)
		if err != nil {
			exitErr("decode trace", err)
		}

		cfg := loadConfig()
		if trace.Initial == "" {
			trace.Initial = cfg.InitialURL
		}

		result, err := replay.Run[scriptState, string](scriptApp{}, trace, replay.StringCodec{})
		if err != nil {
			exitErr("replay", err)
		}

		fmt.Printf("trace %s: %d events, %d location writes\n", trace.ProgramID, len(trace.Events), len(result.Writes))
		for i, w := range result.Writes {
			fmt.Printf("  %3d  %-7s %s\n", i+1, w.Entry, w.URL)
		}
		fmt.Printf("final location: %s (pending acks: %d)\n",
			result.Final.Router.Reported.String(), result.Final.Router.Expected)

		if !saveJournal {
			return
		}
		journal, err := production.NewSQLiteJournal(resolveJournalPath(cfg))
		if err != nil {
			exitErr("open journal", err)
		}
		defer journal.Close()
		for _, w := range result.Writes {
			md := core.NavMetadata{
				ProgramID: trace.ProgramID,
				Kind:      core.NavWrite,
				URL:       w.URL,
				Entry:     w.Entry,
				Timestamp: time.Now(),
			}
			if err := journal.Publish(context.Background(), md); err != nil {
				exitErr("journal write", err)
			}
		}
		fmt.Printf("journaled %d writes\n", len(result.Writes))
	},
}

func init() {
	runCmd.Flags().BoolVar(&saveJournal, "save-journal", false, "Append the replayed writes to the navigation journal")
	RootCmd.AddCommand(runCmd)
}
