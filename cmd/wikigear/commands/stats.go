package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints stored item counts per category and status.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts, err := db.StatusCounts()
		if err != nil {
			return err
		}
		runs, err := db.CountRuns("transform")
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Category", "Status", "Items"})
		total := 0
		for _, c := range counts {
			t.AppendRow(table.Row{c.Category, c.Status, c.Count})
			total += c.Count
		}
		t.AppendFooter(table.Row{"", "Total", total})
		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Printf("transform runs logged: %d\n", runs)
		return nil
	},
}
