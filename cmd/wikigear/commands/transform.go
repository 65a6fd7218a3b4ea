package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wikigear/internal"
	"wikigear/internal/pipeline"
)

var exportOut *string

func init() {
	exportOut = exportCmd.Flags().String("out", "", "output xlsx path (default <OUTPUT_DIR>/<Cat>_Data.xlsx)")
	rootCmd.AddCommand(transformCmd, exportCmd)
}

var transformCmd = &cobra.Command{
	Use:   "transform <category>... | all",
	Short: "Reshapes RAW_<Cat>_Data.json into <Cat>_Data.json and stores it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := parseCategories(args)
		if err != nil {
			return err
		}
		processor := pipeline.NewProcessingService(db, cfg)
		for _, cat := range cats {
			res, err := processor.TransformCategory(cat)
			if err != nil {
				return err
			}
			fmt.Printf("Transformed JSON written to '%s'\n", res.OutputPath)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export:xlsx <category> [--out <path.xlsx>]",
	Short: "Writes the stored records of a category to a spreadsheet.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}
		out := strings.TrimSpace(*exportOut)
		if out == "" {
			out = filepath.Join(cfg.OutputDir, string(cat)+"_Data.xlsx")
		}

		rows, err := db.ListItems(cat)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no stored records for %s, run transform first", cat)
		}
		if err := pipeline.ExportRecordsToXLSX(rows, out); err != nil {
			return err
		}
		fmt.Printf("exported %d rows to %s\n", len(rows), out)
		return nil
	},
}
