package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wikigear/internal"
	"wikigear/internal/config"
	"wikigear/internal/storage"
)

var (
	cfg config.Config
	db  *storage.DB
)

var rootCmd = &cobra.Command{
	Use:           "wikigear",
	Short:         "wikigear collects gear records from the wiki and reshapes them for the front-end.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

		db, err = storage.Open(cfg.DBPath)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			_ = db.Close()
		}
	},
}

func ExecuteContext(ctx context.Context) {
	must(rootCmd.ExecuteContext(ctx))
}

// parseCategories accepts category names or "all".
func parseCategories(args []string) ([]internal.Category, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		return internal.AllCategories, nil
	}
	out := make([]internal.Category, 0, len(args))
	for _, arg := range args {
		cat, err := internal.ParseCategory(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func must(err error) {
	if err == nil {
		return
	}
	if db != nil {
		_ = db.Close()
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
