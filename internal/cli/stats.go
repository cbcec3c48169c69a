package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pensionfacts/internal/model"
	"github.com/ppiankov/pensionfacts/internal/score"
	"github.com/ppiankov/pensionfacts/internal/store"
)

var (
	statsRun   string
	statsStore string
)

var statsCmd = &cobra.Command{
	Use:   "stats [reports.jsonl|-]",
	Short: "Summarize field coverage over a batch of reports",
	Long: `Stats reads reports written by "batch" (or a run saved in SQLite) and
prints category, frequency and file-type counts plus coverage signals.
Every signal carries its inputs and formula.

Example:
  pensionfacts stats reports.jsonl
  pensionfacts stats --store reports.db --run 6f1c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath := statsStore
		if dbPath == "" {
			dbPath = cfg.Store.Path
		}

		var reports []*model.DocumentReport
		switch {
		case statsRun != "":
			if dbPath == "" {
				return fmt.Errorf("--run needs --store or store.path")
			}
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			reports, err = db.ListRun(cmd.Context(), statsRun)
			if err != nil {
				return err
			}
		default:
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			reports, err = batchReports(path)
			if err != nil {
				return err
			}
		}

		return printJSON(score.NewScorer().Calculate(reports))
	},
}

var statsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Count stored documents per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath := statsStore
		if dbPath == "" {
			dbPath = cfg.Store.Path
		}
		if dbPath == "" {
			return fmt.Errorf("no store: pass --store or set store.path")
		}

		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		counts, err := db.CountByCategory(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(counts)
	},
}

func init() {
	statsCmd.PersistentFlags().StringVar(&statsStore, "store", "", "SQLite database written by batch --store")
	statsCmd.Flags().StringVar(&statsRun, "run", "", "summarize a stored run instead of a file")
	statsCmd.AddCommand(statsCategoriesCmd)
	rootCmd.AddCommand(statsCmd)
}
