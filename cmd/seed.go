package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tallum/internal/importer"
	"github.com/spf13/cobra"
)

var (
	seedFile  string
	seedClear bool
	seedSheet string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load words from a JSON, CSV or Excel dataset",
	Long: `Seed adds the words of a dataset file to the database. Words whose term
is already stored are skipped. Without --file the built-in sample words are
added to an empty database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		im := importer.New(a.Store.Words)
		if seedFile == "" {
			if seedClear {
				return errors.New("--clear needs --file")
			}
			n, err := im.SeedDefaults(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Added %d sample words\n", n)
			return nil
		}

		cfg := importer.DefaultImportConfig()
		cfg.FilePath = seedFile
		cfg.Clear = seedClear
		if seedSheet != "" {
			cfg.SheetName = seedSheet
		}

		res, err := im.Import(ctx, cfg)
		if err != nil {
			return err
		}
		if res.Deleted > 0 {
			fmt.Printf("Deleted %d words\n", res.Deleted)
		}
		if res.Added > 0 {
			fmt.Printf("Added %d new words to database\n", res.Added)
		} else {
			fmt.Println("No new words to add")
		}
		for _, e := range res.Errors {
			fmt.Println("  skipped:", e)
		}
		fmt.Printf("Total words in database: %d\n", res.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "dataset file (.json, .csv or .xlsx)")
	seedCmd.Flags().BoolVar(&seedClear, "clear", false, "delete all words before importing")
	seedCmd.Flags().StringVar(&seedSheet, "sheet", "", "sheet name for Excel datasets")
}
