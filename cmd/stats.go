package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsUser string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show word and score statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.Drill.Stats(ctx, statsUser)
		if err != nil {
			return err
		}

		fmt.Println("📊 Statistics")
		fmt.Println("-------------")
		fmt.Printf("Total words:            %d\n", stats.TotalWords)
		fmt.Printf("Average positive score: %.2f\n", stats.AveragePositiveScore)
		fmt.Printf("Average negative score: %.2f\n", stats.AverageNegativeScore)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsUser, "user", "u", "", "user scope (empty for global scores)")
}
