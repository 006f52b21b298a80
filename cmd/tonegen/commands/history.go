package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/tonegen/pkg/cli"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Generation history",
	Long: `List, show and delete records of generated files.

Every successful generate run is recorded in a local database next to
the config file (~/.tonegen/history), unless --no-history is given.`,
}

var historyColumns = []string{"id", "created_at", "location", "bits", "channels", "sample_rate", "seconds", "frequency", "offset", "data_bytes", "elapsed"}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generations, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		records, err := hist.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return outputResult(records, historyColumns...)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one generation record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		rec, err := hist.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return outputResult(rec)
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one generation record",
	Long:  `Delete one generation record. The generated file itself is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		if err := hist.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Record '%s' deleted", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all generation records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := openHistory()
		if err != nil {
			return err
		}
		defer hist.Close()

		n, err := hist.Clear(cmd.Context())
		if err != nil {
			return err
		}
		if n == 0 {
			cli.PrintInfo("History is already empty")
			return nil
		}
		cli.PrintSuccess("Deleted %d records", n)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "maximum number of records (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
