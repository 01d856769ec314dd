package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	rootCmd := &cobra.Command{
		Use:   "brokerage",
		Short: "Shipment brokerage request lifecycle and assignment engine",
		Long: `brokerage tracks shipment requests from submission through company
offers, selection and delivery, and assigns drivers and vehicles to them.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd(logger))
	rootCmd.AddCommand(migrateCmd(logger))
	rootCmd.AddCommand(verifyHistoryCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
