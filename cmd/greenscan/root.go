package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for greenscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greenscan",
		Short: "Website sustainability and carbon footprint scanner",
		Long: `greenscan audits the sustainability posture of a website.

It crawls the home page and the most sustainability-relevant internal
pages, scores the content for CSR, carbon accounting and green IT
mentions, and estimates the site's carbon footprint from its average
page weight and a monthly traffic assumption.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
