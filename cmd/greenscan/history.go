package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ecodena/greenscan/internal/config"
	"github.com/ecodena/greenscan/internal/database"
	"github.com/ecodena/greenscan/internal/model"
	"github.com/ecodena/greenscan/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [domain]",
		Short: "List previously recorded scans",
		Long: `History lists the scans recorded in the local database.

Without arguments it lists every recorded scan, newest first. Pass a
domain to restrict the listing to that site.

Examples:
  # List all recorded scans
  greenscan history

  # List scans for one site
  greenscan history example.com

  # Show the full report of a stored scan
  greenscan history --id 42

  # Show the most recent report for a site
  greenscan history --latest example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of scans to list (0 for no limit)")
	cmd.Flags().Int64("id", 0, "Show the full report of the scan with this identifier")
	cmd.Flags().Bool("latest", false, "Show the full report of the most recent scan (requires a domain)")
	cmd.Flags().Bool("domains", false, "List the distinct domains with recorded scans")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir(), database.Options{})
	if err != nil {
		return fmt.Errorf("no scan history found: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	domain := ""
	if len(args) == 1 {
		domain = args[0]
	}

	if id, err := cmd.Flags().GetInt64("id"); err != nil {
		return err
	} else if id > 0 {
		result, err := db.GetScan(ctx, id)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no scan with id %d", id)
		}
		return printStoredReport(result)
	}

	if latest, err := cmd.Flags().GetBool("latest"); err != nil {
		return err
	} else if latest {
		if domain == "" {
			return fmt.Errorf("--latest requires a domain argument")
		}
		result, err := db.GetLatestScan(ctx, domain)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no recorded scan for %s", domain)
		}
		return printStoredReport(result)
	}

	if listDomains, err := cmd.Flags().GetBool("domains"); err != nil {
		return err
	} else if listDomains {
		domains, err := db.ListScannedDomains(ctx)
		if err != nil {
			return err
		}
		for _, d := range domains {
			fmt.Println(d)
		}
		return nil
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	scans, err := db.ListScans(ctx, domain, limit)
	if err != nil {
		return err
	}

	if len(scans) == 0 {
		fmt.Println("No recorded scans.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDOMAIN\tPAGES\tRSE\tCARBONE\tGREEN IT\tKG CO2/MOIS")
	for _, s := range scans {
		status := fmt.Sprintf("%d", s.PagesScanned)
		if s.Failed {
			status = "échec"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%.2f\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04"),
			s.Domain,
			status,
			s.RSEScore,
			s.CarbonScore,
			s.GreenITScore,
			s.MonthlyKgCO2,
		)
	}

	return w.Flush()
}

// printStoredReport prints a stored scan result as a simple text report.
func printStoredReport(result *model.ScanResult) error {
	w := report.NewSimpleWriter(os.Stdout, report.WithVerbose(true))
	_, err := w.Write(result)
	return err
}
