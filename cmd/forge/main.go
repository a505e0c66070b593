package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/napolitain/forge-scheduler/internal/loader"
	"github.com/napolitain/forge-scheduler/internal/models"
	"github.com/napolitain/forge-scheduler/internal/solver"
	"github.com/napolitain/forge-scheduler/internal/solver/forge"
)

var (
	inputFile string
	report    string
	horizon   int
	quiet     bool
	verbose   bool
	noDedup   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Production Schedule Optimizer",
		Long: `Searches every build schedule of each production catalog and reports
the largest output reachable within the horizon.`,
		RunE: runSolver,
	}

	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "data/example.txt", "Catalog file (.txt, .json, .yaml)")
	rootCmd.Flags().StringVarP(&report, "report", "r", "quality", "Report: quality (sum of id*best) or product (first 3, multiplied)")
	rootCmd.Flags().IntVarP(&horizon, "horizon", "t", 0, "Number of steps (default 24 for quality, 32 for product)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the final number")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every search step to stderr")
	rootCmd.Flags().BoolVar(&noDedup, "no-dedup", false, "Disable frontier deduplication (slow)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolver(cmd *cobra.Command, args []string) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	catalogs, err := loader.LoadCatalogs(inputFile)
	if err != nil {
		return fmt.Errorf("loading catalogs: %w", err)
	}

	steps, limit, err := reportShape(report, horizon, len(catalogs))
	if err != nil {
		return err
	}
	catalogs = catalogs[:limit]

	var opts []forge.Option
	if noDedup {
		opts = append(opts, forge.WithoutDedup())
	}
	if verbose {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
		opts = append(opts, forge.WithLogger(logger))
	}

	if !quiet {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Production Schedule      │")
		titleColor.Println("│  Optimizer                │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
		infoColor.Printf("📦 Loaded %d catalogs from %s\n", len(catalogs), inputFile)
		infoColor.Printf("🔄 Searching %d steps...\n\n", steps)
	}

	outcomes, err := solver.SolveAll(context.Background(), catalogs, steps, opts...)
	if err != nil {
		return fmt.Errorf("solving: %w", err)
	}

	var answer int
	switch report {
	case "product":
		answer = solver.TopProduct(outcomes, limit)
	default:
		answer = solver.QualitySum(outcomes)
	}

	if quiet {
		fmt.Println(answer)
		return nil
	}

	printCatalogs(catalogs)
	printOutcomes(outcomes)
	successColor.Printf("\n✓ %s: %d\n", reportTitle(report), answer)
	return nil
}

// reportShape returns the horizon and the number of catalogs a report uses
func reportShape(report string, horizon, n int) (int, int, error) {
	switch report {
	case "quality":
		if horizon == 0 {
			horizon = solver.QualityHorizon
		}
		return horizon, n, nil
	case "product":
		if horizon == 0 {
			horizon = solver.ProductHorizon
		}
		return horizon, min(n, solver.ProductTop), nil
	default:
		return 0, 0, fmt.Errorf("unknown report %q (want quality or product)", report)
	}
}

func reportTitle(report string) string {
	if report == "product" {
		return "Product of best outputs"
	}
	return "Quality level sum"
}

func printCatalogs(catalogs []*models.Catalog) {
	fmt.Println("📋 Recipes:")

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Catalog", "Unit", "Produces", "Cost"}),
	)
	for _, c := range catalogs {
		for _, u := range c.Units() {
			_ = table.Append([]string{c.Name, u.Name, u.Produces.String(), formatCost(u.Cost)})
		}
	}
	_ = table.Render()
}

func printOutcomes(outcomes []solver.Outcome) {
	fmt.Println("\n📊 Results:")

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Catalog", "Best", "Quality", "Peak States", "Final States"}),
	)
	for _, o := range outcomes {
		final := 0
		if n := len(o.Result.Steps); n > 0 {
			final = o.Result.Steps[n-1].Frontier
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", o.Catalog.ID),
			o.Catalog.Name,
			fmt.Sprintf("%d", o.Result.Best),
			fmt.Sprintf("%d", o.Catalog.ID*o.Result.Best),
			fmt.Sprintf("%d", o.Result.PeakFrontier()),
			fmt.Sprintf("%d", final),
		})
	}
	_ = table.Render()
}

func formatCost(cost models.Ledger) string {
	var parts []string
	for _, r := range models.AllResourceKinds() {
		if cost[r] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", cost[r], r))
		}
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, " + ")
}
