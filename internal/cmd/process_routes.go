package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lastmile/internal/config"
	"lastmile/internal/routes"
)

var (
	routesTrainingDir string
	routesEvalDir     string
	routesOutput      string
)

var processRoutesCmd = &cobra.Command{
	Use:   "process-routes",
	Short: "Flatten raw last-mile route metadata into per-route summaries",
	Long: `Read the ALMRRC route, package and sequence metadata JSONs from the
training and evaluation roots, merge the per-route records with build →
apply → eval precedence, and write one summary row per route: deliveries,
total package volume, total route duration and the route's static fields.

Missing or malformed input files are skipped with a diagnostic; a route is
emitted only when both its route details and package details are present.`,
	RunE: processRoutes,
}

func init() {
	rootCmd.AddCommand(processRoutesCmd)

	processRoutesCmd.Flags().StringVar(&routesTrainingDir, "training-dir", "", "Training data root (overrides config)")
	processRoutesCmd.Flags().StringVar(&routesEvalDir, "eval-dir", "", "Evaluation data root (overrides config)")
	processRoutesCmd.Flags().StringVar(&routesOutput, "output", "", "Output CSV path (overrides config)")
}

func processRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("training-dir") {
		cfg.Routes.TrainingDir = routesTrainingDir
	}
	if cmd.Flags().Changed("eval-dir") {
		cfg.Routes.EvalDir = routesEvalDir
	}
	if cmd.Flags().Changed("output") {
		cfg.Routes.Output = routesOutput
	}

	fmt.Println("🗺️  Processing last-mile route metadata...")

	src := routes.SourceSet{
		TrainingDir: cfg.Routes.TrainingDir,
		EvalDir:     cfg.Routes.EvalDir,
	}
	inputs := routes.LoadInputs(src)

	printDocuments("routes", inputs.RouteDocs)
	printDocuments("packages", inputs.PackageDocs)
	printDocuments("sequences", inputs.SequenceDocs)

	if len(inputs.Routes()) == 0 {
		fmt.Println("\n⛔ No route ids found in any metadata document. Nothing to do.")
		return fmt.Errorf("no route ids found under %s or %s", cfg.Routes.TrainingDir, cfg.Routes.EvalDir)
	}

	summaries := routes.Aggregate(inputs)
	if len(summaries) == 0 {
		fmt.Println("\n⛔ No route has both route details and package details. Nothing to do.")
		return fmt.Errorf("no complete routes after filtering")
	}

	if err := routes.WriteCSV(cfg.Routes.Output, summaries); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}

	fmt.Printf("\n✅ %d routes written to %s\n", len(summaries), cfg.Routes.Output)

	fmt.Println("\n🏙️  Routes by city:")
	for _, c := range routes.CountByCity(summaries) {
		fmt.Printf("   %-24s %d\n", c.City, c.Count)
	}

	return nil
}

func printDocuments(kind string, docs []routes.Document) {
	fmt.Printf("\n📄 %s:\n", kind)
	for _, doc := range docs {
		fmt.Printf("   %-72s %6d entries (%s)\n", doc.Path, len(doc.Entries), doc.Cause)
	}
}
