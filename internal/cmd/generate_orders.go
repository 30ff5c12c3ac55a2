package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lastmile/internal/config"
	"lastmile/internal/simulate"
)

var (
	generateCount   int
	generateSeed    int64
	generateZipFile string
	generateOutput  string
)

var generateOrdersCmd = &cobra.Command{
	Use:   "generate-orders",
	Short: "Generate the synthetic delivery order dataset",
	Long: `Generate a fictitious e-commerce order dataset from the configured
statistical distributions: order dates, prime membership, per-tier delivery
times and delay probabilities, weighted carrier assignment and delivery
costs.

Destination ZIP codes are drawn from the reference CSV when it is available;
otherwise random 5-digit postcodes are synthesized. A fixed seed reproduces
the exact same dataset.`,
	RunE: generateOrders,
}

func init() {
	rootCmd.AddCommand(generateOrdersCmd)

	generateOrdersCmd.Flags().IntVar(&generateCount, "count", 0, "Number of orders to generate (overrides config)")
	generateOrdersCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (overrides config)")
	generateOrdersCmd.Flags().StringVar(&generateZipFile, "zip-file", "", "ZIP code reference CSV (overrides config)")
	generateOrdersCmd.Flags().StringVar(&generateOutput, "output", "", "Output CSV path (overrides config)")
}

func generateOrders(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("count") {
		cfg.Generator.Orders = generateCount
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generator.Seed = generateSeed
	}
	if cmd.Flags().Changed("zip-file") {
		cfg.Generator.ZipFile = generateZipFile
	}
	if cmd.Flags().Changed("output") {
		cfg.Generator.Output = generateOutput
	}

	fmt.Printf("🚚 Generating %d synthetic orders (seed %d)...\n", cfg.Generator.Orders, cfg.Generator.Seed)

	zips := simulate.LoadZipCodes(cfg.Generator.ZipFile)
	if zips.Empty() {
		fmt.Printf("🎲 No reference ZIP codes loaded (%s); synthesizing random postcodes\n", zips.Cause)
	} else {
		fmt.Printf("🗺️  Loaded %d unique reference ZIP codes\n", len(zips.Codes))
	}

	gen, err := simulate.NewGenerator(cfg.Generator, zips)
	if err != nil {
		return fmt.Errorf("failed to build generator: %w", err)
	}

	records := gen.Generate()

	if err := simulate.WriteCSV(cfg.Generator.Output, records); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}

	fmt.Printf("\n✅ %d orders written to %s\n", len(records), cfg.Generator.Output)

	summary := simulate.Summarize(records)
	printTierStats("Prime", summary.Prime)
	printTierStats("Standard", summary.Standard)

	return nil
}

func printTierStats(tier string, stats simulate.TierStats) {
	fmt.Printf("\n📊 %s members: %d orders\n", tier, stats.Count)
	if stats.Count == 0 {
		return
	}
	fmt.Printf("   ⏱️  Actual delivery days: mean %.2f, min %d, max %d\n",
		stats.MeanDeliveryDays, stats.MinDeliveryDays, stats.MaxDeliveryDays)
	fmt.Println("   🚛 Carrier share:")
	for _, carrier := range stats.Carriers() {
		fmt.Printf("      %-6s %5.1f%%\n", carrier, stats.CarrierShare[carrier]*100)
	}
}
