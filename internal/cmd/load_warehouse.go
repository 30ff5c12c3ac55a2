package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lastmile/internal/config"
	"lastmile/internal/database"
	"lastmile/internal/ingest"
)

var (
	warehouseOrdersCSV string
	warehouseRoutesCSV string
	warehouseTruncate  bool
)

var loadWarehouseCmd = &cobra.Command{
	Use:   "load-warehouse",
	Short: "Load the produced CSVs into the MySQL analysis tables",
	Long: `Load the simulated orders CSV and the processed routes CSV into the
sim_orders and route_summaries tables. The schema is created on first run;
each run tags its rows with a fresh load id.

A missing input CSV skips that dataset with a diagnostic instead of failing,
so the command can run after either pipeline alone.`,
	RunE: loadWarehouse,
}

func init() {
	rootCmd.AddCommand(loadWarehouseCmd)

	loadWarehouseCmd.Flags().StringVar(&warehouseOrdersCSV, "orders", "", "Simulated orders CSV (overrides config)")
	loadWarehouseCmd.Flags().StringVar(&warehouseRoutesCSV, "routes", "", "Processed routes CSV (overrides config)")
	loadWarehouseCmd.Flags().BoolVar(&warehouseTruncate, "truncate", false, "Empty the analysis tables before loading")
}

func loadWarehouse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ordersCSV := cfg.Generator.Output
	if cmd.Flags().Changed("orders") {
		ordersCSV = warehouseOrdersCSV
	}
	routesCSV := cfg.Routes.Output
	if cmd.Flags().Changed("routes") {
		routesCSV = warehouseRoutesCSV
	}

	fmt.Println("🏗️  Loading warehouse...")

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.SetupWarehouseSchema(); err != nil {
		return fmt.Errorf("failed to set up warehouse schema: %w", err)
	}

	if warehouseTruncate {
		fmt.Println("🗑️  Truncating analysis tables...")
		if err := db.TruncateWarehouse(); err != nil {
			return fmt.Errorf("failed to truncate warehouse: %w", err)
		}
	}

	loader := ingest.NewWarehouseLoader(db)
	loadID := uuid.New().String()
	fmt.Printf("🆔 Load id: %s\n", loadID)

	loaded := 0

	n, err := loader.LoadOrders(ordersCSV, loadID)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Printf("⚠️  Skipping orders: %s not found\n", ordersCSV)
	case err != nil:
		return fmt.Errorf("failed to load orders: %w", err)
	default:
		fmt.Printf("📦 %d orders loaded into sim_orders\n", n)
		loaded += n
	}

	n, err = loader.LoadRouteSummaries(routesCSV, loadID)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Printf("⚠️  Skipping routes: %s not found\n", routesCSV)
	case err != nil:
		return fmt.Errorf("failed to load route summaries: %w", err)
	default:
		fmt.Printf("🚛 %d route summaries loaded into route_summaries\n", n)
		loaded += n
	}

	if loaded == 0 {
		fmt.Println("\n⛔ Neither input CSV was found. Nothing to do.")
		return fmt.Errorf("no input CSVs to load")
	}

	fmt.Printf("\n✅ Warehouse load complete (%d rows)\n", loaded)
	return nil
}
