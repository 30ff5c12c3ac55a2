package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Routes    RoutesConfig    `mapstructure:"routes"`
	DB        DBConfig        `mapstructure:"db"`
}

// GeneratorConfig parameterizes the synthetic order pipeline. Every knob has
// a default, so the generator runs without a config file.
type GeneratorConfig struct {
	Orders    int    `mapstructure:"orders"`
	Seed      int64  `mapstructure:"seed"`
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	PrimeRatio float64 `mapstructure:"prime_ratio"`

	PrimeDeliveryAvgDays    float64 `mapstructure:"prime_delivery_avg_days"`
	PrimeDeliveryStdDev     float64 `mapstructure:"prime_delivery_std_dev"`
	StandardDeliveryAvgDays float64 `mapstructure:"standard_delivery_avg_days"`
	StandardDeliveryStdDev  float64 `mapstructure:"standard_delivery_std_dev"`

	PrimeDelayProbability    float64 `mapstructure:"prime_delay_probability"`
	StandardDelayProbability float64 `mapstructure:"standard_delay_probability"`
	MaxDelayDays             int     `mapstructure:"max_delay_days"`

	PrimeCarriers    []CarrierWeight `mapstructure:"prime_carriers"`
	StandardCarriers []CarrierWeight `mapstructure:"standard_carriers"`

	BaseAMZLCost       float64 `mapstructure:"base_amzl_cost"`
	BaseThirdPartyCost float64 `mapstructure:"base_third_party_cost"`
	PrimeCostPremium   float64 `mapstructure:"prime_cost_premium"`

	ZipFile string `mapstructure:"zip_file"`
	Output  string `mapstructure:"output"`
}

// CarrierWeight is one entry of a weighted carrier table. A list keeps the
// draw order stable and the carrier names case-exact, which nested YAML map
// keys would not survive.
type CarrierWeight struct {
	Name   string  `mapstructure:"name"`
	Weight float64 `mapstructure:"weight"`
}

// RoutesConfig parameterizes the route aggregation pipeline.
type RoutesConfig struct {
	TrainingDir string `mapstructure:"training_dir"`
	EvalDir     string `mapstructure:"eval_dir"`
	Output      string `mapstructure:"output"`
}

type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

// DateBounds parses the configured calendar bounds (YYYY-MM-DD, inclusive).
func (g GeneratorConfig) DateBounds() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid generator.start_date %q: %w", g.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid generator.end_date %q: %w", g.EndDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("generator.end_date %q precedes start_date %q", g.EndDate, g.StartDate)
	}
	return start, end, nil
}

// Load reads configuration from config.yaml and environment variables.
// A non-empty file argument bypasses the search paths and reads exactly that
// file. A missing config file is not an error; defaults cover every setting.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.lastmile/")
		v.AddConfigPath("/etc/lastmile/")
	}

	v.SetEnvPrefix("LASTMILE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.orders", 100000)
	v.SetDefault("generator.seed", 42)
	v.SetDefault("generator.start_date", "2024-01-01")
	v.SetDefault("generator.end_date", "2024-12-31")
	v.SetDefault("generator.prime_ratio", 0.70)
	v.SetDefault("generator.prime_delivery_avg_days", 1.5)
	v.SetDefault("generator.prime_delivery_std_dev", 0.5)
	v.SetDefault("generator.standard_delivery_avg_days", 6.0)
	v.SetDefault("generator.standard_delivery_std_dev", 1.5)
	v.SetDefault("generator.prime_delay_probability", 0.05)
	v.SetDefault("generator.standard_delay_probability", 0.20)
	v.SetDefault("generator.max_delay_days", 2)
	v.SetDefault("generator.prime_carriers", []map[string]interface{}{
		{"name": "AMZL", "weight": 0.85},
		{"name": "UPS", "weight": 0.07},
		{"name": "USPS", "weight": 0.05},
		{"name": "FedEx", "weight": 0.03},
	})
	v.SetDefault("generator.standard_carriers", []map[string]interface{}{
		{"name": "AMZL", "weight": 0.20},
		{"name": "UPS", "weight": 0.40},
		{"name": "USPS", "weight": 0.30},
		{"name": "FedEx", "weight": 0.10},
	})
	v.SetDefault("generator.base_amzl_cost", 5.00)
	v.SetDefault("generator.base_third_party_cost", 4.00)
	v.SetDefault("generator.prime_cost_premium", 1.2)
	v.SetDefault("generator.zip_file", "data/us_zip_codes.csv")
	v.SetDefault("generator.output", "data/simulated_orders.csv")

	v.SetDefault("routes.training_dir", "data/last_mile_raw/almrrc2021-data-training")
	v.SetDefault("routes.eval_dir", "data/last_mile_raw/almrrc2021-data-evaluation")
	v.SetDefault("routes.output", "data/processed_last_mile_meta/processed_enhanced_meta_routes.csv")

	v.SetDefault("db.dsn", "root:@tcp(127.0.0.1:3306)/lastmile?parseTime=true")
	v.SetDefault("db.maxOpenConns", 4)
}
