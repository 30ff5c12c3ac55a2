package simulate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"lastmile/internal/models"
)

// WriteCSV serializes the records to path, creating the parent directory.
func WriteCSV(path string, records []models.OrderRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(models.OrderCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.CSVRow()); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.OrderID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// TierStats summarizes one membership tier of a generated dataset.
type TierStats struct {
	Count            int
	MeanDeliveryDays float64
	MinDeliveryDays  int
	MaxDeliveryDays  int
	CarrierShare     map[string]float64
}

// Summary is the per-tier breakdown printed after generation.
type Summary struct {
	Prime    TierStats
	Standard TierStats
}

// Summarize computes actual delivery-day stats and carrier shares per tier.
func Summarize(records []models.OrderRecord) Summary {
	return Summary{
		Prime:    tierStats(records, true),
		Standard: tierStats(records, false),
	}
}

func tierStats(records []models.OrderRecord, prime bool) TierStats {
	stats := TierStats{CarrierShare: make(map[string]float64)}
	totalDays := 0
	for _, r := range records {
		if r.IsPrimeMember != prime {
			continue
		}
		days := r.ActualDeliveryDays()
		if stats.Count == 0 || days < stats.MinDeliveryDays {
			stats.MinDeliveryDays = days
		}
		if days > stats.MaxDeliveryDays {
			stats.MaxDeliveryDays = days
		}
		totalDays += days
		stats.CarrierShare[r.Carrier]++
		stats.Count++
	}
	if stats.Count > 0 {
		stats.MeanDeliveryDays = float64(totalDays) / float64(stats.Count)
		for carrier := range stats.CarrierShare {
			stats.CarrierShare[carrier] /= float64(stats.Count)
		}
	}
	return stats
}

// Carriers returns the tier's carriers sorted by descending share.
func (t TierStats) Carriers() []string {
	carriers := make([]string, 0, len(t.CarrierShare))
	for c := range t.CarrierShare {
		carriers = append(carriers, c)
	}
	sort.Slice(carriers, func(i, j int) bool {
		if t.CarrierShare[carriers[i]] != t.CarrierShare[carriers[j]] {
			return t.CarrierShare[carriers[i]] > t.CarrierShare[carriers[j]]
		}
		return carriers[i] < carriers[j]
	})
	return carriers
}
