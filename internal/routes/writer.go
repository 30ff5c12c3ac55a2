package routes

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"lastmile/internal/models"
)

// WriteCSV serializes the summaries to path, creating the parent directory.
func WriteCSV(path string, summaries []models.RouteSummary) error {
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

	if err := w.Write(models.RouteCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range summaries {
		if err := w.Write(s.CSVRow()); err != nil {
			return fmt.Errorf("failed to write route %s: %w", s.RouteID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// CityCount is one row of the per-city breakdown.
type CityCount struct {
	City  string
	Count int
}

// CountByCity tallies summaries per city, most routes first.
func CountByCity(summaries []models.RouteSummary) []CityCount {
	tally := make(map[string]int)
	for _, s := range summaries {
		tally[s.City]++
	}

	counts := make([]CityCount, 0, len(tally))
	for city, n := range tally {
		counts = append(counts, CityCount{City: city, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].City < counts[j].City
	})
	return counts
}
