package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"lastmile/internal/database"
	"lastmile/internal/models"
)

// WarehouseLoader moves the pipelines' CSV outputs into the MySQL analysis
// tables. Every inserted row is tagged with the load id of its run.
type WarehouseLoader struct {
	db *database.DB
}

func NewWarehouseLoader(db *database.DB) *WarehouseLoader {
	return &WarehouseLoader{db: db}
}

// LoadOrders reads the simulated orders CSV and inserts its rows into
// sim_orders. Returns the number of rows inserted.
func (w *WarehouseLoader) LoadOrders(path, loadID string) (int, error) {
	records, err := ReadOrdersCSV(path)
	if err != nil {
		return 0, err
	}

	stmt, err := w.db.Prepare(`
		INSERT INTO sim_orders (
			order_id, customer_id, order_date, is_prime_member,
			expected_delivery_date, actual_delivery_date, delivery_status,
			carrier, delivery_cost_to_amazon, product_id, order_quantity,
			destination_zip_code, load_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare order insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(
			r.OrderID, r.CustomerID, r.OrderDate, r.IsPrimeMember,
			r.ExpectedDeliveryDate, r.ActualDeliveryDate, r.DeliveryStatus,
			r.Carrier, r.DeliveryCost, r.ProductID, r.OrderQuantity,
			r.DestinationZipCode, loadID,
		)
		if err != nil {
			return i, fmt.Errorf("failed to insert order %s: %w", r.OrderID, err)
		}
	}

	return len(records), nil
}

// LoadRouteSummaries reads the processed routes CSV and inserts its rows
// into route_summaries. Returns the number of rows inserted.
func (w *WarehouseLoader) LoadRouteSummaries(path, loadID string) (int, error) {
	summaries, err := ReadRouteSummariesCSV(path)
	if err != nil {
		return 0, err
	}

	stmt, err := w.db.Prepare(`
		INSERT INTO route_summaries (
			route_id, city, route_date, station_code, route_score,
			origin_latitude, origin_longitude, vehicle_capacity_cm3,
			num_deliveries, total_calculated_volume_cm3,
			actual_route_duration_hours, actual_route_distance_km, load_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare route insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range summaries {
		_, err := stmt.Exec(
			s.RouteID, s.City, s.RouteDate, s.StationCode, s.RouteScore,
			s.OriginLatitude, s.OriginLongitude, s.VehicleCapacity,
			s.NumDeliveries, s.TotalVolumeCM3,
			s.DurationHours, s.DistanceKM, loadID,
		)
		if err != nil {
			return i, fmt.Errorf("failed to insert route %s: %w", s.RouteID, err)
		}
	}

	return len(summaries), nil
}

// ReadOrdersCSV parses a simulated orders CSV back into records. The header
// must match the writer's column order exactly.
func ReadOrdersCSV(path string) ([]models.OrderRecord, error) {
	rows, err := readCSV(path, models.OrderCSVHeader)
	if err != nil {
		return nil, err
	}

	records := make([]models.OrderRecord, 0, len(rows))
	for i, row := range rows {
		r, err := parseOrderRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// ReadRouteSummariesCSV parses a processed routes CSV back into summaries.
func ReadRouteSummariesCSV(path string) ([]models.RouteSummary, error) {
	rows, err := readCSV(path, models.RouteCSVHeader)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RouteSummary, 0, len(rows))
	for i, row := range rows {
		s, err := parseRouteRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	if len(rows[0]) != len(header) {
		return nil, fmt.Errorf("%s has %d columns, want %d", path, len(rows[0]), len(header))
	}
	for i, name := range header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("%s column %d is %q, want %q", path, i+1, rows[0][i], name)
		}
	}
	return rows[1:], nil
}

func parseOrderRow(row []string) (models.OrderRecord, error) {
	orderDate, err := time.Parse(models.DateLayout, row[2])
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("bad order_date: %w", err)
	}
	isPrime, err := strconv.ParseBool(row[3])
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("bad is_prime_member: %w", err)
	}
	expected, err := time.Parse(models.DateLayout, row[4])
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("bad expected_delivery_date: %w", err)
	}
	actual, err := time.Parse(models.DateLayout, row[5])
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("bad actual_delivery_date: %w", err)
	}
	cost, err := strconv.ParseFloat(row[8], 64)
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("bad delivery_cost_to_amazon: %w", err)
	}
	quantity, err := strconv.Atoi(row[10])
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("bad order_quantity: %w", err)
	}

	return models.OrderRecord{
		OrderID:              row[0],
		CustomerID:           row[1],
		OrderDate:            orderDate,
		IsPrimeMember:        isPrime,
		ExpectedDeliveryDate: expected,
		ActualDeliveryDate:   actual,
		DeliveryStatus:       row[6],
		Carrier:              row[7],
		DeliveryCost:         cost,
		ProductID:            row[9],
		OrderQuantity:        quantity,
		DestinationZipCode:   row[11],
	}, nil
}

func parseRouteRow(row []string) (models.RouteSummary, error) {
	s := models.RouteSummary{
		RouteID:     row[0],
		City:        row[1],
		StationCode: row[3],
		RouteScore:  row[4],
	}

	if row[2] != "" {
		date, err := time.Parse(models.DateLayout, row[2])
		if err != nil {
			return models.RouteSummary{}, fmt.Errorf("bad route_date: %w", err)
		}
		s.RouteDate = &date
	}

	var err error
	if s.OriginLatitude, err = parseOptFloat(row[5]); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad origin_latitude: %w", err)
	}
	if s.OriginLongitude, err = parseOptFloat(row[6]); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad origin_longitude: %w", err)
	}
	if s.VehicleCapacity, err = parseOptFloat(row[7]); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad vehicle_capacity_cm3: %w", err)
	}

	if s.NumDeliveries, err = strconv.Atoi(row[8]); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad num_deliveries: %w", err)
	}
	if s.TotalVolumeCM3, err = strconv.ParseFloat(row[9], 64); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad total_calculated_volume_cm3: %w", err)
	}
	if s.DurationHours, err = strconv.ParseFloat(row[10], 64); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad actual_route_duration_hours: %w", err)
	}
	if s.DistanceKM, err = strconv.ParseFloat(row[11], 64); err != nil {
		return models.RouteSummary{}, fmt.Errorf("bad actual_route_distance_km: %w", err)
	}

	return s, nil
}

func parseOptFloat(cell string) (*float64, error) {
	if cell == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
