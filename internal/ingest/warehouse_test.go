package ingest_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile/internal/ingest"
	"lastmile/internal/models"
	"lastmile/internal/routes"
	"lastmile/internal/simulate"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReadOrdersCSVRoundTrip(t *testing.T) {
	records := []models.OrderRecord{
		{
			OrderID:              "ORD-0000000",
			CustomerID:           "CUST-10000",
			OrderDate:            day("2024-02-01"),
			IsPrimeMember:        true,
			ExpectedDeliveryDate: day("2024-02-03"),
			ActualDeliveryDate:   day("2024-02-05"),
			DeliveryStatus:       models.StatusLate,
			Carrier:              models.CarrierAMZL,
			DeliveryCost:         6.12,
			ProductID:            "PROD-101",
			OrderQuantity:        2,
			DestinationZipCode:   "90210",
		},
		{
			OrderID:              "ORD-0000001",
			CustomerID:           "CUST-20000",
			OrderDate:            day("2024-05-10"),
			IsPrimeMember:        false,
			ExpectedDeliveryDate: day("2024-05-16"),
			ActualDeliveryDate:   day("2024-05-16"),
			DeliveryStatus:       models.StatusOnTime,
			Carrier:              "UPS",
			DeliveryCost:         4.00,
			ProductID:            "PROD-500",
			OrderQuantity:        5,
			DestinationZipCode:   "00501",
		},
	}

	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, simulate.WriteCSV(path, records))

	got, err := ingest.ReadOrdersCSV(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadRouteSummariesCSVRoundTrip(t *testing.T) {
	routeDate := day("2018-07-24")
	lat, lon, capacity := 42.14, -87.8, 4247527.0
	summaries := []models.RouteSummary{
		{
			RouteID:         "RouteID_001",
			City:            "Chicago",
			RouteDate:       &routeDate,
			StationCode:     "DCH1",
			RouteScore:      "High",
			OriginLatitude:  &lat,
			OriginLongitude: &lon,
			VehicleCapacity: &capacity,
			NumDeliveries:   12,
			TotalVolumeCM3:  52000.5,
			DurationHours:   7.25,
		},
		{
			// Optionals absent: pointers must come back nil, not zero.
			RouteID:       "RouteID_002",
			City:          "Unknown",
			NumDeliveries: 1,
		},
	}

	path := filepath.Join(t.TempDir(), "routes.csv")
	require.NoError(t, routes.WriteCSV(path, summaries))

	got, err := ingest.ReadRouteSummariesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, summaries, got)
}

func TestReadOrdersCSVErrors(t *testing.T) {
	t.Run("missing file reports not-exist", func(t *testing.T) {
		_, err := ingest.ReadOrdersCSV(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("wrong header is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "orders.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

		_, err := ingest.ReadOrdersCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "columns")
	})

	t.Run("bad cell is rejected with its row number", func(t *testing.T) {
		records := []models.OrderRecord{{
			OrderID:              "ORD-0000000",
			OrderDate:            day("2024-02-01"),
			ExpectedDeliveryDate: day("2024-02-03"),
			ActualDeliveryDate:   day("2024-02-03"),
		}}
		path := filepath.Join(t.TempDir(), "orders.csv")
		require.NoError(t, simulate.WriteCSV(path, records))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		corrupted := []byte(string(data[:len(data)-1]))
		// Swap a parsable quantity for garbage by appending a broken row.
		corrupted = append(corrupted, []byte("\nORD-1,CUST-1,2024-01-01,true,2024-01-02,2024-01-02,On-Time,UPS,4.00,PROD-1,many,90210\n")...)
		require.NoError(t, os.WriteFile(path, corrupted, 0o644))

		_, err = ingest.ReadOrdersCSV(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_quantity")
	})
}
