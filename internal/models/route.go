package models

import (
	"strconv"
	"time"
)

// RouteSummary is the flattened per-route record produced by the
// process-routes pipeline. Optional fields are pointers: the source JSON
// regularly omits them and an absent value must stay distinguishable from
// zero in the output.
type RouteSummary struct {
	RouteID         string     `db:"route_id"`
	City            string     `db:"city"`
	RouteDate       *time.Time `db:"route_date"`
	StationCode     string     `db:"station_code"`
	RouteScore      string     `db:"route_score"`
	OriginLatitude  *float64   `db:"origin_latitude"`
	OriginLongitude *float64   `db:"origin_longitude"`
	VehicleCapacity *float64   `db:"vehicle_capacity_cm3"`
	NumDeliveries   int        `db:"num_deliveries"`
	TotalVolumeCM3  float64    `db:"total_calculated_volume_cm3"`
	DurationHours   float64    `db:"actual_route_duration_hours"`
	DistanceKM      float64    `db:"actual_route_distance_km"`
}

// RouteCSVHeader is the column order of the processed routes CSV.
var RouteCSVHeader = []string{
	"route_id",
	"city",
	"route_date",
	"station_code",
	"route_score",
	"origin_latitude",
	"origin_longitude",
	"vehicle_capacity_cm3",
	"num_deliveries",
	"total_calculated_volume_cm3",
	"actual_route_duration_hours",
	"actual_route_distance_km",
}

// CSVRow renders the summary in RouteCSVHeader order. Absent optional
// values become empty cells.
func (s RouteSummary) CSVRow() []string {
	date := ""
	if s.RouteDate != nil {
		date = s.RouteDate.Format(DateLayout)
	}
	return []string{
		s.RouteID,
		s.City,
		date,
		s.StationCode,
		s.RouteScore,
		formatOptFloat(s.OriginLatitude),
		formatOptFloat(s.OriginLongitude),
		formatOptFloat(s.VehicleCapacity),
		strconv.Itoa(s.NumDeliveries),
		strconv.FormatFloat(s.TotalVolumeCM3, 'f', -1, 64),
		strconv.FormatFloat(s.DurationHours, 'f', -1, 64),
		strconv.FormatFloat(s.DistanceKM, 'f', -1, 64),
	}
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
