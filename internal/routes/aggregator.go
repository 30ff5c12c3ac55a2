package routes

import (
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"

	"lastmile/internal/models"
)

// Aggregate flattens the merged inputs into one summary per route, sorted by
// route id. A route is emitted only when both its route details and package
// details are present; sequence details never gate emission.
func Aggregate(in Inputs) []models.RouteSummary {
	routeDetails := in.Routes()
	packageDetails := in.Packages()
	sequenceDetails := in.Sequences()

	ids := make([]string, 0, len(routeDetails))
	for id := range routeDetails {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	summaries := make([]models.RouteSummary, 0, len(ids))
	for _, id := range ids {
		pkgs, ok := packageDetails[id]
		if !ok {
			continue
		}
		summaries = append(summaries, summarizeRoute(id, routeDetails[id], pkgs, sequenceDetails[id]))
	}
	return summaries
}

// dateLayouts are the formats seen in route_date fields across revisions.
var dateLayouts = []string{models.DateLayout, "2006-01-02 15:04:05", time.RFC3339}

func summarizeRoute(id string, route, pkgs, seq map[string]interface{}) models.RouteSummary {
	s := models.RouteSummary{
		RouteID: id,
		City:    "Unknown",
	}

	// An explicit empty city is kept as-is; only an absent field defaults.
	if v, ok := route["city"]; ok && v != nil {
		s.City = cast.ToString(v)
	}
	s.RouteDate = parseRouteDate(FirstString(route, "date_YYYY_MM_DD", "date"))
	s.StationCode = FirstString(route, "station_code")
	s.RouteScore = FirstString(route, "route_score")
	if capacity, ok := FirstFloat(route, "executor_capacity_cm3", "vehicleCapacity"); ok {
		s.VehicleCapacity = &capacity
	}

	if origin, ok := SubMap(route, "origin"); ok {
		s.OriginLatitude = OptFloat(origin, "latitude")
		s.OriginLongitude = OptFloat(origin, "longitude")
	}

	s.DurationHours = routeDurationHours(route)
	s.NumDeliveries, s.TotalVolumeCM3 = packageMetrics(pkgs)

	// No source document carries two coordinates per route, so the distance
	// stays a placeholder; see Haversine for the computation it would use.
	s.DistanceKM = 0

	return s
}

// routeDurationHours sums travel and planned service time over every
// map-valued stop, converts seconds to hours and floors at zero.
func routeDurationHours(route map[string]interface{}) float64 {
	stops, ok := SubMap(route, "stops")
	if !ok {
		return 0
	}

	var travel, service float64
	for _, v := range stops {
		stop, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		travel += FloatAt(stop, "travel_time_to_next_stop_in_seconds")
		service += FloatAt(stop, "planned_service_time_seconds")
	}

	hours := (travel + service) / 3600
	if hours < 0 {
		return 0
	}
	return hours
}

// packageMetrics counts deliveries and sums depth×height×width over each
// package's dimensions mapping.
func packageMetrics(pkgs map[string]interface{}) (int, float64) {
	inner, ok := SubMap(pkgs, "AD")
	if !ok || len(inner) == 0 {
		if alt, altOK := SubMap(pkgs, "packages"); altOK {
			inner = alt
		}
	}

	var volume float64
	for _, v := range inner {
		pkg, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		if dims, ok := SubMap(pkg, "dimensions"); ok {
			volume += FloatAt(dims, "depth_cm") * FloatAt(dims, "height_cm") * FloatAt(dims, "width_cm")
		}
	}
	return len(inner), volume
}

// parseRouteDate normalizes the raw date string; unparseable values become
// nil rather than an error.
func parseRouteDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
