package routes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile/internal/models"
	"lastmile/internal/routes"
)

func inputsFor(routeDetails, packageDetails, sequenceDetails map[string]map[string]interface{}) routes.Inputs {
	return routes.Inputs{
		RouteDocs:    []routes.Document{{Cause: routes.CauseOK, Entries: routeDetails}},
		PackageDocs:  []routes.Document{{Cause: routes.CauseOK, Entries: packageDetails}},
		SequenceDocs: []routes.Document{{Cause: routes.CauseOK, Entries: sequenceDetails}},
	}
}

func singleSummary(t *testing.T, route, pkgs map[string]interface{}) models.RouteSummary {
	t.Helper()
	summaries := routes.Aggregate(inputsFor(
		map[string]map[string]interface{}{"r1": route},
		map[string]map[string]interface{}{"r1": pkgs},
		nil,
	))
	require.Len(t, summaries, 1)
	return summaries[0]
}

func TestAggregateEmission(t *testing.T) {
	t.Run("route without package details is excluded", func(t *testing.T) {
		routeDetails := map[string]map[string]interface{}{
			"r1": {"city": "Austin"},
			"r2": {"city": "Boston"},
		}
		packageDetails := map[string]map[string]interface{}{
			"r1": {"AD": map[string]interface{}{}},
		}

		summaries := routes.Aggregate(inputsFor(routeDetails, packageDetails, nil))

		require.Len(t, summaries, 1)
		assert.Equal(t, "r1", summaries[0].RouteID)
	})

	t.Run("route with empty route details is excluded", func(t *testing.T) {
		routeDetails := map[string]map[string]interface{}{
			"r1": {},
			"r2": {"city": "Boston"},
		}
		packageDetails := map[string]map[string]interface{}{
			"r1": {"AD": map[string]interface{}{}},
			"r2": {"AD": map[string]interface{}{}},
		}

		summaries := routes.Aggregate(inputsFor(routeDetails, packageDetails, nil))

		require.Len(t, summaries, 1)
		assert.Equal(t, "r2", summaries[0].RouteID)
	})
}

func TestAggregateSequenceDetailsAreOptional(t *testing.T) {
	s := singleSummary(t,
		map[string]interface{}{"city": "Austin"},
		map[string]interface{}{"AD": map[string]interface{}{}},
	)
	assert.Equal(t, "Austin", s.City)
}

func TestAggregateDuration(t *testing.T) {
	t.Run("sums travel and service time in hours", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{
				"stops": map[string]interface{}{
					"s1": map[string]interface{}{
						"travel_time_to_next_stop_in_seconds": 3600.0,
						"planned_service_time_seconds":        1800.0,
					},
				},
			},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.InDelta(t, 1.5, s.DurationHours, 1e-9)
	})

	t.Run("non-mapping stops are skipped", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{
				"stops": map[string]interface{}{
					"s1": "garbage",
					"s2": map[string]interface{}{"planned_service_time_seconds": 7200.0},
				},
			},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.InDelta(t, 2.0, s.DurationHours, 1e-9)
	})

	t.Run("negative totals floor at zero", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{
				"stops": map[string]interface{}{
					"s1": map[string]interface{}{"travel_time_to_next_stop_in_seconds": -7200.0},
				},
			},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.Equal(t, 0.0, s.DurationHours)
	})
}

func TestAggregatePackageMetrics(t *testing.T) {
	t.Run("counts deliveries and sums volumes", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{"station_code": "DLA1"},
			map[string]interface{}{
				"AD": map[string]interface{}{
					"p1": map[string]interface{}{
						"dimensions": map[string]interface{}{"depth_cm": 2.0, "height_cm": 3.0, "width_cm": 4.0},
					},
					"p2": map[string]interface{}{
						"dimensions": map[string]interface{}{"depth_cm": 1.0, "height_cm": 1.0, "width_cm": 1.0},
					},
				},
			},
		)
		assert.Equal(t, 2, s.NumDeliveries)
		assert.InDelta(t, 25.0, s.TotalVolumeCM3, 1e-9)
	})

	t.Run("falls back to the packages key", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{"station_code": "DLA1"},
			map[string]interface{}{
				"packages": map[string]interface{}{
					"p1": map[string]interface{}{
						"dimensions": map[string]interface{}{"depth_cm": 2.0, "height_cm": 2.0, "width_cm": 2.0},
					},
				},
			},
		)
		assert.Equal(t, 1, s.NumDeliveries)
		assert.InDelta(t, 8.0, s.TotalVolumeCM3, 1e-9)
	})

	t.Run("missing dimensions contribute count but no volume", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{"station_code": "DLA1"},
			map[string]interface{}{
				"AD": map[string]interface{}{
					"p1": map[string]interface{}{},
					"p2": map[string]interface{}{
						"dimensions": map[string]interface{}{"depth_cm": 1.0, "height_cm": 2.0},
					},
				},
			},
		)
		assert.Equal(t, 2, s.NumDeliveries)
		assert.Equal(t, 0.0, s.TotalVolumeCM3, "absent width defaults to zero")
	})
}

func TestAggregateRouteFields(t *testing.T) {
	t.Run("field name fallbacks and origin extraction", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{
				"date":            "2018-07-24",
				"city":            "Chicago",
				"station_code":    "DCH1",
				"route_score":     "High",
				"vehicleCapacity": 3313071.0,
				"origin": map[string]interface{}{
					"latitude":  42.14,
					"longitude": -87.80,
				},
			},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)

		require.NotNil(t, s.RouteDate)
		assert.Equal(t, "2018-07-24", s.RouteDate.Format(models.DateLayout))
		assert.Equal(t, "Chicago", s.City)
		assert.Equal(t, "DCH1", s.StationCode)
		assert.Equal(t, "High", s.RouteScore)
		require.NotNil(t, s.VehicleCapacity)
		assert.Equal(t, 3313071.0, *s.VehicleCapacity)
		require.NotNil(t, s.OriginLatitude)
		assert.Equal(t, 42.14, *s.OriginLatitude)
		require.NotNil(t, s.OriginLongitude)
		assert.Equal(t, -87.80, *s.OriginLongitude)
	})

	t.Run("primary date field wins over fallback", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{
				"date_YYYY_MM_DD": "2018-08-11",
				"date":            "2017-01-01",
			},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		require.NotNil(t, s.RouteDate)
		assert.Equal(t, "2018-08-11", s.RouteDate.Format(models.DateLayout))
	})

	t.Run("unparseable date becomes nil", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{"date": "not a date"},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.Nil(t, s.RouteDate)
	})

	t.Run("missing city defaults to Unknown", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{"station_code": "DLA1"},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.Equal(t, "Unknown", s.City)
	})

	t.Run("scalar origin is ignored", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{"origin": "DCH1"},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.Nil(t, s.OriginLatitude)
		assert.Nil(t, s.OriginLongitude)
	})

	t.Run("distance is always zero", func(t *testing.T) {
		s := singleSummary(t,
			map[string]interface{}{
				"origin": map[string]interface{}{"latitude": 42.14, "longitude": -87.80},
			},
			map[string]interface{}{"AD": map[string]interface{}{}},
		)
		assert.Equal(t, 0.0, s.DistanceKM)
	})
}

func TestAggregateOrdering(t *testing.T) {
	routeDetails := map[string]map[string]interface{}{
		"r3": {"city": "C"},
		"r1": {"city": "A"},
		"r2": {"city": "B"},
	}
	packageDetails := map[string]map[string]interface{}{
		"r1": {"AD": map[string]interface{}{}},
		"r2": {"AD": map[string]interface{}{}},
		"r3": {"AD": map[string]interface{}{}},
	}

	summaries := routes.Aggregate(inputsFor(routeDetails, packageDetails, nil))

	require.Len(t, summaries, 3)
	assert.Equal(t, "r1", summaries[0].RouteID)
	assert.Equal(t, "r2", summaries[1].RouteID)
	assert.Equal(t, "r3", summaries[2].RouteID)
}

func TestAggregateDeterminism(t *testing.T) {
	routeDetails := map[string]map[string]interface{}{
		"r1": {"city": "Austin", "stops": map[string]interface{}{
			"s1": map[string]interface{}{"travel_time_to_next_stop_in_seconds": 120.0},
		}},
		"r2": {"city": "Boston"},
	}
	packageDetails := map[string]map[string]interface{}{
		"r1": {"AD": map[string]interface{}{}},
		"r2": {"AD": map[string]interface{}{}},
	}

	first := routes.Aggregate(inputsFor(routeDetails, packageDetails, nil))
	second := routes.Aggregate(inputsFor(routeDetails, packageDetails, nil))

	assert.Equal(t, first, second)
}
