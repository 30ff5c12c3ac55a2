package routes

import "math"

// earthRadiusKM is the mean Earth radius used by the distance computation.
const earthRadiusKM = 6371

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude pairs. The aggregator does not call it yet: no input
// document supplies two distinct coordinates per route, so route distance is
// written as zero. It is kept wired-ready for when stop coordinates land.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
