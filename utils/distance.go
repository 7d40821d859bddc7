package utils

import (
	"math"
)

// Distance metric names accepted by CentroidDistance.
const (
	MetricHaversine = "haversine"
	MetricEuclidean = "euclidean"
)

// Haversine returns the great-circle distance between two coordinates in
// kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // Earth's radius in kilometers

	// Convert coordinates to radians
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// SquaredEuclidean returns the squared planar distance on raw degree values.
// The result has no physical unit and is only useful for ordering candidates
// within a small geographic extent such as a single state.
func SquaredEuclidean(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	return dLat*dLat + dLon*dLon
}

// CentroidDistance measures from a query point to a possibly-missing centroid
// using the named metric. A nil coordinate yields +Inf so the candidate never
// wins a nearest-match scan.
func CentroidDistance(lat, lon float64, centroidLat, centroidLon *float64, metric string) float64 {
	if centroidLat == nil || centroidLon == nil {
		return math.Inf(1)
	}
	if metric == MetricEuclidean {
		return SquaredEuclidean(lat, lon, *centroidLat, *centroidLon)
	}
	return Haversine(lat, lon, *centroidLat, *centroidLon)
}
