package pricing

import (
	"evaluo/server/config"
	"evaluo/server/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Zone boundaries in meters from the city center
const (
	zoneARadius = 2000.0
	zoneBRadius = 5000.0
	zoneCRadius = 10000.0
)

// ResolveZone maps a property's coordinates to its pricing zone by
// geodesic distance from the city center. Unknown cities resolve
// against the default city's center.
func ResolveZone(city string, latitude, longitude float64) models.Zone {
	center := config.GetCityOrDefault(city).Center
	centerPoint := orb.Point{center[1], center[0]}
	propertyPoint := orb.Point{longitude, latitude}

	distance := geo.Distance(centerPoint, propertyPoint)
	switch {
	case distance < zoneARadius:
		return models.ZoneA
	case distance < zoneBRadius:
		return models.ZoneB
	case distance < zoneCRadius:
		return models.ZoneC
	default:
		return models.ZoneD
	}
}
