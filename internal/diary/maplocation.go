package diary

import (
	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// Fallback map view when neither the entry nor the user gives us a
// location to center on.
const (
	fallbackMapLon  = -0.1
	fallbackMapLat  = 51.5
	fallbackMapZoom = 4

	locatedMapZoom = 12
)

// MapLocation is the map view to present alongside an entry form.
type MapLocation struct {
	Lat  float64
	Lon  float64
	Zoom int
}

// ResolveMapLocation decides where to center the entry map. An entry with
// its own coordinates wins; otherwise the user's home location; otherwise
// request hints or the fallback view. Pure function, no side effects.
func ResolveMapLocation(entry *accountmodels.Entry, user *accountmodels.User, hintLat, hintLon *float64, hintZoom *int) MapLocation {
	if entry != nil && entry.HasLocation() {
		return MapLocation{Lat: *entry.Latitude, Lon: *entry.Longitude, Zoom: locatedMapZoom}
	}

	if user == nil || user.HomeLat == nil || user.HomeLon == nil {
		loc := MapLocation{Lat: fallbackMapLat, Lon: fallbackMapLon, Zoom: fallbackMapZoom}
		if hintLat != nil {
			loc.Lat = *hintLat
		}
		if hintLon != nil {
			loc.Lon = *hintLon
		}
		if hintZoom != nil {
			loc.Zoom = *hintZoom
		}
		return loc
	}

	return MapLocation{Lat: *user.HomeLat, Lon: *user.HomeLon, Zoom: locatedMapZoom}
}
