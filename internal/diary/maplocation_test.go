package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestResolveMapLocation(t *testing.T) {
	homeUser := &accountmodels.User{
		UID:     "u1",
		HomeLat: floatPtr(48.1),
		HomeLon: floatPtr(11.5),
	}

	tests := []struct {
		name     string
		entry    *accountmodels.Entry
		user     *accountmodels.User
		hintLat  *float64
		hintLon  *float64
		hintZoom *int
		expected MapLocation
	}{
		{
			name: "entry location wins over everything",
			entry: &accountmodels.Entry{
				Latitude:  floatPtr(59.3),
				Longitude: floatPtr(18.1),
			},
			user:     homeUser,
			hintLat:  floatPtr(1),
			hintLon:  floatPtr(2),
			hintZoom: intPtr(3),
			expected: MapLocation{Lat: 59.3, Lon: 18.1, Zoom: 12},
		},
		{
			name:     "home location when the entry has none",
			entry:    &accountmodels.Entry{},
			user:     homeUser,
			expected: MapLocation{Lat: 48.1, Lon: 11.5, Zoom: 12},
		},
		{
			name:     "no entry and no home falls back to the default view",
			user:     &accountmodels.User{UID: "u2"},
			expected: MapLocation{Lat: 51.5, Lon: -0.1, Zoom: 4},
		},
		{
			name:     "nil user falls back to the default view",
			expected: MapLocation{Lat: 51.5, Lon: -0.1, Zoom: 4},
		},
		{
			name:     "request hints override the fallback",
			user:     &accountmodels.User{UID: "u2"},
			hintLat:  floatPtr(35.7),
			hintLon:  floatPtr(139.7),
			hintZoom: intPtr(10),
			expected: MapLocation{Lat: 35.7, Lon: 139.7, Zoom: 10},
		},
		{
			name:     "partial hints keep the remaining defaults",
			user:     &accountmodels.User{UID: "u2"},
			hintLat:  floatPtr(35.7),
			expected: MapLocation{Lat: 35.7, Lon: -0.1, Zoom: 4},
		},
		{
			name:     "home location beats request hints",
			user:     homeUser,
			hintLat:  floatPtr(1),
			hintLon:  floatPtr(2),
			hintZoom: intPtr(3),
			expected: MapLocation{Lat: 48.1, Lon: 11.5, Zoom: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMapLocation(tt.entry, tt.user, tt.hintLat, tt.hintLon, tt.hintZoom)
			assert.Equal(t, tt.expected, got)
		})
	}
}
