package pricing

import (
	"testing"

	"evaluo/server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveZone(t *testing.T) {
	// Toronto city center is 43.6532, -79.3832. One degree of latitude
	// is roughly 111km, so small offsets land in predictable zones.
	tests := []struct {
		name     string
		city     string
		lat      float64
		lon      float64
		expected models.Zone
	}{
		{
			name:     "City center is zone A",
			city:     "toronto",
			lat:      43.6532,
			lon:      -79.3832,
			expected: models.ZoneA,
		},
		{
			name:     "Three km north is zone B",
			city:     "toronto",
			lat:      43.6802, // ~3km
			lon:      -79.3832,
			expected: models.ZoneB,
		},
		{
			name:     "Seven km north is zone C",
			city:     "toronto",
			lat:      43.7162, // ~7km
			lon:      -79.3832,
			expected: models.ZoneC,
		},
		{
			name:     "Twenty km north is zone D",
			city:     "toronto",
			lat:      43.8332, // ~20km
			lon:      -79.3832,
			expected: models.ZoneD,
		},
		{
			name:     "Unknown city measures from the default center",
			city:     "atlantis",
			lat:      43.6532,
			lon:      -79.3832,
			expected: models.ZoneA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := ResolveZone(tt.city, tt.lat, tt.lon)
			assert.Equal(t, tt.expected, zone)
		})
	}
}
