package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlight_Duration(t *testing.T) {
	base := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		arrival time.Time
		want    string
	}{
		{"two and a half hours", base.Add(2*time.Hour + 30*time.Minute), "02:30"},
		{"zero padded minutes", base.Add(11*time.Hour + 5*time.Minute), "11:05"},
		{"zero duration", base, "00:00"},
		{"seconds truncated", base.Add(1*time.Hour + 59*time.Second), "01:00"},
		{"over a day", base.Add(26 * time.Hour), "26:00"},
		{"arrival before departure floors hours", base.Add(-90 * time.Minute), "-2:30"},
		{"arrival before departure whole hour", base.Add(-2 * time.Hour), "-2:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Flight{DepartureTime: base, ArrivalTime: tt.arrival}
			assert.Equal(t, tt.want, f.Duration())
		})
	}
}

func TestFlight_String(t *testing.T) {
	flight := Flight{
		Airplane: &Airplane{Name: "Boeing 737"},
		Route: &Route{
			Source:      &Airport{Name: "Heathrow", ClosestBigCity: "London"},
			Destination: &Airport{Name: "Charles de Gaulle", ClosestBigCity: "Paris"},
		},
	}
	assert.Equal(t, "Boeing 737 (London - Paris)", flight.String())

	assert.Equal(t, "", Flight{}.String())
}

func TestAirplane_Capacity(t *testing.T) {
	assert.Equal(t, 60, Airplane{Rows: 10, SeatsInRow: 6}.Capacity())
	assert.Equal(t, 0, Airplane{}.Capacity())
}
