package domain

import (
	"fmt"
	"time"
)

type Flight struct {
	ID            int64     `json:"id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`

	Route    *Route    `json:"-"`
	Airplane *Airplane `json:"-"`
	Crews    []Crew    `json:"-"`

	// SeatsAvailable is derived per query on list reads and never stored.
	SeatsAvailable int `json:"-"`
	// TakenSeats is populated on detail reads.
	TakenSeats []SeatRef `json:"-"`
}

// SeatRef is a (row, seat) pair taken on a flight.
type SeatRef struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// Duration renders arrival minus departure as zero-padded HH:MM with the
// seconds component discarded. Arrival before departure is not rejected
// anywhere; hours floor toward negative infinity with the minute
// remainder kept positive, so -90 minutes renders as "-2:30".
func (f Flight) Duration() string {
	total := int(f.ArrivalTime.Sub(f.DepartureTime).Seconds())
	hours := total / 3600
	if total%3600 < 0 {
		hours--
	}
	minutes := (total - hours*3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func (f Flight) String() string {
	if f.Airplane == nil || f.Route == nil || f.Route.Source == nil || f.Route.Destination == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s - %s)", f.Airplane.Name, f.Route.Source.ClosestBigCity, f.Route.Destination.ClosestBigCity)
}
