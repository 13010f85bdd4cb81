package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

func (o Order) String() string {
	return o.CreatedAt.Format("02/01/2006 15:04")
}

type Ticket struct {
	ID       int64 `json:"id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
	OrderID  int64 `json:"order"`

	Flight *Flight `json:"-"`
}

func (t Ticket) String() string {
	if t.Flight == nil {
		return fmt.Sprintf("(row: %d, seat: %d)", t.Row, t.Seat)
	}
	return fmt.Sprintf("%s (row: %d, seat: %d)", t.Flight.DepartureTime.Format("02/01/2006 15:04"), t.Row, t.Seat)
}

// ValidateTicket checks the seat coordinates against the airplane geometry.
// Every write path goes through it: the order service before the transaction
// and the order repository inside it.
func ValidateTicket(row, seat int, airplane Airplane) error {
	for _, check := range []struct {
		value      int
		field      string
		boundField string
		bound      int
	}{
		{row, "row", "rows", airplane.Rows},
		{seat, "seat", "seats_in_row", airplane.SeatsInRow},
	} {
		if check.value < 1 || check.value > check.bound {
			return NewValidationError(check.field, fmt.Sprintf(
				"%s number must be in available range: (1, %s): (1, %d)",
				check.field, check.boundField, check.bound,
			))
		}
	}
	return nil
}
