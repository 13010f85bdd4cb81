package domain

type Route struct {
	ID            int64 `json:"id"`
	Distance      int   `json:"distance"`
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`

	Source      *Airport `json:"-"`
	Destination *Airport `json:"-"`
}

func (r Route) String() string {
	if r.Source == nil || r.Destination == nil {
		return ""
	}
	return r.Source.Name + " - " + r.Destination.Name
}

// ValidateRoute rejects routes whose endpoints are the same airport.
// It is called by the service layer before a write and again by the
// repository inside the write path so that no caller can bypass it.
func ValidateRoute(sourceID, destinationID int64) error {
	if sourceID == destinationID {
		return NewValidationError(NonFieldErrors, "Source and destination airports cannot be the same.")
	}
	return nil
}
