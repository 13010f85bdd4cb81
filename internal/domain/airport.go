package domain

type Airport struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func (a Airport) String() string {
	return a.Name
}

type AirplaneType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (t AirplaneType) String() string {
	return t.Name
}

type Airplane struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type"`
	ImageURL       string `json:"image,omitempty"`

	// AirplaneType is populated on reads that join the lookup table.
	AirplaneType *AirplaneType `json:"-"`
}

// Capacity is derived and never stored.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a Airplane) String() string {
	return a.Name
}
