package domain

type Crew struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Flights []Flight `json:"-"`
}

func (c Crew) String() string {
	return c.FirstName + " " + c.LastName
}
