// Package model contains domain records passed between layers.
package model

// Circuit represents one race event of a season.
// Fields mirror the columns of the circuits table; (Year, Round) is unique.
type Circuit struct {
	Year    int     // season year
	Round   int     // race number within the season, chronological
	Name    string  // circuit name, e.g. "Silverstone Circuit"
	Country string  // host country
	Lat     float64 // latitude of the venue
	Lng     float64 // longitude of the venue
}

// DriverResult represents one driver's standing after one round.
// Fields mirror the columns of the drivers table. Within a (Year, Round)
// the Position values are unique and rank by descending Points.
type DriverResult struct {
	Year     int     // season year
	Round    int     // race number the standing was taken at
	Code     string  // three-letter driver code, e.g. "VER"
	Forename string
	Surname  string
	Number   int     // car number
	Points   float64 // accumulated season points at this round
	Position int     // championship position at this round
}

// FullName returns the driver's display name.
func (d DriverResult) FullName() string {
	return d.Forename + " " + d.Surname
}

// Season returns the year the record belongs to.
func (c Circuit) Season() int { return c.Year }

// Season returns the year the record belongs to.
func (d DriverResult) Season() int { return d.Year }
