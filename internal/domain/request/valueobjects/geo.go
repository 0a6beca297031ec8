package valueobjects

import "fmt"

// Coordinates is an optional latitude/longitude pair attached to a request.
// Both members are always present together; a request either has coordinates
// or it has none.
type Coordinates struct {
	latitude  float64
	longitude float64
}

// NewCoordinates validates the paired-coordinate invariant. Exactly one of
// lat/lng being set is a violation; both nil yields a nil Coordinates.
func NewCoordinates(lat, lng *float64) (*Coordinates, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, fmt.Errorf("latitude and longitude must be provided together")
	}
	if *lat < -90 || *lat > 90 {
		return nil, fmt.Errorf("latitude must be between -90 and 90, got %v", *lat)
	}
	if *lng < -180 || *lng > 180 {
		return nil, fmt.Errorf("longitude must be between -180 and 180, got %v", *lng)
	}
	return &Coordinates{latitude: *lat, longitude: *lng}, nil
}

func (c *Coordinates) Latitude() float64 {
	return c.latitude
}

func (c *Coordinates) Longitude() float64 {
	return c.longitude
}

func (c *Coordinates) String() string {
	return fmt.Sprintf("%v,%v", c.latitude, c.longitude)
}
