package domain

import "fmt"

// Coordinate - географическая точка (WGS84)
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports the (0,0) sentinel that platforms return instead of a real fix.
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// Valid проверяет диапазоны широты и долготы
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// RegionSource - откуда взят центр карты
type RegionSource string

const (
	RegionSourceDevice   RegionSource = "device"
	RegionSourceFallback RegionSource = "fallback"
)

// Region - область карты, которую должен показать хост
type Region struct {
	Center         Coordinate   `json:"center"`
	LatitudeDelta  float64      `json:"latitude_delta"`
	LongitudeDelta float64      `json:"longitude_delta"`
	Source         RegionSource `json:"source"`
}

// CityContext scopes point queries to a locality. It is configuration and is
// never derived from the device coordinate.
type CityContext struct {
	City   string `json:"city"`
	Region string `json:"region"`
}

// String returns the wire form "<city>,<region>".
func (c CityContext) String() string {
	if c.Region == "" {
		return c.City
	}
	return fmt.Sprintf("%s,%s", c.City, c.Region)
}
