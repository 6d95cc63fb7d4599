package entity

// Coordinates is the reference point used for proximity search.
// Field order is (latitude, longitude); this is the query-side convention.
// Immutable value type; equality is structural.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LonLat is a coordinate pair in GeoJSON axis order: longitude first.
// This is the record-side convention and is deliberately distinct from
// Coordinates. The two must not be conflated at either boundary.
type LonLat [2]float64

// NewLonLat builds a record coordinate from explicit axis values.
func NewLonLat(longitude, latitude float64) LonLat {
	return LonLat{longitude, latitude}
}

// Longitude returns the first axis value.
func (l LonLat) Longitude() float64 { return l[0] }

// Latitude returns the second axis value.
func (l LonLat) Latitude() float64 { return l[1] }
