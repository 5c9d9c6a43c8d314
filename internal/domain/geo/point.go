package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Point is an immutable WGS-84 latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrMalformedWKT     = errors.New("malformed POINT geometry")
)

// NewPoint constructs a Point and validates coordinate ranges.
func NewPoint(latitude, longitude float64) (Point, error) {
	point := Point{Latitude: latitude, Longitude: longitude}
	if err := point.Validate(); err != nil {
		return Point{}, err
	}
	return point, nil
}

// Validate checks coordinate ranges.
func (point Point) Validate() error {
	if point.Latitude < -90 || point.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if point.Longitude < -180 || point.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// WKT renders the point in the textual geometry form used by geography columns:
// POINT(lon lat), longitude first.
func (point Point) WKT() string {
	return "POINT(" +
		strconv.FormatFloat(point.Longitude, 'f', -1, 64) + " " +
		strconv.FormatFloat(point.Latitude, 'f', -1, 64) + ")"
}

// ParsePointWKT parses 'POINT(lon lat)' as returned by ST_AsText. An optional
// 'SRID=n;' prefix is accepted and ignored.
func ParsePointWKT(wkt string) (Point, error) {
	s := strings.TrimSpace(wkt)
	if i := strings.IndexByte(s, ';'); i >= 0 && strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		s = s[i+1:]
	}

	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "POINT") {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedWKT, wkt)
	}
	s = strings.TrimSpace(s[len("POINT"):])
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedWKT, wkt)
	}

	fields := strings.Fields(s[1 : len(s)-1])
	if len(fields) != 2 {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedWKT, wkt)
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedWKT, wkt)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q", ErrMalformedWKT, wkt)
	}

	return NewPoint(lat, lon)
}
