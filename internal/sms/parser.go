// Package sms parses the fixed inbound SMS report format relayed by the
// gateway: "URGENCY;lat;lng;description". Fields after the first may be
// missing; the whole body doubles as the description when it is unstructured.
package sms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"relief-dispatch/internal/domain/geo"
)

// Report is the parsed content of one inbound message.
type Report struct {
	Urgency     string // lowercased first segment, "" when absent
	Location    geo.Point
	Description string
}

var ErrInvalidFormat = errors.New("invalid sms format")

// Parse splits an inbound body on ';' into urgency, coordinates, and
// description. Unparseable coordinates fail the whole message: a report we
// cannot place on the map cannot be dispatched.
func Parse(body string) (Report, error) {
	if strings.TrimSpace(body) == "" {
		return Report{}, fmt.Errorf("%w: empty body", ErrInvalidFormat)
	}

	parts := strings.SplitN(body, ";", 4)

	report := Report{
		Urgency:     strings.ToLower(strings.TrimSpace(parts[0])),
		Description: body,
	}

	var lat, lng float64
	if len(parts) > 1 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return Report{}, fmt.Errorf("%w: bad latitude %q", ErrInvalidFormat, parts[1])
		}
		lat = v
	}
	if len(parts) > 2 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return Report{}, fmt.Errorf("%w: bad longitude %q", ErrInvalidFormat, parts[2])
		}
		lng = v
	}

	point, err := geo.NewPoint(lat, lng)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	report.Location = point

	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		report.Description = strings.TrimSpace(parts[3])
	}

	return report, nil
}
