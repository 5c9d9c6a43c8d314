package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullBody(t *testing.T) {
	report, err := Parse("URGENT;16.8409;96.1735;Family trapped on roof, water rising")
	require.NoError(t, err)

	assert.Equal(t, "urgent", report.Urgency)
	assert.Equal(t, 16.8409, report.Location.Latitude)
	assert.Equal(t, 96.1735, report.Location.Longitude)
	assert.Equal(t, "Family trapped on roof, water rising", report.Description)
}

func TestParse_DescriptionWithSemicolons(t *testing.T) {
	report, err := Parse("critical;1.0;2.0;house collapsed; two people inside")
	require.NoError(t, err)
	assert.Equal(t, "house collapsed; two people inside", report.Description)
}

func TestParse_MissingDescriptionKeepsWholeBody(t *testing.T) {
	body := "low;10.5;20.25"
	report, err := Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "low", report.Urgency)
	assert.Equal(t, body, report.Description)
}

func TestParse_UrgencyOnlyDefaultsToOrigin(t *testing.T) {
	report, err := Parse("HELP")
	require.NoError(t, err)
	assert.Equal(t, "help", report.Urgency)
	assert.Equal(t, 0.0, report.Location.Latitude)
	assert.Equal(t, 0.0, report.Location.Longitude)
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"urgent;north;96.1",
		"urgent;16.8;east",
		"urgent;95.0;10.0", // latitude out of range
	}
	for _, body := range cases {
		_, err := Parse(body)
		assert.ErrorIs(t, err, ErrInvalidFormat, "body %q", body)
	}
}
