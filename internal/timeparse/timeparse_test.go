package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2021, 9, 15, 12, 0, 0, 0, time.UTC)

func TestTryParseTime_Absolute(t *testing.T) {
	tests := []struct {
		input       string
		wantTime    time.Time
		wantDisplay string
	}{
		{"2020-03-04 10:13", time.Date(2020, 3, 4, 10, 13, 0, 0, time.UTC), "2020-03-04 10:13"},
		{"2020-03-04T10:13", time.Date(2020, 3, 4, 10, 13, 0, 0, time.UTC), "2020-03-04 10:13"},
		{"2020-03-04", time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC), "2020-03-04"},
		{"10:13", time.Date(2021, 9, 15, 10, 13, 0, 0, time.UTC), "10:13"},
		{"10:13:30", time.Date(2021, 9, 15, 10, 13, 30, 0, time.UTC), "10:13:30"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, display, err := TryParseTime(tt.input, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTime, got)
			assert.Equal(t, tt.wantDisplay, display)
		})
	}
}

func TestTryParseTime_Relative(t *testing.T) {
	tests := []struct {
		input       string
		wantDelta   time.Duration
		wantDisplay string
	}{
		{"3", 3 * time.Hour, "3 hours ago"},
		{"3.0 hours", 3 * time.Hour, "3 hours ago"},
		{"1 minute", time.Minute, "1 minute ago"},
		{"2 weeks ago", 2 * 7 * 24 * time.Hour, "2 weeks ago"},
		{"2 months ago", 60 * 24 * time.Hour, "2 months ago"},
		{"1.5 y", time.Duration(1.5 * 365 * 24 * float64(time.Hour)), "1.5 years ago"},
		{"30 min", 30 * time.Minute, "30 minutes ago"},
		{"2 secs", 2 * time.Second, "2 seconds ago"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, display, err := TryParseTime(tt.input, testNow)
			require.NoError(t, err)
			assert.Equal(t, testNow.Add(-tt.wantDelta), got)
			assert.Equal(t, tt.wantDisplay, display)
		})
	}
}

func TestTryParseTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "soon", "3 fortnights", "one hour"} {
		_, _, err := TryParseTime(input, testNow)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseConstraints(t *testing.T) {
	tests := []struct {
		name       string
		after      string
		before     string
		wantAfter  *time.Time
		wantBefore *time.Time
		wantLabel  string
	}{
		{
			name:      "both open",
			after:     "",
			before:    "",
			wantLabel: "from the start until now",
		},
		{
			name:      "none keywords",
			after:     "none",
			before:    "none",
			wantLabel: "from the start until now",
		},
		{
			name:      "start and end keywords",
			after:     "start",
			before:    "end",
			wantLabel: "from the start until now",
		},
		{
			name:      "absolute after only",
			after:     "2020-01-08",
			before:    "",
			wantAfter: timePtr(time.Date(2020, 1, 8, 0, 0, 0, 0, time.UTC)),
			wantLabel: "from 2020-01-08 until now",
		},
		{
			name:       "absolute both",
			after:      "2020-01-08",
			before:     "2021-09-13T13:20",
			wantAfter:  timePtr(time.Date(2020, 1, 8, 0, 0, 0, 0, time.UTC)),
			wantBefore: timePtr(time.Date(2021, 9, 13, 13, 20, 0, 0, time.UTC)),
			wantLabel:  "from 2020-01-08 until 2021-09-13 13:20",
		},
		{
			name:       "relative both",
			after:      "1.5 y",
			before:     "1 week",
			wantAfter:  timePtr(testNow.Add(-time.Duration(1.5 * 365 * 24 * float64(time.Hour)))),
			wantBefore: timePtr(testNow.Add(-7 * 24 * time.Hour)),
			wantLabel:  "from 1.5 years ago until 1 week ago",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, before, label, err := ParseConstraints(tt.after, tt.before, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAfter, after)
			assert.Equal(t, tt.wantBefore, before)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestParseConstraints_Invalid(t *testing.T) {
	_, _, _, err := ParseConstraints("nonsense words", "", testNow)
	assert.Error(t, err)

	_, _, _, err = ParseConstraints("", "not a time", testNow)
	assert.Error(t, err)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
