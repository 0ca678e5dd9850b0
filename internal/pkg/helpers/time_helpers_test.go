package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "09:00", want: Clock{Hour: 9}},
		{in: "23:59", want: Clock{Hour: 23, Minute: 59}},
		{in: "00:30", want: Clock{Minute: 30}},
		{in: "24:00", wantErr: true},
		{in: "9am", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClock_On(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	day := time.Date(2025, time.January, 6, 0, 0, 0, 0, ist)

	got := Clock{Hour: 14, Minute: 15}.On(day)
	assert.Equal(t, time.Date(2025, time.January, 6, 14, 15, 0, 0, ist), got)
	assert.Equal(t, 14*60+15, Clock{Hour: 14, Minute: 15}.Minutes())
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-02-28", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("2025-02-30", time.UTC)
	assert.Error(t, err)
	_, err = ParseDate("28/02/2025", time.UTC)
	assert.Error(t, err)
}

func TestEachDay(t *testing.T) {
	from := time.Date(2024, time.February, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	var days []int
	EachDay(from, to, func(d time.Time) { days = append(days, d.Day()) })
	assert.Equal(t, []int{27, 28, 29, 1, 2}, days)

	var none int
	EachDay(to, from, func(time.Time) { none++ })
	assert.Zero(t, none)
}

func TestEqualTimePtr(t *testing.T) {
	a := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	b := a.In(time.FixedZone("IST", 5*3600+30*60))

	assert.True(t, EqualTimePtr(nil, nil))
	assert.True(t, EqualTimePtr(&a, &b))
	assert.False(t, EqualTimePtr(&a, nil))
	assert.False(t, EqualTimePtr(nil, &b))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 10*time.Minute, ParseDuration("10m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
