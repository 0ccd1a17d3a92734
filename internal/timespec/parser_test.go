package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-29")
	require.NoError(t, err)
	assert.Equal(t, time.October, d.Month())

	for _, bad := range []string{"", "29/10/2025", "2025-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "14:30", want: 14*time.Hour + 30*time.Minute},
		{in: "00:00", want: 0},
		{in: "9:05", want: 9*time.Hour + 5*time.Minute},
		{in: "24:00", wantErr: true},
		{in: "14:60", wantErr: true},
		{in: "2pm", wantErr: true},
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

func TestParseSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		s, err := ParseSlot("2025-10-29", "14:00", "15:30")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Minute, s.Duration())
		assert.InDelta(t, 1.5, s.Hours(), 1e-9)
		assert.Equal(t, "2025-10-29", s.DateString())
		assert.Equal(t, "14:00", s.StartString())
		assert.Equal(t, "15:30", s.EndString())
	})

	t.Run("exactly thirty minutes", func(t *testing.T) {
		_, err := ParseSlot("2025-10-29", "9:00", "9:30")
		assert.NoError(t, err)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := ParseSlot("2025-10-29", "15:00", "14:00")
		assert.ErrorContains(t, err, "--end must be after --start")
	})

	t.Run("equal times", func(t *testing.T) {
		_, err := ParseSlot("2025-10-29", "15:00", "15:00")
		assert.ErrorContains(t, err, "--end must be after --start")
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ParseSlot("2025-10-29", "15:00", "15:20")
		assert.ErrorContains(t, err, "at least 30 minutes")
	})

	t.Run("bad date names the flag", func(t *testing.T) {
		_, err := ParseSlot("29-10-2025", "15:00", "16:00")
		assert.ErrorContains(t, err, "--date")
	})

	t.Run("starts at", func(t *testing.T) {
		s, err := ParseSlot("2025-10-29", "14:15", "15:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 10, 29, 14, 15, 0, 0, time.UTC), s.StartsAt(time.UTC))
	})
}
