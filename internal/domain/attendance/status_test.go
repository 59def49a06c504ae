package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Status
	}{
		{"Present", StatusPresent},
		{"present", StatusPresent},
		{"PRESENT", StatusPresent},
		{"  late  ", StatusLate},
		{"Super Late", StatusSuperLate},
		{"super_late", StatusSuperLate},
		{"SUPER-LATE", StatusSuperLate},
		{"superlate", StatusSuperLate},
		{"super  late", StatusSuperLate},
		{"Absent", StatusAbsent},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStatus(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "on time", "vacation", "late!"} {
		_, err := ParseStatus(in)
		assert.Error(t, err, in)
	}
}

func TestEventSource_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, SourceGPSPunch.Valid())
	assert.True(t, SourceManualAdmin.Valid())
	assert.True(t, SourceDeviceHardware.Valid())
	assert.False(t, EventSource("mobile").Valid())
	assert.False(t, EventSource("").Valid())
}

func TestDateKey(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "EMP-1|2024-03-11", DateKey("EMP-1", date))

	// The key depends only on the calendar date, never the clock time.
	assert.Equal(t, DateKey("EMP-1", date), DateKey("EMP-1", date.Add(5*time.Hour)))
}
