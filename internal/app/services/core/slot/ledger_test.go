package slot

import (
	"medibook-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve(t *testing.T) {
	t.Run("conflict leaves ledger unchanged then a free label is appended", func(t *testing.T) {
		slots := models.SlotsBooked{"2025_5_10": {"10:00AM"}}

		slots, err := Reserve(slots, "2025_5_10", "10:00AM")
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
		assert.Equal(t, []string{"10:00AM"}, slots["2025_5_10"])

		slots, err = Reserve(slots, "2025_5_10", "11:00AM")
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00AM", "11:00AM"}, slots["2025_5_10"])
	})

	t.Run("creates missing date key", func(t *testing.T) {
		slots := models.SlotsBooked{}
		slots, err := Reserve(slots, "2025_0_1", "9:00AM")
		require.NoError(t, err)
		assert.Equal(t, []string{"9:00AM"}, slots["2025_0_1"])
	})

	t.Run("nil ledger is allocated", func(t *testing.T) {
		slots, err := Reserve(nil, "2025_0_1", "9:00AM")
		require.NoError(t, err)
		assert.Equal(t, models.SlotsBooked{"2025_0_1": {"9:00AM"}}, slots)
	})

	t.Run("same label on another date is independent", func(t *testing.T) {
		slots := models.SlotsBooked{"2025_5_10": {"10:00AM"}}
		_, err := Reserve(slots, "2025_5_11", "10:00AM")
		assert.NoError(t, err)
	})
}

func TestIsAvailable(t *testing.T) {
	slots := models.SlotsBooked{"2025_5_10": {"10:00AM"}}

	assert.False(t, IsAvailable(slots, "2025_5_10", "10:00AM"))
	assert.True(t, IsAvailable(slots, "2025_5_10", "11:00AM"))
	assert.True(t, IsAvailable(slots, "2025_5_11", "10:00AM"))
	assert.True(t, IsAvailable(nil, "2025_5_10", "10:00AM"))
}

func TestRelease(t *testing.T) {
	t.Run("removes label and keeps order", func(t *testing.T) {
		slots := models.SlotsBooked{"2025_5_10": {"9:00AM", "10:00AM", "11:00AM"}}
		assert.True(t, Release(slots, "2025_5_10", "10:00AM"))
		assert.Equal(t, []string{"9:00AM", "11:00AM"}, slots["2025_5_10"])
	})

	t.Run("drops empty date key", func(t *testing.T) {
		slots := models.SlotsBooked{"2025_5_10": {"10:00AM"}}
		assert.True(t, Release(slots, "2025_5_10", "10:00AM"))
		_, exists := slots["2025_5_10"]
		assert.False(t, exists)
	})

	t.Run("absent label is a no-op", func(t *testing.T) {
		slots := models.SlotsBooked{"2025_5_10": {"10:00AM"}}
		assert.False(t, Release(slots, "2025_5_10", "11:00AM"))
		assert.False(t, Release(slots, "2025_5_11", "10:00AM"))
		assert.False(t, Release(nil, "2025_5_11", "10:00AM"))
		assert.Equal(t, models.SlotsBooked{"2025_5_10": {"10:00AM"}}, slots)
	})

	t.Run("release then reserve again", func(t *testing.T) {
		slots := models.SlotsBooked{"2025_5_10": {"10:00AM"}}
		Release(slots, "2025_5_10", "10:00AM")
		_, err := Reserve(slots, "2025_5_10", "10:00AM")
		assert.NoError(t, err)
	})
}

func TestRebuild(t *testing.T) {
	appointments := []models.Appointment{
		{SlotDate: "2025_5_10", SlotTime: "10:00AM"},
		{SlotDate: "2025_5_10", SlotTime: "11:00AM", Cancelled: true},
		{SlotDate: "2025_5_10", SlotTime: "12:00PM", IsCompleted: true},
		{SlotDate: "2025_5_11", SlotTime: "9:00AM", Payment: true},
	}

	slots := Rebuild(appointments)

	assert.Equal(t, models.SlotsBooked{
		"2025_5_10": {"10:00AM", "12:00PM"},
		"2025_5_11": {"9:00AM"},
	}, slots)
	assert.Equal(t, models.SlotsBooked{}, Rebuild(nil))
}

func TestDateKey(t *testing.T) {
	t.Run("format uses zero based month", func(t *testing.T) {
		assert.Equal(t, "2025_5_10", FormatDateKey(time.Date(2025, time.June, 10, 15, 0, 0, 0, time.UTC)))
		assert.Equal(t, "2025_0_1", FormatDateKey(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("parse round trips", func(t *testing.T) {
		parsed, err := ParseDateKey("2025_11_31", nil)
		require.NoError(t, err)
		assert.Equal(t, time.December, parsed.Month())
		assert.Equal(t, "2025_11_31", FormatDateKey(parsed))
	})

	t.Run("parse rejects malformed and impossible keys", func(t *testing.T) {
		for _, key := range []string{"2025-06-10", "2025_12_1", "2025_05_10", "2025_1_30", "", "2025_5"} {
			_, err := ParseDateKey(key, nil)
			assert.Error(t, err, key)
		}
	})
}
