//go:build unit

package center_test

import (
	"testing"

	"medslot/internal/domain/center"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewCenter(t *testing.T) {
	cases := []struct {
		name         string
		centerName   string
		defaultSlots *int
		errIs        error
	}{
		{"valid with default slots", "City Lab", intPtr(20), nil},
		{"valid without default slots", "City Lab", nil, nil},
		{"explicit zero slots", "City Lab", intPtr(0), nil},
		{"empty name", "  ", intPtr(10), center.ErrEmptyCenterName},
		{"slots above maximum", "City Lab", intPtr(101), center.ErrSlotsOutOfRange},
		{"negative slots", "City Lab", intPtr(-1), center.ErrSlotsOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := center.NewCenter(tc.centerName, "12 Main St", tc.defaultSlots)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, c.ID())
		})
	}
}

func TestCapacityResolution(t *testing.T) {
	testID := uuid.New()
	otherTestID := uuid.New()

	t.Run("unset default falls back to constant", func(t *testing.T) {
		c, err := center.NewCenter("City Lab", "", nil)
		require.NoError(t, err)
		assert.Equal(t, center.DefaultDailySlots, c.CapacityFor(&testID))
		assert.Equal(t, center.DefaultDailySlots, c.CapacityFor(nil))
	})

	t.Run("configured default wins over constant", func(t *testing.T) {
		c, err := center.NewCenter("City Lab", "", intPtr(25))
		require.NoError(t, err)
		assert.Equal(t, 25, c.CapacityFor(&testID))
	})

	t.Run("explicit zero default means no bookings", func(t *testing.T) {
		c, err := center.NewCenter("City Lab", "", intPtr(0))
		require.NoError(t, err)
		assert.Equal(t, 0, c.CapacityFor(&testID))
	})

	t.Run("override wins over default for its test only", func(t *testing.T) {
		c, err := center.NewCenter("City Lab", "", intPtr(5))
		require.NoError(t, err)
		require.NoError(t, c.SetSlotOverride(testID, 1))

		assert.Equal(t, 1, c.CapacityFor(&testID))
		assert.Equal(t, 5, c.CapacityFor(&otherTestID))
		assert.Equal(t, 5, c.CapacityFor(nil))
	})
}

func TestSetSlotOverride(t *testing.T) {
	testID := uuid.New()
	c, err := center.NewCenter("City Lab", "", nil)
	require.NoError(t, err)

	t.Run("upsert replaces instead of duplicating", func(t *testing.T) {
		require.NoError(t, c.SetSlotOverride(testID, 3))
		require.NoError(t, c.SetSlotOverride(testID, 7))

		assert.Len(t, c.Overrides(), 1)
		assert.Equal(t, 7, c.CapacityFor(&testID))
	})

	t.Run("out of range is rejected not clamped", func(t *testing.T) {
		assert.ErrorIs(t, c.SetSlotOverride(testID, 101), center.ErrSlotsOutOfRange)
		assert.ErrorIs(t, c.SetSlotOverride(testID, -1), center.ErrSlotsOutOfRange)
		assert.Equal(t, 7, c.CapacityFor(&testID), "failed upsert leaves the old value")
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		assert.NoError(t, c.SetSlotOverride(testID, 0))
		assert.NoError(t, c.SetSlotOverride(testID, 100))
	})
}
