//go:build unit

package labtest_test

import (
	"testing"

	"medslot/internal/domain/labtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, cents int64) labtest.Money {
	t.Helper()
	m, err := labtest.NewMoney(cents)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	_, err := labtest.NewMoney(-1)
	assert.ErrorIs(t, err, labtest.ErrNegativePrice)

	m, err := labtest.NewMoney(0)
	assert.NoError(t, err)
	assert.True(t, m.IsZero())
}

func TestPricingEntries(t *testing.T) {
	centerID := uuid.New()
	otherCenterID := uuid.New()

	newTest := func(t *testing.T) *labtest.DiagnosticTest {
		t.Helper()
		dt, err := labtest.NewDiagnosticTest("Lipid Panel", "", mustMoney(t, 3000))
		require.NoError(t, err)
		return dt
	}

	t.Run("upsert never duplicates a center", func(t *testing.T) {
		dt := newTest(t)
		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: centerID, Price: mustMoney(t, 4000), Status: labtest.PricingPending})
		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: centerID, Price: mustMoney(t, 4500), Status: labtest.PricingApproved})

		assert.Len(t, dt.PricingEntries(), 1)
		entry, ok := dt.EntryFor(centerID)
		require.True(t, ok)
		assert.Equal(t, int64(4500), entry.Price.Cents())
		assert.Equal(t, labtest.PricingApproved, entry.Status)
	})

	t.Run("approved entry lookup ignores pending and other centers", func(t *testing.T) {
		dt := newTest(t)
		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: centerID, Price: mustMoney(t, 4000), Status: labtest.PricingPending})
		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: otherCenterID, Price: mustMoney(t, 5000), Status: labtest.PricingApproved})

		_, ok := dt.ApprovedEntry(centerID)
		assert.False(t, ok)

		entry, ok := dt.ApprovedEntry(otherCenterID)
		require.True(t, ok)
		assert.Equal(t, int64(5000), entry.Price.Cents())
	})

	t.Run("price resolution falls back to base price", func(t *testing.T) {
		dt := newTest(t)
		price, approved := dt.PriceAt(centerID)
		assert.False(t, approved)
		assert.Equal(t, int64(3000), price.Cents())

		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: centerID, Price: mustMoney(t, 4200), Status: labtest.PricingApproved})
		price, approved = dt.PriceAt(centerID)
		assert.True(t, approved)
		assert.Equal(t, int64(4200), price.Cents())
	})

	t.Run("remove deletes only the named center", func(t *testing.T) {
		dt := newTest(t)
		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: centerID, Price: mustMoney(t, 4000), Status: labtest.PricingApproved})
		dt.UpsertPricingEntry(labtest.PricingEntry{CenterID: otherCenterID, Price: mustMoney(t, 5000), Status: labtest.PricingApproved})

		require.NoError(t, dt.RemovePricingEntry(centerID))
		assert.Len(t, dt.PricingEntries(), 1)

		assert.ErrorIs(t, dt.RemovePricingEntry(centerID), labtest.ErrEntryNotFound)
	})
}
