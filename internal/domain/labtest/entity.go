package labtest

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTestName   = errors.New("test name cannot be empty")
	ErrTestNameTooLong = errors.New("test name is too long (max 255 characters)")
	ErrEntryNotFound   = errors.New("pricing entry not found")
)

const MaxTestNameLength = 255

// PricingEntry is one center's pricing record for this test. Only an
// approved entry makes the test bookable at that center.
type PricingEntry struct {
	CenterID uuid.UUID
	Price    Money
	Status   PricingStatus
}

// DiagnosticTest is a bookable diagnostic procedure with a base price
// and per-center pricing entries, one per center at most.
type DiagnosticTest struct {
	id             uuid.UUID
	name           string
	description    string
	basePrice      Money
	pricingEntries []PricingEntry
	createdAt      time.Time
	updatedAt      time.Time
}

func NewDiagnosticTest(name, description string, basePrice Money) (*DiagnosticTest, error) {
	if err := validateTestName(name); err != nil {
		return nil, err
	}

	return &DiagnosticTest{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		basePrice:   basePrice,
	}, nil
}

func ReconstructDiagnosticTest(
	id uuid.UUID,
	name, description string,
	basePrice Money,
	pricingEntries []PricingEntry,
	createdAt, updatedAt time.Time,
) *DiagnosticTest {
	return &DiagnosticTest{
		id:             id,
		name:           name,
		description:    description,
		basePrice:      basePrice,
		pricingEntries: pricingEntries,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// UpsertPricingEntry replaces the entry for the center when one exists,
// appends otherwise. Center uniqueness within the list is maintained
// here; callers never append directly.
func (t *DiagnosticTest) UpsertPricingEntry(entry PricingEntry) {
	for i, e := range t.pricingEntries {
		if e.CenterID == entry.CenterID {
			t.pricingEntries[i] = entry
			return
		}
	}
	t.pricingEntries = append(t.pricingEntries, entry)
}

// RemovePricingEntry deletes the center's entry. Assignment request
// history is untouched; removal is a pricing-table operation only.
func (t *DiagnosticTest) RemovePricingEntry(centerID uuid.UUID) error {
	for i, e := range t.pricingEntries {
		if e.CenterID == centerID {
			t.pricingEntries = append(t.pricingEntries[:i], t.pricingEntries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// ApprovedEntry returns the center's entry only when it is approved.
func (t *DiagnosticTest) ApprovedEntry(centerID uuid.UUID) (PricingEntry, bool) {
	for _, e := range t.pricingEntries {
		if e.CenterID == centerID && e.Status == PricingApproved {
			return e, true
		}
	}
	return PricingEntry{}, false
}

// EntryFor returns the center's entry regardless of status.
func (t *DiagnosticTest) EntryFor(centerID uuid.UUID) (PricingEntry, bool) {
	for _, e := range t.pricingEntries {
		if e.CenterID == centerID {
			return e, true
		}
	}
	return PricingEntry{}, false
}

// PriceAt resolves the bookable price for a center: the approved
// entry's price when present, else the base price. The second return
// reports whether an approved entry exists.
func (t *DiagnosticTest) PriceAt(centerID uuid.UUID) (Money, bool) {
	if e, ok := t.ApprovedEntry(centerID); ok {
		return e.Price, true
	}
	return t.basePrice, false
}

func validateTestName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyTestName
	}
	if len(name) > MaxTestNameLength {
		return ErrTestNameTooLong
	}
	return nil
}

func (t *DiagnosticTest) ID() uuid.UUID                  { return t.id }
func (t *DiagnosticTest) Name() string                   { return t.name }
func (t *DiagnosticTest) Description() string            { return t.description }
func (t *DiagnosticTest) BasePrice() Money               { return t.basePrice }
func (t *DiagnosticTest) PricingEntries() []PricingEntry { return t.pricingEntries }
func (t *DiagnosticTest) CreatedAt() time.Time           { return t.createdAt }
func (t *DiagnosticTest) UpdatedAt() time.Time           { return t.updatedAt }
