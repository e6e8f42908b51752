package center

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCenterName   = errors.New("center name cannot be empty")
	ErrCenterNameTooLong = errors.New("center name is too long (max 255 characters)")
	ErrSlotsOutOfRange   = errors.New("daily slots must be between 0 and 100")
)

const (
	MaxCenterNameLength = 255

	// DefaultDailySlots is the fallback capacity for centers
	// that never had their default configured.
	DefaultDailySlots = 10

	// MaxDailySlots bounds any slot setting, default or override.
	MaxDailySlots = 100
)

// SlotOverride pins the daily capacity for one test at this center,
// replacing the center-wide default for that test only.
type SlotOverride struct {
	TestID uuid.UUID
	Slots  int
}

type Center struct {
	id           uuid.UUID
	name         string
	address      string
	defaultSlots *int
	overrides    []SlotOverride
	createdAt    time.Time
	updatedAt    time.Time
}

// NewCenter creates a center. A nil defaultSlots leaves the daily
// default unset, so capacity resolution falls back to DefaultDailySlots.
func NewCenter(name, address string, defaultSlots *int) (*Center, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if defaultSlots != nil {
		if err := ValidateSlots(*defaultSlots); err != nil {
			return nil, err
		}
	}

	return &Center{
		id:           uuid.New(),
		name:         strings.TrimSpace(name),
		address:      strings.TrimSpace(address),
		defaultSlots: defaultSlots,
	}, nil
}

func ReconstructCenter(
	id uuid.UUID,
	name, address string,
	defaultSlots *int,
	overrides []SlotOverride,
	createdAt, updatedAt time.Time,
) *Center {
	return &Center{
		id:           id,
		name:         name,
		address:      address,
		defaultSlots: defaultSlots,
		overrides:    overrides,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// CapacityFor resolves the daily slot limit for a test at this center:
// the test's override when present, else the center default, else
// DefaultDailySlots when no default was ever configured. A configured
// default of zero means the center takes no bookings by default.
func (c *Center) CapacityFor(testID *uuid.UUID) int {
	if testID != nil {
		if o, ok := c.overrideFor(*testID); ok {
			return o.Slots
		}
	}
	if c.defaultSlots != nil {
		return *c.defaultSlots
	}
	return DefaultDailySlots
}

// SetSlotOverride upserts the per-test override: replaces an existing
// entry for the test, appends otherwise. Never produces duplicates.
func (c *Center) SetSlotOverride(testID uuid.UUID, slots int) error {
	if err := ValidateSlots(slots); err != nil {
		return err
	}

	for i, o := range c.overrides {
		if o.TestID == testID {
			c.overrides[i].Slots = slots
			return nil
		}
	}
	c.overrides = append(c.overrides, SlotOverride{TestID: testID, Slots: slots})
	return nil
}

func (c *Center) overrideFor(testID uuid.UUID) (SlotOverride, bool) {
	for _, o := range c.overrides {
		if o.TestID == testID {
			return o, true
		}
	}
	return SlotOverride{}, false
}

// ValidateSlots rejects out-of-range slot counts instead of clamping them.
func ValidateSlots(slots int) error {
	if slots < 0 || slots > MaxDailySlots {
		return ErrSlotsOutOfRange
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCenterName
	}
	if len(name) > MaxCenterNameLength {
		return ErrCenterNameTooLong
	}
	return nil
}

func (c *Center) ID() uuid.UUID             { return c.id }
func (c *Center) Name() string              { return c.name }
func (c *Center) Address() string           { return c.address }
func (c *Center) DefaultSlots() *int        { return c.defaultSlots }
func (c *Center) Overrides() []SlotOverride { return c.overrides }
func (c *Center) CreatedAt() time.Time      { return c.createdAt }
func (c *Center) UpdatedAt() time.Time      { return c.updatedAt }
