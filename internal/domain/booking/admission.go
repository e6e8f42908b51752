package booking

// Decision is the outcome of comparing a day's occupancy against its
// capacity limit. Rejections carry both numbers so callers can offer
// alternate dates.
type Decision struct {
	Admitted bool
	Limit    int
	Occupied int
}

// Decide admits iff occupancy is strictly below the limit. The caller
// is responsible for evaluating occupancy and limit inside a region
// serialized per (center, day); Decide itself is pure.
func Decide(occupied, limit int) Decision {
	return Decision{
		Admitted: occupied < limit,
		Limit:    limit,
		Occupied: occupied,
	}
}
