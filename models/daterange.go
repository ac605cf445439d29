package models

import (
	"math"
	"time"
)

// DateRange is a stay between two calendar dates. Both ends are treated as
// occupied when checking for conflicts.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses inclusive boundaries: a stay ending on the day another
// begins is a conflict.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Days returns the number of whole days covered, rounding partial days up.
// The zone offsets of both ends are folded in so a DST switch inside the
// range does not add or remove a day.
func (r DateRange) Days() int {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	_, startOffset := r.Start.Zone()
	_, endOffset := r.End.Zone()
	d := r.End.Sub(r.Start) + time.Duration(endOffset-startOffset)*time.Second
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}
