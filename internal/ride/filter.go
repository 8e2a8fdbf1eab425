package ride

// LongRideMinKm is the distance threshold for the "long rides" toggle.
const LongRideMinKm = 10

// FilterAll is the month filter value meaning "no month restriction".
const FilterAll = "all"

// Filter narrows a ride collection. Active criteria combine with logical
// AND and are commutative: the result is the same regardless of the order
// they were set.
type Filter struct {
	// Month restricts to a single "YYYY-MM" key. "" and "all" match
	// every ride.
	Month string `json:"month,omitempty"`

	// LongRidesOnly keeps rides of at least LongRideMinKm kilometers.
	LongRidesOnly bool `json:"longRidesOnly,omitempty"`

	// PeriodKey restricts to the "YYYY-MM" key chosen by clicking an
	// aggregate. "" means no selection.
	PeriodKey string `json:"periodKey,omitempty"`
}

// Match reports whether the ride passes every active criterion.
func (f Filter) Match(r Ride) bool {
	if f.Month != "" && f.Month != FilterAll && r.MonthKey() != f.Month {
		return false
	}
	if f.LongRidesOnly && r.Distance < LongRideMinKm {
		return false
	}
	if f.PeriodKey != "" && r.MonthKey() != f.PeriodKey {
		return false
	}
	return true
}

// Apply returns the rides passing the filter, preserving source order.
// The input is never mutated.
func (f Filter) Apply(rides []Ride) []Ride {
	if f == (Filter{}) {
		out := make([]Ride, len(rides))
		copy(out, rides)
		return out
	}
	out := make([]Ride, 0, len(rides))
	for _, r := range rides {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// TogglePeriod selects the given period key, or clears the selection when
// the same key is already active.
func (f *Filter) TogglePeriod(key string) {
	if f.PeriodKey == key {
		f.PeriodKey = ""
		return
	}
	f.PeriodKey = key
}
