package domain

// Sort directions.
const (
	Ascending  = "ascending"
	Descending = "descending"
)

// SortSpec selects a sort key and direction. An empty key means the input
// order is preserved.
type SortSpec struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// Descending reports whether the spec sorts in descending order.
func (s SortSpec) IsDescending() bool {
	return s.Direction == Descending
}

// Toggle returns the spec that results from requesting a sort on key:
// repeating the current ascending key flips to descending, anything else
// resets to ascending on the requested key.
func (s SortSpec) Toggle(key string) SortSpec {
	if s.Key == key && s.Direction == Ascending {
		return SortSpec{Key: key, Direction: Descending}
	}
	return SortSpec{Key: key, Direction: Ascending}
}
