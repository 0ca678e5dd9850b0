package helpers

import "time"

// TimePtr returns a pointer to a copy of t.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// Int64Ptr returns a pointer to a copy of i.
func Int64Ptr(i int64) *int64 {
	return &i
}

// EqualTimePtr compares two nullable timestamps. Two nils are equal.
func EqualTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
