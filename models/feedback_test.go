package models

import "testing"

func TestValidRating(t *testing.T) {
	for r := 1; r <= 5; r++ {
		if !ValidRating(r) {
			t.Errorf("ValidRating(%d) = false, want true", r)
		}
	}
	for _, r := range []int{0, 6, -1, 100} {
		if ValidRating(r) {
			t.Errorf("ValidRating(%d) = true, want false", r)
		}
	}
}
