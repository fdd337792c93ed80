package services

import "testing"

func TestMeanRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no ratings", nil, 0},
		{"single rating", []int{4}, 4},
		{"even mean", []int{4, 5}, 4.5},
		{"rounded to one decimal", []int{3, 4, 4}, 3.7},
		{"all minimum", []int{1, 1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeanRating(tt.ratings); got != tt.want {
				t.Errorf("MeanRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}
