package services

import "testing"

func TestAllowedImageName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"pothole.jpg", true},
		{"pothole.JPEG", true},
		{"after.png", true},
		{"anim.gif", true},
		{"modern.webp", true},
		{"report.pdf", false},
		{"script.sh", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := AllowedImageName(tt.name); got != tt.want {
			t.Errorf("AllowedImageName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
