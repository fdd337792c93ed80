package models

import (
	"encoding/json"
	"testing"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input   string
		want    GeoPoint
		wantErr bool
	}{
		{"POINT(121.0244 14.5547)", GeoPoint{Longitude: 121.0244, Latitude: 14.5547}, false},
		{"POINT(-122.4194 37.7749)", GeoPoint{Longitude: -122.4194, Latitude: 37.7749}, false},
		{"  POINT(0 0)  ", GeoPoint{}, false},
		{"POINT(121.0244)", GeoPoint{}, true},
		{"POINT(a b)", GeoPoint{}, true},
		{"121.0244 14.5547", GeoPoint{}, true},
		{"", GeoPoint{}, true},
	}

	for _, tt := range tests {
		got, err := ParsePoint(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePoint(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestGeoPointStringRoundTrip(t *testing.T) {
	original := GeoPoint{Longitude: 121.0244, Latitude: 14.5547}

	parsed, err := ParsePoint(original.String())
	if err != nil {
		t.Fatalf("ParsePoint(%q) returned error: %v", original.String(), err)
	}
	if parsed != original {
		t.Errorf("round trip = %+v, want %+v", parsed, original)
	}
}

func TestGeoPointJSON(t *testing.T) {
	p := GeoPoint{Longitude: 121.0244, Latitude: 14.5547}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `"POINT(121.0244 14.5547)"` {
		t.Errorf("Marshal = %s, want %q", data, "POINT(121.0244 14.5547)")
	}

	var fromString GeoPoint
	if err := json.Unmarshal(data, &fromString); err != nil {
		t.Fatalf("Unmarshal string form returned error: %v", err)
	}
	if fromString != p {
		t.Errorf("Unmarshal string form = %+v, want %+v", fromString, p)
	}

	var fromObject GeoPoint
	if err := json.Unmarshal([]byte(`{"longitude":121.0244,"latitude":14.5547}`), &fromObject); err != nil {
		t.Fatalf("Unmarshal object form returned error: %v", err)
	}
	if fromObject != p {
		t.Errorf("Unmarshal object form = %+v, want %+v", fromObject, p)
	}

	var bad GeoPoint
	if err := json.Unmarshal([]byte(`{"longitude":121.0244}`), &bad); err == nil {
		t.Error("Unmarshal with missing latitude should fail")
	}
	if err := json.Unmarshal([]byte(`"not a point"`), &bad); err == nil {
		t.Error("Unmarshal of malformed string should fail")
	}
}
