package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// GeoPoint is a geographic point location. On the wire it is the textual
// "POINT(lon lat)" form; in MongoDB it is stored as a GeoJSON Point so the
// 2dsphere nearby query can use it.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

type geoJSONPoint struct {
	Type        string     `bson:"type"`
	Coordinates [2]float64 `bson:"coordinates"`
}

// ParsePoint parses the textual point format "POINT(lon lat)".
func ParsePoint(s string) (GeoPoint, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "POINT(") || !strings.HasSuffix(trimmed, ")") {
		return GeoPoint{}, fmt.Errorf("invalid point %q", s)
	}
	inner := trimmed[len("POINT(") : len(trimmed)-1]
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return GeoPoint{}, fmt.Errorf("invalid point %q", s)
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("invalid longitude in %q", s)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("invalid latitude in %q", s)
	}
	return GeoPoint{Longitude: lon, Latitude: lat}, nil
}

// String renders the point in the textual "POINT(lon lat)" form.
func (p GeoPoint) String() string {
	return "POINT(" +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64) + " " +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64) + ")"
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either the "POINT(lon lat)" string or the
// coordinate-pair object form {"longitude": ..., "latitude": ...}.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParsePoint(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var pair struct {
		Longitude *float64 `json:"longitude"`
		Latitude  *float64 `json:"latitude"`
	}
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid point: %w", err)
	}
	if pair.Longitude == nil || pair.Latitude == nil {
		return fmt.Errorf("point object requires longitude and latitude")
	}
	p.Longitude = *pair.Longitude
	p.Latitude = *pair.Latitude
	return nil
}

func (p GeoPoint) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(geoJSONPoint{
		Type:        "Point",
		Coordinates: [2]float64{p.Longitude, p.Latitude},
	})
}

func (p *GeoPoint) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	var doc geoJSONPoint
	if err := raw.Unmarshal(&doc); err != nil {
		return err
	}
	p.Longitude = doc.Coordinates[0]
	p.Latitude = doc.Coordinates[1]
	return nil
}

// GeoJSON returns the BSON document form used in geo query filters.
func (p GeoPoint) GeoJSON() bson.M {
	return bson.M{"type": "Point", "coordinates": []float64{p.Longitude, p.Latitude}}
}
