package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// Trust is the reputation snapshot for a participant. The scoring formula
// lives outside this service; we only read the result.
type Trust struct {
	Score int    `bson:"score" json:"score"`
	Level string `bson:"level" json:"level"` // e.g. "new", "trusted"
}

// Verticals supported by the marketplace.
const (
	VerticalTour = "tour" // guided-tour bookings
	VerticalStay = "stay" // home-stay bookings
)
