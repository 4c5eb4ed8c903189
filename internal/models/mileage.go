package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonthlyMileage is one month of odometer distance for a vehicle.
// Entries arrive either from the UI or from the MQTT odometer feed.
type MonthlyMileage struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID  string             `json:"vehicle_id" bson:"vehicle_id"`
	Month      string             `json:"month" bson:"month"` // YYYY-MM
	DistanceKm float64            `json:"distance_km" bson:"distance_km"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
