package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceRecord represents one service/repair performed on a vehicle.
// Records belong to exactly one vehicle; deleting the vehicle deletes them.
// VendorID is a weak reference; the vendor may no longer exist, in which
// case consumers render it as "unknown".
type MaintenanceRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VehicleID   string             `json:"vehicle_id" bson:"vehicle_id"`
	Type        string             `json:"type" bson:"type"` // "oil_change", "tire_rotation", "inspection", "repair", "other"
	Date        string             `json:"date" bson:"date"` // YYYY-MM-DD, user-entered
	Cost        int64              `json:"cost" bson:"cost"` // in JPY
	VendorID    string             `json:"vendor_id,omitempty" bson:"vendor_id,omitempty"`
	Description string             `json:"description" bson:"description"`
	PerformedBy string             `json:"performed_by" bson:"performed_by"`
	Notes       string             `json:"notes" bson:"notes"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
