package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor represents a maintenance shop or service provider.
// WorkCount is not stored: it is derived from maintenance records at query
// time (see analytics.VendorWorkCounts), so deleting a vendor never needs to
// touch the records that reference it.
type Vendor struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	ContactPerson string             `json:"contact_person" bson:"contact_person"`
	Phone         string             `json:"phone" bson:"phone"`
	Email         string             `json:"email" bson:"email"`
	Address       string             `json:"address" bson:"address"`
	Rating        int                `json:"rating" bson:"rating"` // 1-5
	Notes         string             `json:"notes" bson:"notes"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`

	// WorkCount is populated by handlers from the derived aggregate.
	WorkCount int `json:"work_count" bson:"-"`
}
