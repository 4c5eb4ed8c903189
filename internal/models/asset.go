package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnershipType describes how an asset was acquired.
type OwnershipType string

const (
	OwnershipOwned  OwnershipType = "owned"
	OwnershipLeased OwnershipType = "leased"
	OwnershipRental OwnershipType = "rental"
)

// AssetStatus represents the operational state of an asset.
type AssetStatus string

const (
	StatusActive      AssetStatus = "active"
	StatusMaintenance AssetStatus = "maintenance"
	StatusRetired     AssetStatus = "retired"
)

// TireType is the tire set currently mounted on a vehicle.
type TireType string

const (
	TireSummer TireType = "summer"
	TireWinter TireType = "winter"
)

// Lease holds the contract metadata for a leased asset.
// Present only when the asset's ownership type is "leased".
// ContractStart and ContractEnd are user-entered YYYY-MM-DD dates.
type Lease struct {
	Company       string `bson:"company" json:"company"`
	MonthlyCost   int64  `bson:"monthly_cost" json:"monthly_cost"` // in JPY
	ContractStart string `bson:"contract_start" json:"contract_start"`
	ContractEnd   string `bson:"contract_end" json:"contract_end"`
	ContactPerson string `bson:"contact_person" json:"contact_person"`
	Phone         string `bson:"phone" json:"phone"`
}

// Vehicle represents a fleet vehicle.
// All deadline dates are optional user-entered YYYY-MM-DD strings; an empty or
// unparseable date simply produces no warning for that dimension.
type Vehicle struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number          string             `bson:"number" json:"number"` // registration plate
	Make            string             `bson:"make" json:"make"`
	Model           string             `bson:"model" json:"model"`
	Year            int                `bson:"year" json:"year"`
	OwnershipType   OwnershipType      `bson:"ownership_type" json:"ownership_type"`
	Status          AssetStatus        `bson:"status" json:"status"`
	InspectionDate  string             `bson:"inspection_date,omitempty" json:"inspection_date,omitempty"`
	MaintenanceDate string             `bson:"maintenance_date,omitempty" json:"maintenance_date,omitempty"`
	InsuranceDate   string             `bson:"insurance_date,omitempty" json:"insurance_date,omitempty"`
	TireChangeDate  string             `bson:"tire_change_date,omitempty" json:"tire_change_date,omitempty"`
	TireType        TireType           `bson:"tire_type,omitempty" json:"tire_type,omitempty"`
	Lease           *Lease             `bson:"lease,omitempty" json:"lease,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// PC represents a company computer.
type PC struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Maker              string             `bson:"maker" json:"maker"`
	Model              string             `bson:"model" json:"model"`
	AssignedTo         string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	OwnershipType      OwnershipType      `bson:"ownership_type" json:"ownership_type"`
	Status             AssetStatus        `bson:"status" json:"status"`
	WarrantyExpiration string             `bson:"warranty_expiration,omitempty" json:"warranty_expiration,omitempty"`
	Lease              *Lease             `bson:"lease,omitempty" json:"lease,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// GeneralAsset represents any other tracked equipment (furniture, tools,
// office machines).
type GeneralAsset struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Category           string             `bson:"category" json:"category"`
	OwnershipType      OwnershipType      `bson:"ownership_type" json:"ownership_type"`
	Status             AssetStatus        `bson:"status" json:"status"`
	WarrantyExpiration string             `bson:"warranty_expiration,omitempty" json:"warranty_expiration,omitempty"`
	Lease              *Lease             `bson:"lease,omitempty" json:"lease,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsLeased reports whether the vehicle carries an active lease contract.
func (v *Vehicle) IsLeased() bool {
	return v.OwnershipType == OwnershipLeased && v.Lease != nil
}

// IsLeased reports whether the PC carries an active lease contract.
func (p *PC) IsLeased() bool {
	return p.OwnershipType == OwnershipLeased && p.Lease != nil
}

// IsLeased reports whether the asset carries an active lease contract.
func (a *GeneralAsset) IsLeased() bool {
	return a.OwnershipType == OwnershipLeased && a.Lease != nil
}
