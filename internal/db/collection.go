package db

import (
	"context"

	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) error
	FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// PCCollection defines the interface for PC data operations.
type PCCollection interface {
	InsertPC(ctx context.Context, pc models.PC) error
	FindPCs(ctx context.Context, filter bson.M) ([]models.PC, error)
	FindPCByID(ctx context.Context, id string) (*models.PC, error)
	UpdatePC(ctx context.Context, id string, pc models.PC) error
	DeletePC(ctx context.Context, id string) error
}

// AssetCollection defines the interface for general asset data operations.
type AssetCollection interface {
	InsertAsset(ctx context.Context, asset models.GeneralAsset) error
	FindAssets(ctx context.Context, filter bson.M) ([]models.GeneralAsset, error)
	FindAssetByID(ctx context.Context, id string) (*models.GeneralAsset, error)
	UpdateAsset(ctx context.Context, id string, asset models.GeneralAsset) error
	DeleteAsset(ctx context.Context, id string) error
}

// VendorCollection defines the interface for vendor data operations.
// Vendor deletion never cascades to maintenance records: the records keep
// their vendor_id and consumers resolve a missing vendor as "unknown".
type VendorCollection interface {
	InsertVendor(ctx context.Context, vendor models.Vendor) error
	FindVendors(ctx context.Context, filter bson.M) ([]models.Vendor, error)
	FindVendorByID(ctx context.Context, id string) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id string, vendor models.Vendor) error
	DeleteVendor(ctx context.Context, id string) error
}

// MaintenanceCollection defines the interface for maintenance record
// operations. Records are owned by their vehicle and are removed with it.
type MaintenanceCollection interface {
	InsertRecord(ctx context.Context, record models.MaintenanceRecord) error
	FindRecords(ctx context.Context, filter bson.M) ([]models.MaintenanceRecord, error)
	FindRecordByID(ctx context.Context, id string) (*models.MaintenanceRecord, error)
	UpdateRecord(ctx context.Context, id string, record models.MaintenanceRecord) error
	DeleteRecord(ctx context.Context, id string) error
}

// MileageCollection defines the interface for monthly mileage operations.
type MileageCollection interface {
	UpsertMileage(ctx context.Context, mileage models.MonthlyMileage) error
	FindMileage(ctx context.Context, filter bson.M) ([]models.MonthlyMileage, error)
}
