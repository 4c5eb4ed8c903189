package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store bundles the portal's MongoDB collections and implements every
// collection interface. Cross-collection behavior lives here: deleting a
// vehicle cascades to its maintenance records and mileage entries.
type Store struct {
	Vehicles    *mongo.Collection
	PCs         *mongo.Collection
	Assets      *mongo.Collection
	Vendors     *mongo.Collection
	Maintenance *mongo.Collection
	Mileage     *mongo.Collection
}

// NewStore wires a Store onto the given database.
func NewStore(database *mongo.Database) *Store {
	return &Store{
		Vehicles:    database.Collection("vehicles"),
		PCs:         database.Collection("pcs"),
		Assets:      database.Collection("assets"),
		Vendors:     database.Collection("vendors"),
		Maintenance: database.Collection("maintenance"),
		Mileage:     database.Collection("mileage"),
	}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	if coll == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	if coll == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	var out T
	err = coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&out)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &out, nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	if coll == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	if coll == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	result, err := coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

// InsertVehicle inserts a vehicle record into the collection.
func (s *Store) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	if s.Vehicles == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	_, err := s.Vehicles.InsertOne(ctx, vehicle)
	return err
}

// FindVehicles queries vehicle records from the collection.
func (s *Store) FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	return findAll[models.Vehicle](ctx, s.Vehicles, filter)
}

// FindVehicleByID finds a vehicle by its ID.
func (s *Store) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	return findByID[models.Vehicle](ctx, s.Vehicles, id)
}

// UpdateVehicle updates a vehicle by its ID.
func (s *Store) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	vehicle.UpdatedAt = time.Now()
	return updateByID(ctx, s.Vehicles, id, vehicle)
}

// DeleteVehicle deletes a vehicle and everything it owns: its maintenance
// records and its mileage entries go with it.
func (s *Store) DeleteVehicle(ctx context.Context, id string) error {
	if err := deleteByID(ctx, s.Vehicles, id); err != nil {
		return err
	}
	if s.Maintenance != nil {
		if _, err := s.Maintenance.DeleteMany(ctx, bson.M{"vehicle_id": id}); err != nil {
			return fmt.Errorf("cascade maintenance delete: %w", err)
		}
	}
	if s.Mileage != nil {
		if _, err := s.Mileage.DeleteMany(ctx, bson.M{"vehicle_id": id}); err != nil {
			return fmt.Errorf("cascade mileage delete: %w", err)
		}
	}
	return nil
}

// InsertPC inserts a PC record into the collection.
func (s *Store) InsertPC(ctx context.Context, pc models.PC) error {
	if s.PCs == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	pc.CreatedAt = time.Now()
	pc.UpdatedAt = time.Now()
	_, err := s.PCs.InsertOne(ctx, pc)
	return err
}

// FindPCs queries PC records from the collection.
func (s *Store) FindPCs(ctx context.Context, filter bson.M) ([]models.PC, error) {
	return findAll[models.PC](ctx, s.PCs, filter)
}

// FindPCByID finds a PC by its ID.
func (s *Store) FindPCByID(ctx context.Context, id string) (*models.PC, error) {
	return findByID[models.PC](ctx, s.PCs, id)
}

// UpdatePC updates a PC by its ID.
func (s *Store) UpdatePC(ctx context.Context, id string, pc models.PC) error {
	pc.UpdatedAt = time.Now()
	return updateByID(ctx, s.PCs, id, pc)
}

// DeletePC deletes a PC by its ID.
func (s *Store) DeletePC(ctx context.Context, id string) error {
	return deleteByID(ctx, s.PCs, id)
}

// InsertAsset inserts a general asset record into the collection.
func (s *Store) InsertAsset(ctx context.Context, asset models.GeneralAsset) error {
	if s.Assets == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = time.Now()
	_, err := s.Assets.InsertOne(ctx, asset)
	return err
}

// FindAssets queries general asset records from the collection.
func (s *Store) FindAssets(ctx context.Context, filter bson.M) ([]models.GeneralAsset, error) {
	return findAll[models.GeneralAsset](ctx, s.Assets, filter)
}

// FindAssetByID finds a general asset by its ID.
func (s *Store) FindAssetByID(ctx context.Context, id string) (*models.GeneralAsset, error) {
	return findByID[models.GeneralAsset](ctx, s.Assets, id)
}

// UpdateAsset updates a general asset by its ID.
func (s *Store) UpdateAsset(ctx context.Context, id string, asset models.GeneralAsset) error {
	asset.UpdatedAt = time.Now()
	return updateByID(ctx, s.Assets, id, asset)
}

// DeleteAsset deletes a general asset by its ID.
func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	return deleteByID(ctx, s.Assets, id)
}

// InsertVendor inserts a vendor record into the collection.
func (s *Store) InsertVendor(ctx context.Context, vendor models.Vendor) error {
	if s.Vendors == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	vendor.CreatedAt = time.Now()
	vendor.UpdatedAt = time.Now()
	_, err := s.Vendors.InsertOne(ctx, vendor)
	return err
}

// FindVendors queries vendor records from the collection.
func (s *Store) FindVendors(ctx context.Context, filter bson.M) ([]models.Vendor, error) {
	return findAll[models.Vendor](ctx, s.Vendors, filter)
}

// FindVendorByID finds a vendor by its ID.
func (s *Store) FindVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	return findByID[models.Vendor](ctx, s.Vendors, id)
}

// UpdateVendor updates a vendor by its ID.
func (s *Store) UpdateVendor(ctx context.Context, id string, vendor models.Vendor) error {
	vendor.UpdatedAt = time.Now()
	return updateByID(ctx, s.Vendors, id, vendor)
}

// DeleteVendor deletes a vendor by its ID. Maintenance records referencing
// it are left untouched.
func (s *Store) DeleteVendor(ctx context.Context, id string) error {
	return deleteByID(ctx, s.Vendors, id)
}

// InsertRecord inserts a maintenance record into the collection.
func (s *Store) InsertRecord(ctx context.Context, record models.MaintenanceRecord) error {
	if s.Maintenance == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()
	_, err := s.Maintenance.InsertOne(ctx, record)
	return err
}

// FindRecords queries maintenance records from the collection.
func (s *Store) FindRecords(ctx context.Context, filter bson.M) ([]models.MaintenanceRecord, error) {
	return findAll[models.MaintenanceRecord](ctx, s.Maintenance, filter)
}

// FindRecordByID finds a maintenance record by its ID.
func (s *Store) FindRecordByID(ctx context.Context, id string) (*models.MaintenanceRecord, error) {
	return findByID[models.MaintenanceRecord](ctx, s.Maintenance, id)
}

// UpdateRecord updates a maintenance record by its ID.
func (s *Store) UpdateRecord(ctx context.Context, id string, record models.MaintenanceRecord) error {
	record.UpdatedAt = time.Now()
	return updateByID(ctx, s.Maintenance, id, record)
}

// DeleteRecord deletes a maintenance record by its ID.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	return deleteByID(ctx, s.Maintenance, id)
}

// UpsertMileage inserts or replaces the mileage entry for a vehicle-month.
func (s *Store) UpsertMileage(ctx context.Context, mileage models.MonthlyMileage) error {
	if s.Mileage == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	now := time.Now()
	mileage.UpdatedAt = now
	_, err := s.Mileage.UpdateOne(
		ctx,
		bson.M{"vehicle_id": mileage.VehicleID, "month": mileage.Month},
		bson.M{
			"$set":         bson.M{"distance_km": mileage.DistanceKm, "updated_at": now},
			"$setOnInsert": bson.M{"vehicle_id": mileage.VehicleID, "month": mileage.Month, "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// FindMileage queries mileage entries from the collection.
func (s *Store) FindMileage(ctx context.Context, filter bson.M) ([]models.MonthlyMileage, error) {
	return findAll[models.MonthlyMileage](ctx, s.Mileage, filter)
}
