package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/asset-portal/internal/analytics"
	"github.com/ukydev/asset-portal/internal/db"
	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceHandler handles a vehicle's maintenance history and monthly
// mileage entries.
type MaintenanceHandler struct {
	vehicles db.VehicleCollection
	records  db.MaintenanceCollection
	mileage  db.MileageCollection
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(vehicles db.VehicleCollection, records db.MaintenanceCollection, mileage db.MileageCollection) *MaintenanceHandler {
	return &MaintenanceHandler{
		vehicles: vehicles,
		records:  records,
		mileage:  mileage,
	}
}

// ListRecords returns a vehicle's maintenance history.
func (h *MaintenanceHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	records, err := h.records.FindRecords(r.Context(), bson.M{"vehicle_id": vehicleID})
	if err != nil {
		http.Error(w, "Failed to list maintenance records", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// CreateRecord adds a maintenance record to a vehicle. The vendor's work
// counter is derived from records at read time, so nothing else is written.
func (h *MaintenanceHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if _, err := h.vehicles.FindVehicleByID(r.Context(), vehicleID); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	var record models.MaintenanceRecord
	if err := decodeJSON(r, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if record.Date == "" {
		http.Error(w, "Record date is required", http.StatusBadRequest)
		return
	}
	if record.Cost < 0 {
		http.Error(w, "Cost must not be negative", http.StatusBadRequest)
		return
	}
	record.VehicleID = vehicleID
	record.ID = primitive.NewObjectID()

	if err := h.records.InsertRecord(r.Context(), record); err != nil {
		http.Error(w, "Failed to create maintenance record", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Maintenance record created", "id": record.ID.Hex()})
}

// UpdateRecord updates a maintenance record by ID.
// GetRecord returns one maintenance record by ID.
func (h *MaintenanceHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.records.FindRecordByID(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (h *MaintenanceHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var record models.MaintenanceRecord
	if err := decodeJSON(r, &record); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.records.UpdateRecord(r.Context(), chi.URLParam(r, "recordID"), record); err != nil {
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Maintenance record updated"})
}

// DeleteRecord removes a maintenance record by ID.
func (h *MaintenanceHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.records.DeleteRecord(r.Context(), chi.URLParam(r, "recordID")); err != nil {
		http.Error(w, "Maintenance record not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Maintenance record deleted"})
}

// ListMileage returns a vehicle's monthly mileage entries.
func (h *MaintenanceHandler) ListMileage(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	entries, err := h.mileage.FindMileage(r.Context(), bson.M{"vehicle_id": vehicleID})
	if err != nil {
		http.Error(w, "Failed to list mileage", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// PutMileage records or replaces a vehicle's mileage for one month.
func (h *MaintenanceHandler) PutMileage(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if _, err := h.vehicles.FindVehicleByID(r.Context(), vehicleID); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	var entry models.MonthlyMileage
	if err := decodeJSON(r, &entry); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if entry.Month == "" {
		http.Error(w, "Month is required", http.StatusBadRequest)
		return
	}
	if entry.DistanceKm < 0 {
		http.Error(w, "Distance must not be negative", http.StatusBadRequest)
		return
	}
	entry.VehicleID = vehicleID

	if err := h.mileage.UpsertMileage(r.Context(), entry); err != nil {
		http.Error(w, "Failed to record mileage", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Mileage recorded"})
}

// VendorHandler handles maintenance vendor CRUD.
type VendorHandler struct {
	vendors db.VendorCollection
	records db.MaintenanceCollection
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(vendors db.VendorCollection, records db.MaintenanceCollection) *VendorHandler {
	return &VendorHandler{
		vendors: vendors,
		records: records,
	}
}

// ListVendors returns all vendors with their derived work counts.
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.vendors.FindVendors(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to list vendors", http.StatusInternalServerError)
		return
	}
	records, err := h.records.FindRecords(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}

	counts := analytics.VendorWorkCounts(records)
	for i := range vendors {
		vendors[i].WorkCount = counts[vendors[i].ID.Hex()]
	}
	respondJSON(w, http.StatusOK, vendors)
}

// GetVendor returns one vendor with its derived work count.
func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.vendors.FindVendorByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}
	records, err := h.records.FindRecords(r.Context(), bson.M{"vendor_id": vendor.ID.Hex()})
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}
	vendor.WorkCount = len(records)
	respondJSON(w, http.StatusOK, vendor)
}

// CreateVendor registers a new vendor.
func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor models.Vendor
	if err := decodeJSON(r, &vendor); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if vendor.Name == "" {
		http.Error(w, "Vendor name is required", http.StatusBadRequest)
		return
	}
	if vendor.Rating < 0 || vendor.Rating > 5 {
		http.Error(w, "Rating must be between 0 and 5", http.StatusBadRequest)
		return
	}
	vendor.ID = primitive.NewObjectID()
	if err := h.vendors.InsertVendor(r.Context(), vendor); err != nil {
		http.Error(w, "Failed to create vendor", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Vendor created", "id": vendor.ID.Hex()})
}

// UpdateVendor updates a vendor by ID.
func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor models.Vendor
	if err := decodeJSON(r, &vendor); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.vendors.UpdateVendor(r.Context(), chi.URLParam(r, "id"), vendor); err != nil {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vendor updated"})
}

// DeleteVendor removes a vendor. Maintenance records that reference it are
// untouched; their vendor resolves as unknown from then on.
func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.vendors.DeleteVendor(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vendor deleted"})
}
