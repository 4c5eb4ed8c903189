package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ukydev/asset-portal/internal/db"
	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetHandler handles CRUD for vehicles, PCs and general assets.
type AssetHandler struct {
	vehicles db.VehicleCollection
	pcs      db.PCCollection
	assets   db.AssetCollection
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(vehicles db.VehicleCollection, pcs db.PCCollection, assets db.AssetCollection) *AssetHandler {
	return &AssetHandler{
		vehicles: vehicles,
		pcs:      pcs,
		assets:   assets,
	}
}

// validateLease enforces the lease invariant: when both contract dates are
// present and parseable, the start must not come after the end. Malformed
// dates are tolerated here; the engines skip them at query time.
func validateLease(ownership models.OwnershipType, lease *models.Lease) string {
	if ownership != models.OwnershipLeased {
		return ""
	}
	if lease == nil {
		return "lease details are required for leased assets"
	}
	start, err1 := time.Parse("2006-01-02", lease.ContractStart)
	end, err2 := time.Parse("2006-01-02", lease.ContractEnd)
	if err1 == nil && err2 == nil && start.After(end) {
		return "lease contract start must not be after contract end"
	}
	return ""
}

// ListVehicles returns all vehicles.
func (h *AssetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

// GetVehicle returns one vehicle by ID.
func (h *AssetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// CreateVehicle registers a new vehicle.
func (h *AssetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if vehicle.Number == "" {
		http.Error(w, "Vehicle number is required", http.StatusBadRequest)
		return
	}
	if msg := validateLease(vehicle.OwnershipType, vehicle.Lease); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if vehicle.Status == "" {
		vehicle.Status = models.StatusActive
	}
	vehicle.ID = primitive.NewObjectID()
	if err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Vehicle created", "id": vehicle.ID.Hex()})
}

// UpdateVehicle updates a vehicle by ID.
func (h *AssetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := validateLease(vehicle.OwnershipType, vehicle.Lease); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if err := h.vehicles.UpdateVehicle(r.Context(), chi.URLParam(r, "id"), vehicle); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
}

// DeleteVehicle removes a vehicle along with its maintenance records and
// mileage entries.
func (h *AssetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// ListPCs returns all PCs.
func (h *AssetHandler) ListPCs(w http.ResponseWriter, r *http.Request) {
	pcs, err := h.pcs.FindPCs(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to list PCs", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, pcs)
}

// GetPC returns one PC by ID.
func (h *AssetHandler) GetPC(w http.ResponseWriter, r *http.Request) {
	pc, err := h.pcs.FindPCByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "PC not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, pc)
}

// CreatePC registers a new PC.
func (h *AssetHandler) CreatePC(w http.ResponseWriter, r *http.Request) {
	var pc models.PC
	if err := decodeJSON(r, &pc); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if pc.Name == "" {
		http.Error(w, "PC name is required", http.StatusBadRequest)
		return
	}
	if msg := validateLease(pc.OwnershipType, pc.Lease); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if pc.Status == "" {
		pc.Status = models.StatusActive
	}
	pc.ID = primitive.NewObjectID()
	if err := h.pcs.InsertPC(r.Context(), pc); err != nil {
		http.Error(w, "Failed to create PC", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "PC created", "id": pc.ID.Hex()})
}

// UpdatePC updates a PC by ID.
func (h *AssetHandler) UpdatePC(w http.ResponseWriter, r *http.Request) {
	var pc models.PC
	if err := decodeJSON(r, &pc); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := validateLease(pc.OwnershipType, pc.Lease); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if err := h.pcs.UpdatePC(r.Context(), chi.URLParam(r, "id"), pc); err != nil {
		http.Error(w, "PC not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "PC updated"})
}

// DeletePC removes a PC by ID.
func (h *AssetHandler) DeletePC(w http.ResponseWriter, r *http.Request) {
	if err := h.pcs.DeletePC(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "PC not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "PC deleted"})
}

// ListAssets returns all general assets.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assets.FindAssets(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to list assets", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, assets)
}

// GetAsset returns one general asset by ID.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assets.FindAssetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// CreateAsset registers a new general asset.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.GeneralAsset
	if err := decodeJSON(r, &asset); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if asset.Name == "" {
		http.Error(w, "Asset name is required", http.StatusBadRequest)
		return
	}
	if msg := validateLease(asset.OwnershipType, asset.Lease); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if asset.Status == "" {
		asset.Status = models.StatusActive
	}
	asset.ID = primitive.NewObjectID()
	if err := h.assets.InsertAsset(r.Context(), asset); err != nil {
		http.Error(w, "Failed to create asset", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "Asset created", "id": asset.ID.Hex()})
}

// UpdateAsset updates a general asset by ID.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.GeneralAsset
	if err := decodeJSON(r, &asset); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if msg := validateLease(asset.OwnershipType, asset.Lease); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if err := h.assets.UpdateAsset(r.Context(), chi.URLParam(r, "id"), asset); err != nil {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Asset updated"})
}

// DeleteAsset removes a general asset by ID.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.assets.DeleteAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Asset deleted"})
}
