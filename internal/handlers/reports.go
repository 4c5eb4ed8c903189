package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/asset-portal/internal/analytics"
	"github.com/ukydev/asset-portal/internal/db"
	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ReportHandler serves the derived views: deadline warnings and cost
// summaries. Each request takes a fresh snapshot of the collections and
// runs the pure engines over it; nothing is cached or stored.
type ReportHandler struct {
	vehicles db.VehicleCollection
	pcs      db.PCCollection
	assets   db.AssetCollection
	records  db.MaintenanceCollection

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewReportHandler creates a new report handler.
func NewReportHandler(vehicles db.VehicleCollection, pcs db.PCCollection, assets db.AssetCollection, records db.MaintenanceCollection) *ReportHandler {
	return &ReportHandler{
		vehicles: vehicles,
		pcs:      pcs,
		assets:   assets,
		records:  records,
		now:      time.Now,
	}
}

func (h *ReportHandler) snapshot(r *http.Request) ([]models.Vehicle, []models.PC, []models.GeneralAsset, error) {
	vehicles, err := h.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		return nil, nil, nil, err
	}
	pcs, err := h.pcs.FindPCs(r.Context(), bson.M{})
	if err != nil {
		return nil, nil, nil, err
	}
	assets, err := h.assets.FindAssets(r.Context(), bson.M{})
	if err != nil {
		return nil, nil, nil, err
	}
	return vehicles, pcs, assets, nil
}

// GetWarnings computes the merged deadline warning feed, optionally
// filtered by asset category.
func (h *ReportHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	vehicles, pcs, assets, err := h.snapshot(r)
	if err != nil {
		log.WithError(err).Error("failed to load asset snapshot")
		http.Error(w, "Failed to load assets", http.StatusInternalServerError)
		return
	}

	warnings := analytics.ComputeWarnings(vehicles, pcs, assets, h.now())
	category := models.AssetCategory(r.URL.Query().Get("category"))
	warnings = analytics.FilterWarnings(warnings, category)

	respondJSON(w, http.StatusOK, warnings)
}

// GetCostSummary computes the monthly cost rollup for an inclusive
// [start, end] month range. With scope=assets the rollup covers every
// asset category with per-category lease subtotals.
func (h *ReportHandler) GetCostSummary(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	records, err := h.records.FindRecords(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("scope") == "assets" {
		vehicles, pcs, assets, err := h.snapshot(r)
		if err != nil {
			http.Error(w, "Failed to load assets", http.StatusInternalServerError)
			return
		}
		summary := analytics.ComputeAssetCostSummary(vehicles, pcs, assets, records, start, end)
		respondJSON(w, http.StatusOK, summary)
		return
	}

	vehicles, err := h.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	months := analytics.ComputeCostSummary(vehicles, records, start, end)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"months":      months,
		"grand_total": analytics.GrandTotal(months),
	})
}

// GetVehicleCostBreakdown computes per-vehicle cost rows for a month range.
// Vehicles with no activity in the range are omitted.
func (h *ReportHandler) GetVehicleCostBreakdown(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}
	records, err := h.records.FindRecords(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}

	costs := analytics.ComputeVehicleCosts(vehicles, records, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	respondJSON(w, http.StatusOK, costs)
}

// GetVehicleCosts computes one vehicle's monthly cost rows for a range.
func (h *ReportHandler) GetVehicleCosts(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), vehicleID)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	records, err := h.records.FindRecords(r.Context(), bson.M{"vehicle_id": vehicleID})
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}

	months := analytics.ComputeCostSummary([]models.Vehicle{*vehicle}, records, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"months":      months,
		"grand_total": analytics.GrandTotal(months),
	})
}
