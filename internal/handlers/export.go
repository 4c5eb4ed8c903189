package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/asset-portal/internal/analytics"
	"github.com/ukydev/asset-portal/internal/db"
	"go.mongodb.org/mongo-driver/bson"
)

// ExportHandler streams engine output as CSV downloads. Rows come straight
// from the computed view models; no recomputation logic lives here.
type ExportHandler struct {
	reports *ReportHandler
	records db.MaintenanceCollection
}

// NewExportHandler creates a new export handler.
func NewExportHandler(reports *ReportHandler, records db.MaintenanceCollection) *ExportHandler {
	return &ExportHandler{
		reports: reports,
		records: records,
	}
}

// ExportWarnings writes the current warning feed as CSV.
func (h *ExportHandler) ExportWarnings(w http.ResponseWriter, r *http.Request) {
	vehicles, pcs, assets, err := h.reports.snapshot(r)
	if err != nil {
		http.Error(w, "Failed to load assets", http.StatusInternalServerError)
		return
	}
	warnings := analytics.ComputeWarnings(vehicles, pcs, assets, h.reports.now())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="warnings-`+time.Now().Format("20060102")+`.csv"`)

	writer := csv.NewWriter(w)
	writer.Write([]string{"asset", "category", "deadline_type", "deadline_date", "days_remaining", "level", "label"})
	for _, warning := range warnings {
		writer.Write([]string{
			warning.AssetName,
			string(warning.AssetCategory),
			string(warning.DeadlineType),
			warning.DeadlineDate,
			strconv.Itoa(warning.DaysRemaining),
			string(warning.Level),
			warning.Label,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.WithError(err).Error("failed to write warnings CSV")
	}
}

// ExportCosts writes the monthly cost summary for a range as CSV.
func (h *ExportHandler) ExportCosts(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.reports.vehicles.FindVehicles(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}
	records, err := h.records.FindRecords(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to load maintenance records", http.StatusInternalServerError)
		return
	}
	months := analytics.ComputeCostSummary(vehicles, records, r.URL.Query().Get("start"), r.URL.Query().Get("end"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="costs-`+time.Now().Format("20060102")+`.csv"`)

	writer := csv.NewWriter(w)
	writer.Write([]string{"month", "lease_cost", "maintenance_cost", "total"})
	for _, month := range months {
		writer.Write([]string{
			month.Month,
			strconv.FormatInt(month.LeaseCost, 10),
			strconv.FormatInt(month.MaintenanceCost, 10),
			strconv.FormatInt(month.Total, 10),
		})
	}
	writer.Write([]string{"grand_total", "", "", strconv.FormatInt(analytics.GrandTotal(months), 10)})
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.WithError(err).Error("failed to write costs CSV")
	}
}
