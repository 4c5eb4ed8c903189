package analytics

import (
	"sort"
	"time"

	"github.com/ukydev/asset-portal/internal/models"
)

const dateLayout = "2006-01-02"

// Severity thresholds in days. Vehicle service dimensions use a 60-day
// lookback with a binary critical/warning split; lease and warranty
// dimensions use a 90-day lookback with a third "info" tier. Both behaviors
// are intentional and must stay asymmetric.
const (
	serviceLookbackDays = 60
	leaseLookbackDays   = 90
	criticalDays        = 30
	warningDays         = 60
)

// parseDate parses a user-entered YYYY-MM-DD date. Returns false for empty
// or malformed input, which callers treat as "no deadline on this dimension".
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// daysUntil returns whole calendar days from now until deadline. Both sides
// are truncated to their calendar date so time-of-day and DST never shift
// the count. Negative means overdue.
func daysUntil(deadline, now time.Time) int {
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}

func classifyBinary(days int) models.WarningLevel {
	if days <= criticalDays {
		return models.LevelCritical
	}
	return models.LevelWarning
}

func classifyTiered(days int) models.WarningLevel {
	switch {
	case days <= criticalDays:
		return models.LevelCritical
	case days <= warningDays:
		return models.LevelWarning
	default:
		return models.LevelInfo
	}
}

// deadline is a normalized (dimension, date) pair extracted from an asset.
type deadline struct {
	typ   models.DeadlineType
	date  string
	label string
	// tiered selects the 90-day three-tier classification used by lease and
	// warranty dimensions; the vehicle service dimensions stay binary.
	tiered bool
}

// tireChangeLabel names the tire set the vehicle needs to switch to, which
// is the opposite of what is currently mounted.
func tireChangeLabel(current models.TireType) string {
	if current == models.TireWinter {
		return "Tire change due (switch to summer tires)"
	}
	return "Tire change due (switch to winter tires)"
}

func vehicleDeadlines(v *models.Vehicle) []deadline {
	ds := []deadline{
		{typ: models.DeadlineInspection, date: v.InspectionDate, label: "Vehicle inspection due"},
		{typ: models.DeadlineMaintenance, date: v.MaintenanceDate, label: "Periodic maintenance due"},
		{typ: models.DeadlineTireChange, date: v.TireChangeDate, label: tireChangeLabel(v.TireType)},
	}
	if v.IsLeased() {
		ds = append(ds, deadline{
			typ:    models.DeadlineLease,
			date:   v.Lease.ContractEnd,
			label:  "Lease contract ending",
			tiered: true,
		})
	}
	return ds
}

func warrantyDeadlines(warrantyDate string, lease *models.Lease, leased bool) []deadline {
	ds := []deadline{
		{typ: models.DeadlineWarranty, date: warrantyDate, label: "Warranty expiring", tiered: true},
	}
	if leased {
		ds = append(ds, deadline{
			typ:    models.DeadlineLease,
			date:   lease.ContractEnd,
			label:  "Lease contract ending",
			tiered: true,
		})
	}
	return ds
}

// evaluate turns one normalized deadline into a warning, or nil when the
// date is absent, malformed, or outside the dimension's lookback window.
func evaluate(d deadline, assetID, assetName string, category models.AssetCategory, now time.Time) *models.DeadlineWarning {
	due, ok := parseDate(d.date)
	if !ok {
		return nil
	}
	days := daysUntil(due, now)

	lookback := serviceLookbackDays
	if d.tiered {
		lookback = leaseLookbackDays
	}
	if days > lookback {
		return nil
	}

	level := classifyBinary(days)
	if d.tiered {
		level = classifyTiered(days)
	}

	return &models.DeadlineWarning{
		ID:            assetID + "-" + string(d.typ),
		AssetID:       assetID,
		AssetName:     assetName,
		AssetCategory: category,
		DeadlineType:  d.typ,
		DeadlineDate:  d.date,
		DaysRemaining: days,
		Level:         level,
		Label:         d.label,
	}
}

// ComputeWarnings scans every tracked asset for upcoming date obligations
// and returns one merged list sorted ascending by days remaining. Overdue
// items (negative days) sort first. The function is pure: it never mutates
// its inputs and is deterministic for a given now.
func ComputeWarnings(vehicles []models.Vehicle, pcs []models.PC, general []models.GeneralAsset, now time.Time) []models.DeadlineWarning {
	warnings := []models.DeadlineWarning{}

	for i := range vehicles {
		v := &vehicles[i]
		name := v.Number
		if name == "" {
			name = v.Make + " " + v.Model
		}
		for _, d := range vehicleDeadlines(v) {
			if w := evaluate(d, v.ID.Hex(), name, models.CategoryVehicle, now); w != nil {
				warnings = append(warnings, *w)
			}
		}
	}

	for i := range pcs {
		p := &pcs[i]
		for _, d := range warrantyDeadlines(p.WarrantyExpiration, p.Lease, p.IsLeased()) {
			if w := evaluate(d, p.ID.Hex(), p.Name, models.CategoryPC, now); w != nil {
				warnings = append(warnings, *w)
			}
		}
	}

	for i := range general {
		a := &general[i]
		for _, d := range warrantyDeadlines(a.WarrantyExpiration, a.Lease, a.IsLeased()) {
			if w := evaluate(d, a.ID.Hex(), a.Name, models.CategoryGeneral, now); w != nil {
				warnings = append(warnings, *w)
			}
		}
	}

	// Stable sort keeps encounter order on ties: vehicles before PCs before
	// general assets, input order within a category.
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].DaysRemaining < warnings[j].DaysRemaining
	})
	return warnings
}

// FilterWarnings subsets an already-computed warning list by asset category.
// It never recomputes or reorders; an empty category returns the input as-is.
func FilterWarnings(warnings []models.DeadlineWarning, category models.AssetCategory) []models.DeadlineWarning {
	if category == "" {
		return warnings
	}
	filtered := []models.DeadlineWarning{}
	for _, w := range warnings {
		if w.AssetCategory == category {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
