package analytics

import (
	"time"

	"github.com/ukydev/asset-portal/internal/models"
)

const monthLayout = "2006-01"

// parseMonth parses a YYYY-MM month string. Returns false for empty or
// malformed input; cost queries treat that as an empty range, never an error.
func parseMonth(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// monthRange enumerates the first day of every calendar month from start
// through end inclusive. An inverted or unparseable range yields nil.
func monthRange(startMonth, endMonth string) []time.Time {
	start, ok := parseMonth(startMonth)
	if !ok {
		return nil
	}
	end, ok := parseMonth(endMonth)
	if !ok {
		return nil
	}
	var months []time.Time
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// leaseMonths counts the calendar-month boundaries inside the bucket
// [monthStart, monthStart+1month) that fall within the lease contract
// [start, end] inclusive. For a single-month bucket this is 0 or 1, but the
// walk stays correct if bucket granularity ever widens, and it never double
// counts partial months. A malformed contract date contributes nothing.
func leaseMonths(monthStart time.Time, lease *models.Lease) int {
	start, ok := parseDate(lease.ContractStart)
	if !ok {
		return 0
	}
	end, ok := parseDate(lease.ContractEnd)
	if !ok {
		return 0
	}
	next := monthStart.AddDate(0, 1, 0)
	count := 0
	for b := monthStart; b.Before(next); b = b.AddDate(0, 1, 0) {
		if !b.Before(start) && !b.After(end) {
			count++
		}
	}
	return count
}

// recordInMonth reports whether a maintenance record's date falls in the
// given bucket month. Malformed dates never match.
func recordInMonth(r *models.MaintenanceRecord, month time.Time) bool {
	d, ok := parseDate(r.Date)
	if !ok {
		return false
	}
	return d.Year() == month.Year() && d.Month() == month.Month()
}

// ComputeCostSummary produces one cost rollup per calendar month in the
// inclusive [startMonth, endMonth] range: amortized lease cost for every
// leased vehicle whose contract overlaps the month, plus maintenance cost
// recorded within the month. Pure; inputs are never mutated.
func ComputeCostSummary(vehicles []models.Vehicle, records []models.MaintenanceRecord, startMonth, endMonth string) []models.CostSummary {
	months := monthRange(startMonth, endMonth)
	summaries := make([]models.CostSummary, 0, len(months))

	for _, m := range months {
		s := models.CostSummary{Month: m.Format(monthLayout)}
		for i := range vehicles {
			v := &vehicles[i]
			if !v.IsLeased() {
				continue
			}
			s.LeaseCost += v.Lease.MonthlyCost * int64(leaseMonths(m, v.Lease))
		}
		for i := range records {
			if recordInMonth(&records[i], m) {
				s.MaintenanceCost += records[i].Cost
			}
		}
		s.Total = s.LeaseCost + s.MaintenanceCost
		summaries = append(summaries, s)
	}
	return summaries
}

// ComputeAssetCostSummary is the aggregate variant covering every asset
// category, with per-category lease subtotals.
func ComputeAssetCostSummary(vehicles []models.Vehicle, pcs []models.PC, general []models.GeneralAsset, records []models.MaintenanceRecord, startMonth, endMonth string) []models.AssetCostSummary {
	months := monthRange(startMonth, endMonth)
	summaries := make([]models.AssetCostSummary, 0, len(months))

	for _, m := range months {
		s := models.AssetCostSummary{Month: m.Format(monthLayout)}
		for i := range vehicles {
			if v := &vehicles[i]; v.IsLeased() {
				s.VehicleLease += v.Lease.MonthlyCost * int64(leaseMonths(m, v.Lease))
			}
		}
		for i := range pcs {
			if p := &pcs[i]; p.IsLeased() {
				s.PCLease += p.Lease.MonthlyCost * int64(leaseMonths(m, p.Lease))
			}
		}
		for i := range general {
			if a := &general[i]; a.IsLeased() {
				s.GeneralLease += a.Lease.MonthlyCost * int64(leaseMonths(m, a.Lease))
			}
		}
		for i := range records {
			if recordInMonth(&records[i], m) {
				s.MaintenanceCost += records[i].Cost
			}
		}
		s.Total = s.VehicleLease + s.PCLease + s.GeneralLease + s.MaintenanceCost
		summaries = append(summaries, s)
	}
	return summaries
}

// ComputeVehicleCosts rolls costs up per vehicle across the queried range.
// Vehicles with no lease and no maintenance activity in the range are
// omitted entirely rather than returned as zero rows.
func ComputeVehicleCosts(vehicles []models.Vehicle, records []models.MaintenanceRecord, startMonth, endMonth string) []models.VehicleCost {
	months := monthRange(startMonth, endMonth)
	costs := []models.VehicleCost{}

	for i := range vehicles {
		v := &vehicles[i]
		vc := models.VehicleCost{
			VehicleID: v.ID.Hex(),
			Number:    v.Number,
			Name:      v.Make + " " + v.Model,
		}
		for _, m := range months {
			if v.IsLeased() {
				vc.LeaseCost += v.Lease.MonthlyCost * int64(leaseMonths(m, v.Lease))
			}
			for j := range records {
				r := &records[j]
				if r.VehicleID == v.ID.Hex() && recordInMonth(r, m) {
					vc.MaintenanceCost += r.Cost
				}
			}
		}
		if vc.LeaseCost == 0 && vc.MaintenanceCost == 0 {
			continue
		}
		vc.Total = vc.LeaseCost + vc.MaintenanceCost
		costs = append(costs, vc)
	}
	return costs
}

// GrandTotal sums the monthly totals of a cost summary range.
func GrandTotal(summaries []models.CostSummary) int64 {
	var total int64
	for _, s := range summaries {
		total += s.Total
	}
	return total
}

// VendorWorkCounts derives each vendor's completed-work counter from the
// maintenance records that reference it. Computed on demand and never
// stored, so it cannot drift out of sync with the records.
func VendorWorkCounts(records []models.MaintenanceRecord) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		if id := records[i].VendorID; id != "" {
			counts[id]++
		}
	}
	return counts
}
