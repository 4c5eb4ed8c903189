package models

// CostSummary is one calendar month of cost rollup for the vehicle fleet.
// Derived, never persisted. Amounts are in JPY.
type CostSummary struct {
	Month           string `json:"month"` // YYYY-MM
	LeaseCost       int64  `json:"lease_cost"`
	MaintenanceCost int64  `json:"maintenance_cost"`
	Total           int64  `json:"total"`
}

// AssetCostSummary is the aggregate monthly rollup across every asset
// category, with per-category lease subtotals.
type AssetCostSummary struct {
	Month           string `json:"month"` // YYYY-MM
	VehicleLease    int64  `json:"vehicle_lease"`
	PCLease         int64  `json:"pc_lease"`
	GeneralLease    int64  `json:"general_lease"`
	MaintenanceCost int64  `json:"maintenance_cost"`
	Total           int64  `json:"total"`
}

// VehicleCost is the per-vehicle cost breakdown for a queried month range.
// Vehicles with zero lease and zero maintenance activity in the range are
// omitted from results rather than returned as zero rows.
type VehicleCost struct {
	VehicleID       string `json:"vehicle_id"`
	Number          string `json:"number"`
	Name            string `json:"name"`
	LeaseCost       int64  `json:"lease_cost"`
	MaintenanceCost int64  `json:"maintenance_cost"`
	Total           int64  `json:"total"`
}
