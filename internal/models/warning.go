package models

// AssetCategory identifies which asset collection a warning came from.
type AssetCategory string

const (
	CategoryVehicle AssetCategory = "vehicle"
	CategoryPC      AssetCategory = "pc"
	CategoryGeneral AssetCategory = "general"
)

// DeadlineType is the obligation dimension a warning refers to.
type DeadlineType string

const (
	DeadlineInspection  DeadlineType = "inspection"
	DeadlineMaintenance DeadlineType = "maintenance"
	DeadlineTireChange  DeadlineType = "tireChange"
	DeadlineLease       DeadlineType = "lease"
	DeadlineWarranty    DeadlineType = "warranty"
)

// WarningLevel is the severity of a deadline warning.
type WarningLevel string

const (
	LevelCritical WarningLevel = "critical"
	LevelWarning  WarningLevel = "warning"
	LevelInfo     WarningLevel = "info"
)

// DeadlineWarning is a derived view model, computed fresh on every query and
// never persisted. Its ID is the composite assetID-deadlineType, which also
// guarantees at most one warning per asset per dimension.
type DeadlineWarning struct {
	ID            string        `json:"id"`
	AssetID       string        `json:"asset_id"`
	AssetName     string        `json:"asset_name"`
	AssetCategory AssetCategory `json:"asset_category"`
	DeadlineType  DeadlineType  `json:"deadline_type"`
	DeadlineDate  string        `json:"deadline_date"` // YYYY-MM-DD
	DaysRemaining int           `json:"days_remaining"` // negative when overdue
	Level         WarningLevel  `json:"level"`
	Label         string        `json:"label"`
}
