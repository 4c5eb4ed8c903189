package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func dateIn(days int) string {
	return testNow.AddDate(0, 0, days).Format("2006-01-02")
}

func newVehicle(mod func(*models.Vehicle)) models.Vehicle {
	v := models.Vehicle{
		ID:            primitive.NewObjectID(),
		Number:        "品川 300 あ 12-34",
		Make:          "Toyota",
		Model:         "HiAce",
		Year:          2021,
		OwnershipType: models.OwnershipOwned,
		Status:        models.StatusActive,
	}
	if mod != nil {
		mod(&v)
	}
	return v
}

func leasedVehicle(contractEnd string) models.Vehicle {
	return newVehicle(func(v *models.Vehicle) {
		v.OwnershipType = models.OwnershipLeased
		v.Lease = &models.Lease{
			Company:       "Orix Auto",
			MonthlyCost:   45000,
			ContractStart: "2022-04-01",
			ContractEnd:   contractEnd,
		}
	})
}

func TestComputeWarnings_InspectionThresholds(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		wantLevel models.WarningLevel
		wantNone  bool
	}{
		{"exactly 30 days is critical", 30, models.LevelCritical, false},
		{"exactly 31 days is warning", 31, models.LevelWarning, false},
		{"exactly 60 days is warning", 60, models.LevelWarning, false},
		{"exactly 61 days produces nothing", 61, "", true},
		{"overdue is critical", -5, models.LevelCritical, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVehicle(func(v *models.Vehicle) { v.InspectionDate = dateIn(tt.days) })
			warnings := ComputeWarnings([]models.Vehicle{v}, nil, nil, testNow)

			if tt.wantNone {
				assert.Empty(t, warnings)
				return
			}
			assert.Len(t, warnings, 1)
			assert.Equal(t, models.DeadlineInspection, warnings[0].DeadlineType)
			assert.Equal(t, tt.wantLevel, warnings[0].Level)
			assert.Equal(t, tt.days, warnings[0].DaysRemaining)
		})
	}
}

func TestComputeWarnings_LeaseThreeTier(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		wantLevel models.WarningLevel
		wantNone  bool
	}{
		{"30 days is critical", 30, models.LevelCritical, false},
		{"31 days is warning", 31, models.LevelWarning, false},
		{"60 days is warning", 60, models.LevelWarning, false},
		{"61 days is info", 61, models.LevelInfo, false},
		{"90 days is info", 90, models.LevelInfo, false},
		{"91 days produces nothing", 91, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := leasedVehicle(dateIn(tt.days))
			warnings := ComputeWarnings([]models.Vehicle{v}, nil, nil, testNow)

			if tt.wantNone {
				assert.Empty(t, warnings)
				return
			}
			assert.Len(t, warnings, 1)
			assert.Equal(t, models.DeadlineLease, warnings[0].DeadlineType)
			assert.Equal(t, tt.wantLevel, warnings[0].Level)
		})
	}
}

func TestComputeWarnings_WarrantyTiersApplyToPCsAndGeneralAssets(t *testing.T) {
	pc := models.PC{
		ID:                 primitive.NewObjectID(),
		Name:               "DEV-PC-017",
		OwnershipType:      models.OwnershipOwned,
		Status:             models.StatusActive,
		WarrantyExpiration: dateIn(75),
	}
	asset := models.GeneralAsset{
		ID:                 primitive.NewObjectID(),
		Name:               "Copier 3F",
		Category:           "office equipment",
		OwnershipType:      models.OwnershipOwned,
		Status:             models.StatusActive,
		WarrantyExpiration: dateIn(45),
	}

	warnings := ComputeWarnings(nil, []models.PC{pc}, []models.GeneralAsset{asset}, testNow)
	assert.Len(t, warnings, 2)

	// sorted ascending: the 45-day general asset first
	assert.Equal(t, models.CategoryGeneral, warnings[0].AssetCategory)
	assert.Equal(t, models.LevelWarning, warnings[0].Level)
	assert.Equal(t, models.CategoryPC, warnings[1].AssetCategory)
	assert.Equal(t, models.LevelInfo, warnings[1].Level)
	assert.Equal(t, models.DeadlineWarranty, warnings[1].DeadlineType)
}

func TestComputeWarnings_SortedAscendingOverdueFirst(t *testing.T) {
	vehicles := []models.Vehicle{
		newVehicle(func(v *models.Vehicle) { v.InspectionDate = dateIn(50) }),
		newVehicle(func(v *models.Vehicle) { v.MaintenanceDate = dateIn(-10) }),
		newVehicle(func(v *models.Vehicle) { v.InspectionDate = dateIn(5) }),
	}
	pcs := []models.PC{{
		ID:                 primitive.NewObjectID(),
		Name:               "DEV-PC-001",
		WarrantyExpiration: dateIn(20),
	}}

	warnings := ComputeWarnings(vehicles, pcs, nil, testNow)
	assert.Len(t, warnings, 4)
	assert.Equal(t, -10, warnings[0].DaysRemaining)
	for i := 1; i < len(warnings); i++ {
		assert.GreaterOrEqual(t, warnings[i].DaysRemaining, warnings[i-1].DaysRemaining)
	}
}

func TestComputeWarnings_StableOrderOnTies(t *testing.T) {
	// same deadline on a vehicle and a PC: vehicle keeps encounter order
	v := newVehicle(func(v *models.Vehicle) { v.InspectionDate = dateIn(15) })
	pc := models.PC{
		ID:                 primitive.NewObjectID(),
		Name:               "DEV-PC-002",
		WarrantyExpiration: dateIn(15),
	}

	warnings := ComputeWarnings([]models.Vehicle{v}, []models.PC{pc}, nil, testNow)
	assert.Len(t, warnings, 2)
	assert.Equal(t, models.CategoryVehicle, warnings[0].AssetCategory)
	assert.Equal(t, models.CategoryPC, warnings[1].AssetCategory)
}

func TestComputeWarnings_TireChangeNamesOppositeSeason(t *testing.T) {
	winter := newVehicle(func(v *models.Vehicle) {
		v.TireChangeDate = dateIn(10)
		v.TireType = models.TireWinter
	})
	summer := newVehicle(func(v *models.Vehicle) {
		v.TireChangeDate = dateIn(10)
		v.TireType = models.TireSummer
	})

	warnings := ComputeWarnings([]models.Vehicle{winter, summer}, nil, nil, testNow)
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Label, "summer tires")
	assert.Contains(t, warnings[1].Label, "winter tires")
}

func TestComputeWarnings_MissingAndMalformedDatesAreSkipped(t *testing.T) {
	vehicles := []models.Vehicle{
		newVehicle(nil), // no dates at all
		newVehicle(func(v *models.Vehicle) {
			v.InspectionDate = "not-a-date"
			v.MaintenanceDate = "2024/06/15" // wrong separator
			v.TireChangeDate = dateIn(10)
		}),
	}
	pcs := []models.PC{{ID: primitive.NewObjectID(), Name: "DEV-PC-003"}}

	warnings := ComputeWarnings(vehicles, pcs, nil, testNow)
	assert.Len(t, warnings, 1)
	assert.Equal(t, models.DeadlineTireChange, warnings[0].DeadlineType)
}

func TestComputeWarnings_EmptyInputs(t *testing.T) {
	warnings := ComputeWarnings(nil, nil, nil, testNow)
	assert.Empty(t, warnings)
	assert.NotNil(t, warnings)
}

func TestComputeWarnings_OneWarningPerDimension(t *testing.T) {
	v := leasedVehicle(dateIn(80))
	v.InspectionDate = dateIn(10)
	v.MaintenanceDate = dateIn(40)
	v.TireChangeDate = dateIn(55)

	warnings := ComputeWarnings([]models.Vehicle{v}, nil, nil, testNow)
	assert.Len(t, warnings, 4)

	seen := map[string]bool{}
	for _, w := range warnings {
		assert.False(t, seen[w.ID], "duplicate warning id %s", w.ID)
		seen[w.ID] = true
		assert.Equal(t, v.ID.Hex(), w.AssetID)
	}
}

func TestFilterWarnings(t *testing.T) {
	vehicles := []models.Vehicle{
		newVehicle(func(v *models.Vehicle) { v.InspectionDate = dateIn(20) }),
	}
	pcs := []models.PC{{
		ID:                 primitive.NewObjectID(),
		Name:               "DEV-PC-004",
		WarrantyExpiration: dateIn(40),
	}}

	all := ComputeWarnings(vehicles, pcs, nil, testNow)
	assert.Len(t, all, 2)

	onlyPCs := FilterWarnings(all, models.CategoryPC)
	assert.Len(t, onlyPCs, 1)
	assert.Equal(t, models.CategoryPC, onlyPCs[0].AssetCategory)

	// filtering is idempotent
	assert.Equal(t, onlyPCs, FilterWarnings(onlyPCs, models.CategoryPC))

	// empty category returns everything
	assert.Equal(t, all, FilterWarnings(all, ""))
}

func TestDaysUntil_TimeOfDayDoesNotShiftCount(t *testing.T) {
	deadline := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	lateEvening := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2024, 6, 1, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 10, daysUntil(deadline, lateEvening))
	assert.Equal(t, 10, daysUntil(deadline, earlyMorning))
}
