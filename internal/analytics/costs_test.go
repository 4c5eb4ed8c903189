package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukydev/asset-portal/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func leasedVehicleFor(start, end string, monthly int64) models.Vehicle {
	return models.Vehicle{
		ID:            primitive.NewObjectID(),
		Number:        "多摩 500 さ 77-01",
		Make:          "Nissan",
		Model:         "Caravan",
		OwnershipType: models.OwnershipLeased,
		Status:        models.StatusActive,
		Lease: &models.Lease{
			Company:       "Sumitomo Mitsui Auto",
			MonthlyCost:   monthly,
			ContractStart: start,
			ContractEnd:   end,
		},
	}
}

func TestComputeCostSummary_LeaseProration(t *testing.T) {
	v := leasedVehicleFor("2024-01-01", "2024-03-31", 45000)

	feb := ComputeCostSummary([]models.Vehicle{v}, nil, "2024-02", "2024-02")
	assert.Len(t, feb, 1)
	assert.Equal(t, "2024-02", feb[0].Month)
	assert.Equal(t, int64(45000), feb[0].LeaseCost)
	assert.Equal(t, int64(45000), feb[0].Total)

	// contract already ended: month row exists but carries no lease cost
	may := ComputeCostSummary([]models.Vehicle{v}, nil, "2024-05", "2024-05")
	assert.Len(t, may, 1)
	assert.Equal(t, int64(0), may[0].LeaseCost)

	// and the per-vehicle breakdown excludes the vehicle entirely
	assert.Empty(t, ComputeVehicleCosts([]models.Vehicle{v}, nil, "2024-05", "2024-05"))
}

func TestComputeCostSummary_EachMonthCountedOnce(t *testing.T) {
	v := leasedVehicleFor("2024-01-01", "2024-03-31", 45000)

	q1 := ComputeCostSummary([]models.Vehicle{v}, nil, "2024-01", "2024-04")
	assert.Len(t, q1, 4)
	assert.Equal(t, int64(45000), q1[0].LeaseCost)
	assert.Equal(t, int64(45000), q1[1].LeaseCost)
	assert.Equal(t, int64(45000), q1[2].LeaseCost)
	assert.Equal(t, int64(0), q1[3].LeaseCost)
	assert.Equal(t, int64(135000), GrandTotal(q1))
}

func TestComputeCostSummary_MidMonthContractStart(t *testing.T) {
	// the month boundary of February (Feb 1) precedes the contract start, so
	// February is not billed; March is
	v := leasedVehicleFor("2024-02-15", "2024-12-31", 30000)

	out := ComputeCostSummary([]models.Vehicle{v}, nil, "2024-02", "2024-03")
	assert.Len(t, out, 2)
	assert.Equal(t, int64(0), out[0].LeaseCost)
	assert.Equal(t, int64(30000), out[1].LeaseCost)
}

func TestComputeVehicleCosts_MaintenanceOnlyVehicle(t *testing.T) {
	v := models.Vehicle{
		ID:            primitive.NewObjectID(),
		Number:        "足立 800 か 33-44",
		Make:          "Suzuki",
		Model:         "Every",
		OwnershipType: models.OwnershipOwned,
		Status:        models.StatusActive,
	}
	records := []models.MaintenanceRecord{{
		ID:        primitive.NewObjectID(),
		VehicleID: v.ID.Hex(),
		Type:      "repair",
		Date:      "2024-10-15",
		Cost:      8000,
	}}

	oct := ComputeVehicleCosts([]models.Vehicle{v}, records, "2024-10", "2024-10")
	assert.Len(t, oct, 1)
	assert.Equal(t, int64(0), oct[0].LeaseCost)
	assert.Equal(t, int64(8000), oct[0].MaintenanceCost)
	assert.Equal(t, int64(8000), oct[0].Total)

	// zero-activity month: vehicle omitted, not returned as a zero row
	assert.Empty(t, ComputeVehicleCosts([]models.Vehicle{v}, records, "2024-11", "2024-11"))
}

func TestComputeCostSummary_MaintenanceBucketedByMonth(t *testing.T) {
	vid := primitive.NewObjectID().Hex()
	records := []models.MaintenanceRecord{
		{VehicleID: vid, Date: "2024-10-02", Cost: 12000},
		{VehicleID: vid, Date: "2024-10-28", Cost: 3000},
		{VehicleID: vid, Date: "2024-11-01", Cost: 5000},
		{VehicleID: vid, Date: "bogus", Cost: 99999}, // malformed: ignored
	}

	out := ComputeCostSummary(nil, records, "2024-10", "2024-11")
	assert.Len(t, out, 2)
	assert.Equal(t, int64(15000), out[0].MaintenanceCost)
	assert.Equal(t, int64(5000), out[1].MaintenanceCost)
}

func TestComputeCostSummary_EmptyInputsYieldZeroedMonths(t *testing.T) {
	out := ComputeCostSummary(nil, nil, "2024-01", "2024-12")
	assert.Len(t, out, 12)
	for _, s := range out {
		assert.Equal(t, int64(0), s.Total)
	}
	assert.Equal(t, "2024-01", out[0].Month)
	assert.Equal(t, "2024-12", out[11].Month)
}

func TestComputeCostSummary_InvalidRanges(t *testing.T) {
	v := leasedVehicleFor("2024-01-01", "2024-12-31", 45000)

	// inverted range is empty, not an error
	assert.Empty(t, ComputeCostSummary([]models.Vehicle{v}, nil, "2024-06", "2024-03"))

	// malformed month bounds are empty, not an error
	assert.Empty(t, ComputeCostSummary([]models.Vehicle{v}, nil, "2024/06", "2024-07"))
	assert.Empty(t, ComputeCostSummary([]models.Vehicle{v}, nil, "", "2024-07"))
}

func TestComputeCostSummary_MalformedContractDates(t *testing.T) {
	v := leasedVehicleFor("sometime", "2024-12-31", 45000)

	out := ComputeCostSummary([]models.Vehicle{v}, nil, "2024-06", "2024-06")
	assert.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].LeaseCost)
}

func TestComputeAssetCostSummary_PerCategorySubtotals(t *testing.T) {
	v := leasedVehicleFor("2024-01-01", "2024-12-31", 45000)
	pc := models.PC{
		ID:            primitive.NewObjectID(),
		Name:          "DEV-PC-020",
		OwnershipType: models.OwnershipLeased,
		Lease: &models.Lease{
			Company:       "NEC Capital",
			MonthlyCost:   6000,
			ContractStart: "2023-04-01",
			ContractEnd:   "2026-03-31",
		},
	}
	asset := models.GeneralAsset{
		ID:            primitive.NewObjectID(),
		Name:          "Copier 3F",
		OwnershipType: models.OwnershipOwned, // owned: contributes nothing
	}
	records := []models.MaintenanceRecord{
		{VehicleID: v.ID.Hex(), Date: "2024-06-10", Cost: 20000},
	}

	out := ComputeAssetCostSummary([]models.Vehicle{v}, []models.PC{pc}, []models.GeneralAsset{asset}, records, "2024-06", "2024-06")
	assert.Len(t, out, 1)
	assert.Equal(t, int64(45000), out[0].VehicleLease)
	assert.Equal(t, int64(6000), out[0].PCLease)
	assert.Equal(t, int64(0), out[0].GeneralLease)
	assert.Equal(t, int64(20000), out[0].MaintenanceCost)
	assert.Equal(t, int64(71000), out[0].Total)
}

func TestVendorWorkCounts(t *testing.T) {
	records := []models.MaintenanceRecord{
		{VendorID: "v1"},
		{VendorID: "v1"},
		{VendorID: "v2"},
		{VendorID: ""}, // no vendor attributed
	}

	counts := VendorWorkCounts(records)
	assert.Equal(t, 2, counts["v1"])
	assert.Equal(t, 1, counts["v2"])
	assert.Len(t, counts, 2)
}
