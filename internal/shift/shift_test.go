package shift

import (
	"testing"
	"time"

	"github.com/minefleet/minefleet/internal/apperr"
	"github.com/minefleet/minefleet/internal/models"
	"github.com/minefleet/minefleet/internal/refdata"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.Company{},
		&models.Quarry{},
		&models.VehicleType{},
		&models.Vehicle{},
		&models.Driver{},
		&models.Shift{},
		&models.VehicleShiftAssignment{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func seedQuarry(t *testing.T, gdb *gorm.DB) *models.Quarry {
	t.Helper()
	company, err := refdata.CreateCompany(gdb, refdata.CompanyOpts{Name: "Granite Corp"})
	if err != nil {
		t.Fatal(err)
	}
	quarry, err := refdata.CreateQuarry(gdb, refdata.QuarryOpts{CompanyID: company.ID, Name: "North Pit"})
	if err != nil {
		t.Fatal(err)
	}
	return quarry
}

func dayShiftOpts(quarryID uint) CreateOpts {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return CreateOpts{
		QuarryID:  quarryID,
		ShiftDate: day,
		StartTime: day.Add(8 * time.Hour),
		EndTime:   day.Add(16 * time.Hour),
	}
}

func TestCreate(t *testing.T) {
	gdb := openTestDB(t)
	quarry := seedQuarry(t, gdb)

	s, err := Create(gdb, dayShiftOpts(quarry.ID))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if s.ID == 0 {
		t.Fatal("shift has no id")
	}

	got, err := Get(gdb, s.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.QuarryID != quarry.ID {
		t.Errorf("quarry = %d, want %d", got.QuarryID, quarry.ID)
	}
}

func TestCreate_Validation(t *testing.T) {
	gdb := openTestDB(t)
	quarry := seedQuarry(t, gdb)

	opts := dayShiftOpts(quarry.ID)
	opts.EndTime = opts.StartTime.Add(-time.Hour)
	if _, err := Create(gdb, opts); apperr.KindOf(err) != apperr.Validation {
		t.Errorf("end-before-start kind = %v, want Validation", apperr.KindOf(err))
	}

	opts = dayShiftOpts(quarry.ID)
	opts.EndTime = opts.StartTime
	if _, err := Create(gdb, opts); apperr.KindOf(err) != apperr.Validation {
		t.Errorf("zero-length shift kind = %v, want Validation", apperr.KindOf(err))
	}

	if _, err := Create(gdb, dayShiftOpts(404)); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("unknown quarry kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestCreate_TimesMustFallOnShiftDate(t *testing.T) {
	gdb := openTestDB(t)
	quarry := seedQuarry(t, gdb)

	opts := dayShiftOpts(quarry.ID)
	opts.EndTime = opts.EndTime.Add(48 * time.Hour)
	if _, err := Create(gdb, opts); apperr.KindOf(err) != apperr.Validation {
		t.Errorf("end on later day kind = %v, want Validation", apperr.KindOf(err))
	}

	opts = dayShiftOpts(quarry.ID)
	opts.StartTime = opts.StartTime.Add(-24 * time.Hour)
	if _, err := Create(gdb, opts); apperr.KindOf(err) != apperr.Validation {
		t.Errorf("start on earlier day kind = %v, want Validation", apperr.KindOf(err))
	}
}

func TestList_QuarryFilter(t *testing.T) {
	gdb := openTestDB(t)
	a := seedQuarry(t, gdb)

	companyB, _ := refdata.CreateCompany(gdb, refdata.CompanyOpts{Name: "Basalt Ltd"})
	b, err := refdata.CreateQuarry(gdb, refdata.QuarryOpts{CompanyID: companyB.ID, Name: "South Pit"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Create(gdb, dayShiftOpts(a.ID)); err != nil {
		t.Fatal(err)
	}
	if _, err := Create(gdb, dayShiftOpts(b.ID)); err != nil {
		t.Fatal(err)
	}

	all, err := List(gdb, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered shifts = %d, want 2", len(all))
	}

	onlyA, err := List(gdb, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 1 || onlyA[0].QuarryID != a.ID {
		t.Errorf("filtered shifts = %+v", onlyA)
	}
}

// seedPairing creates the vehicle, driver, and shift a pairing needs.
func seedPairing(t *testing.T, gdb *gorm.DB) (quarry *models.Quarry, vehicleID, driverID, shiftID uint) {
	t.Helper()
	quarry = seedQuarry(t, gdb)

	vt := models.VehicleType{Name: "Haul Truck"}
	if err := gdb.Create(&vt).Error; err != nil {
		t.Fatal(err)
	}
	v := models.Vehicle{CompanyID: quarry.CompanyID, VehicleTypeID: vt.ID, PlateNumber: "KZ 001", Status: "active"}
	if err := gdb.Create(&v).Error; err != nil {
		t.Fatal(err)
	}
	d := models.Driver{CompanyID: quarry.CompanyID, FullName: "John Doe", Status: "active"}
	if err := gdb.Create(&d).Error; err != nil {
		t.Fatal(err)
	}
	s, err := Create(gdb, dayShiftOpts(quarry.ID))
	if err != nil {
		t.Fatal(err)
	}
	return quarry, v.ID, d.ID, s.ID
}

func TestAssignVehicle(t *testing.T) {
	gdb := openTestDB(t)
	quarry, vehicleID, driverID, shiftID := seedPairing(t, gdb)

	a, err := AssignVehicle(gdb, AssignOpts{
		VehicleID: vehicleID,
		DriverID:  driverID,
		ShiftID:   shiftID,
		QuarryID:  quarry.ID,
	})
	if err != nil {
		t.Fatalf("AssignVehicle() error: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("assignment has no id")
	}
	if a.StartTime.IsZero() {
		t.Error("start time not defaulted")
	}
	if a.EndTime != nil {
		t.Error("new pairing should be open")
	}

	pairings, err := ListVehicleAssignments(gdb, shiftID)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairings) != 1 {
		t.Errorf("pairings = %d, want 1", len(pairings))
	}
}

func TestAssignVehicle_MissingRefs(t *testing.T) {
	gdb := openTestDB(t)
	quarry, vehicleID, driverID, shiftID := seedPairing(t, gdb)

	tests := []struct {
		name string
		opts AssignOpts
		want apperr.Kind
	}{
		{"no vehicle", AssignOpts{DriverID: driverID, ShiftID: shiftID, QuarryID: quarry.ID}, apperr.Validation},
		{"no driver", AssignOpts{VehicleID: vehicleID, ShiftID: shiftID, QuarryID: quarry.ID}, apperr.Validation},
		{"unknown vehicle", AssignOpts{VehicleID: 404, DriverID: driverID, ShiftID: shiftID, QuarryID: quarry.ID}, apperr.NotFound},
		{"unknown shift", AssignOpts{VehicleID: vehicleID, DriverID: driverID, ShiftID: 404, QuarryID: quarry.ID}, apperr.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssignVehicle(gdb, tt.opts)
			if apperr.KindOf(err) != tt.want {
				t.Errorf("error kind = %v, want %v", apperr.KindOf(err), tt.want)
			}
		})
	}
}

func TestEndVehicleAssignment(t *testing.T) {
	gdb := openTestDB(t)
	quarry, vehicleID, driverID, shiftID := seedPairing(t, gdb)

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	a, err := AssignVehicle(gdb, AssignOpts{
		VehicleID: vehicleID,
		DriverID:  driverID,
		ShiftID:   shiftID,
		QuarryID:  quarry.ID,
		StartTime: start,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := EndVehicleAssignment(gdb, a.ID, start.Add(8*time.Hour)); err != nil {
		t.Fatalf("EndVehicleAssignment() error: %v", err)
	}
	if err := EndVehicleAssignment(gdb, a.ID, start.Add(-time.Hour)); apperr.KindOf(err) != apperr.Validation {
		t.Errorf("end-before-start kind = %v, want Validation", apperr.KindOf(err))
	}
	if err := EndVehicleAssignment(gdb, 404, start); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("unknown pairing kind = %v, want NotFound", apperr.KindOf(err))
	}
}
