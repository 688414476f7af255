package vehicle

import (
	"testing"

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
		&models.TelematicsReading{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func TestCreate_DefaultsResolved(t *testing.T) {
	gdb := openTestDB(t)

	v, err := Create(gdb, CreateOpts{PlateNumber: "KZ 123 ABC"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if v.ID == 0 {
		t.Fatal("vehicle has no id")
	}
	if v.CompanyID == 0 || v.VehicleTypeID == 0 {
		t.Errorf("defaults not resolved: company=%d type=%d", v.CompanyID, v.VehicleTypeID)
	}
	if v.Status != "active" {
		t.Errorf("status = %q, want active", v.Status)
	}

	// Omitting the refs again must converge on the same defaults.
	v2, err := Create(gdb, CreateOpts{PlateNumber: "KZ 456 DEF"})
	if err != nil {
		t.Fatal(err)
	}
	if v2.CompanyID != v.CompanyID || v2.VehicleTypeID != v.VehicleTypeID {
		t.Errorf("second create got company=%d type=%d, want %d/%d",
			v2.CompanyID, v2.VehicleTypeID, v.CompanyID, v.VehicleTypeID)
	}
}

func TestCreate_MissingPlate(t *testing.T) {
	gdb := openTestDB(t)

	_, err := Create(gdb, CreateOpts{})
	if apperr.KindOf(err) != apperr.Validation {
		t.Errorf("error kind = %v, want Validation", apperr.KindOf(err))
	}
}

func TestCreate_DuplicatePlate(t *testing.T) {
	gdb := openTestDB(t)

	if _, err := Create(gdb, CreateOpts{PlateNumber: "KZ 123 ABC"}); err != nil {
		t.Fatal(err)
	}
	_, err := Create(gdb, CreateOpts{PlateNumber: "KZ 123 ABC"})
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("error kind = %v, want Conflict", apperr.KindOf(err))
	}

	// A fresh plate still goes through and is immediately readable.
	v, err := Create(gdb, CreateOpts{PlateNumber: "KZ 999 ZZZ"})
	if err != nil {
		t.Fatalf("fresh plate: %v", err)
	}
	got, err := Get(gdb, v.ID)
	if err != nil {
		t.Fatalf("Get() after create: %v", err)
	}
	if got.PlateNumber != "KZ 999 ZZZ" {
		t.Errorf("plate = %q", got.PlateNumber)
	}
}

func TestCreate_DuplicateVIN(t *testing.T) {
	gdb := openTestDB(t)

	if _, err := Create(gdb, CreateOpts{PlateNumber: "A1", VIN: "VIN0001"}); err != nil {
		t.Fatal(err)
	}
	_, err := Create(gdb, CreateOpts{PlateNumber: "A2", VIN: "VIN0001"})
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("error kind = %v, want Conflict", apperr.KindOf(err))
	}

	// Vehicles without a VIN store NULL and never collide.
	if _, err := Create(gdb, CreateOpts{PlateNumber: "A3"}); err != nil {
		t.Fatalf("first no-VIN create: %v", err)
	}
	if _, err := Create(gdb, CreateOpts{PlateNumber: "A4"}); err != nil {
		t.Fatalf("second no-VIN create: %v", err)
	}
}

func TestCreate_UnknownCompany(t *testing.T) {
	gdb := openTestDB(t)

	_, err := Create(gdb, CreateOpts{PlateNumber: "B1", CompanyID: 42})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("error kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	gdb := openTestDB(t)

	v, err := Create(gdb, CreateOpts{PlateNumber: "C1", VIN: "VINC1"})
	if err != nil {
		t.Fatal(err)
	}

	status := "maintenance"
	if err := Update(gdb, v.ID, Patch{Status: &status}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	got, err := Get(gdb, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "maintenance" {
		t.Errorf("status = %q, want maintenance", got.Status)
	}
	// Untouched fields survive the patch.
	if got.PlateNumber != "C1" {
		t.Errorf("plate = %q, want C1", got.PlateNumber)
	}
	if got.VIN == nil || *got.VIN != "VINC1" {
		t.Errorf("vin = %v, want VINC1", got.VIN)
	}
}

func TestUpdate_ClearCurrentQuarry(t *testing.T) {
	gdb := openTestDB(t)

	company, err := refdata.CreateCompany(gdb, refdata.CompanyOpts{Name: "Granite Corp"})
	if err != nil {
		t.Fatal(err)
	}
	quarry, err := refdata.CreateQuarry(gdb, refdata.QuarryOpts{CompanyID: company.ID, Name: "North Pit"})
	if err != nil {
		t.Fatal(err)
	}

	v, err := Create(gdb, CreateOpts{PlateNumber: "D1", CurrentQuarryID: &quarry.ID})
	if err != nil {
		t.Fatal(err)
	}
	if v.CurrentQuarryID == nil {
		t.Fatal("current quarry not set")
	}

	if err := Update(gdb, v.ID, Patch{ClearCurrentQuarry: true}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, err := Get(gdb, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentQuarryID != nil {
		t.Errorf("current_quarry_id = %v, want NULL", *got.CurrentQuarryID)
	}
}

func TestUpdate_ClearVIN(t *testing.T) {
	gdb := openTestDB(t)

	first, err := Create(gdb, CreateOpts{PlateNumber: "V1", VIN: "VINV1"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Create(gdb, CreateOpts{PlateNumber: "V2", VIN: "VINV2"})
	if err != nil {
		t.Fatal(err)
	}

	// Clearing both VINs stores NULL, so the unique index never sees two
	// empty strings.
	empty := ""
	if err := Update(gdb, first.ID, Patch{VIN: &empty}); err != nil {
		t.Fatalf("clear first vin: %v", err)
	}
	if err := Update(gdb, second.ID, Patch{VIN: &empty}); err != nil {
		t.Fatalf("clear second vin: %v", err)
	}

	got, err := Get(gdb, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.VIN != nil {
		t.Errorf("vin = %q, want NULL", *got.VIN)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	gdb := openTestDB(t)

	status := "inactive"
	err := Update(gdb, 404, Patch{Status: &status})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("error kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestUpdate_EmptyPatch(t *testing.T) {
	gdb := openTestDB(t)

	// An empty patch still resolves the id: unknown id is NotFound,
	// known id is a successful no-op.
	err := Update(gdb, 404, Patch{})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("empty patch on unknown id kind = %v, want NotFound", apperr.KindOf(err))
	}

	v, err := Create(gdb, CreateOpts{PlateNumber: "EP1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := Update(gdb, v.ID, Patch{}); err != nil {
		t.Errorf("empty patch on existing vehicle = %v, want nil", err)
	}
	got, err := Get(gdb, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.PlateNumber != "EP1" || got.Status != "active" {
		t.Errorf("empty patch changed the row: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	gdb := openTestDB(t)

	v, err := Create(gdb, CreateOpts{PlateNumber: "E1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := Delete(gdb, v.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := Get(gdb, v.ID); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("Get() after delete kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestDelete_NotFound(t *testing.T) {
	gdb := openTestDB(t)

	err := Delete(gdb, 404)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("error kind = %v, want NotFound", apperr.KindOf(err))
	}
}

func TestDelete_RestrictedByTelemetry(t *testing.T) {
	gdb := openTestDB(t)

	v, err := Create(gdb, CreateOpts{PlateNumber: "F1"})
	if err != nil {
		t.Fatal(err)
	}
	reading := models.TelematicsReading{VehicleID: v.ID}
	if err := gdb.Create(&reading).Error; err != nil {
		t.Fatal(err)
	}

	err = Delete(gdb, v.ID)
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("error kind = %v, want Conflict", apperr.KindOf(err))
	}
	// The vehicle must still be there.
	if _, err := Get(gdb, v.ID); err != nil {
		t.Errorf("vehicle removed despite restriction: %v", err)
	}
}

func TestList(t *testing.T) {
	gdb := openTestDB(t)

	plates := []string{"L1", "L2", "L3"}
	for _, p := range plates {
		if _, err := Create(gdb, CreateOpts{PlateNumber: p}); err != nil {
			t.Fatal(err)
		}
	}

	vehicles, err := List(gdb)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(vehicles) != len(plates) {
		t.Fatalf("List() returned %d vehicles, want %d", len(vehicles), len(plates))
	}
	for i, p := range plates {
		if vehicles[i].PlateNumber != p {
			t.Errorf("vehicles[%d].PlateNumber = %q, want %q", i, vehicles[i].PlateNumber, p)
		}
	}
}
