package alert

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/catalog/repository"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, price int, available bool) {
	t.Helper()
	p := &entity.Product{ID: id, Name: "Widget", Category: "electronics"}
	err := p.SetOffers(map[string]engine.Offer{
		"amazon": {MRP: price * 2, Price: price, Rating: 4.0, Delivery: "1 day", Available: available},
	})
	if err != nil {
		t.Fatalf("SetOffers: %v", err)
	}
	if err := repository.NewProductRepository(db).Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestSweep_TriggersWhenTargetReached(t *testing.T) {
	db := testDB(t)
	seedProduct(t, db, 1, 900, true)

	alerts := repository.NewAlertRepository(db)
	if err := alerts.Create(&entity.PriceAlert{UserID: 1, ProductID: 1, TargetPrice: 1000}); err != nil {
		t.Fatalf("Create alert: %v", err)
	}

	res, err := Sweep(db, engine.New())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Evaluated != 1 || res.Triggered != 1 {
		t.Errorf("result = %+v, want 1 evaluated, 1 triggered", res)
	}

	remaining, err := alerts.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("active alerts after trigger = %d, want 0", len(remaining))
	}
	list, err := alerts.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].TriggeredAt == nil {
		t.Error("triggered alert should keep a trigger timestamp")
	}
}

func TestSweep_SkipsAboveTarget(t *testing.T) {
	db := testDB(t)
	seedProduct(t, db, 1, 1500, true)

	alerts := repository.NewAlertRepository(db)
	if err := alerts.Create(&entity.PriceAlert{UserID: 1, ProductID: 1, TargetPrice: 1000}); err != nil {
		t.Fatalf("Create alert: %v", err)
	}

	res, err := Sweep(db, engine.New())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Triggered != 0 {
		t.Errorf("Triggered = %d, want 0", res.Triggered)
	}
	remaining, _ := alerts.ListActive()
	if len(remaining) != 1 {
		t.Errorf("alert should stay active, got %d active", len(remaining))
	}
}

func TestSweep_IgnoresUnavailableOffers(t *testing.T) {
	db := testDB(t)
	seedProduct(t, db, 1, 500, false)

	alerts := repository.NewAlertRepository(db)
	if err := alerts.Create(&entity.PriceAlert{UserID: 1, ProductID: 1, TargetPrice: 1000}); err != nil {
		t.Fatalf("Create alert: %v", err)
	}

	res, err := Sweep(db, engine.New())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Triggered != 0 {
		t.Errorf("unavailable offer must not trigger, got %d", res.Triggered)
	}
}

func TestSweep_RetiresOrphanedAlerts(t *testing.T) {
	db := testDB(t)

	alerts := repository.NewAlertRepository(db)
	if err := alerts.Create(&entity.PriceAlert{UserID: 1, ProductID: 99, TargetPrice: 1000}); err != nil {
		t.Fatalf("Create alert: %v", err)
	}

	res, err := Sweep(db, engine.New())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Orphaned != 1 || res.Triggered != 0 {
		t.Errorf("result = %+v, want 1 orphaned, 0 triggered", res)
	}
	remaining, _ := alerts.ListActive()
	if len(remaining) != 0 {
		t.Errorf("orphaned alert should be retired, got %d active", len(remaining))
	}
}
