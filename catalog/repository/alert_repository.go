package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(a *entity.PriceAlert) error {
	a.Active = true
	return r.db.Create(a).Error
}

func (r *AlertRepository) ListByUser(userID uint) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	err := r.db.Where("user_id = ?", userID).Order("alert_id").Find(&alerts).Error
	return alerts, err
}

// ListActive returns every alert the sweep still has to evaluate.
func (r *AlertRepository) ListActive() ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	err := r.db.Where("active = ?", true).Order("alert_id").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) Delete(userID, alertID uint) error {
	res := r.db.Where("user_id = ? AND alert_id = ?", userID, alertID).Delete(&entity.PriceAlert{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkTriggered deactivates an alert and stamps the trigger time.
func (r *AlertRepository) MarkTriggered(alertID uint, at time.Time) error {
	return r.db.Model(&entity.PriceAlert{}).
		Where("alert_id = ?", alertID).
		Updates(map[string]interface{}{"active": false, "triggered_at": at}).Error
}
