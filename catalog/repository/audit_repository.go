package repository

import (
	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Log appends an admin action to the audit trail.
func (r *ActivityLogRepository) Log(action, productName string) error {
	return r.db.Create(&entity.ActivityLog{Action: action, ProductName: productName}).Error
}

// Recent returns the latest entries, newest first.
func (r *ActivityLogRepository) Recent(limit int) ([]entity.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var logs []entity.ActivityLog
	err := r.db.Order("log_id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(f *entity.Feedback) error {
	return r.db.Create(f).Error
}

func (r *FeedbackRepository) List() ([]entity.Feedback, error) {
	var out []entity.Feedback
	err := r.db.Order("feedback_id DESC").Find(&out).Error
	return out, err
}

type FlagRepository struct {
	db *gorm.DB
}

func NewFlagRepository(db *gorm.DB) *FlagRepository {
	return &FlagRepository{db: db}
}

// Get returns the flag value, or "" when unset.
func (r *FlagRepository) Get(name string) (string, error) {
	var f entity.AppFlag
	err := r.db.First(&f, "name = ?", name).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return f.Value, nil
}

// Set writes a flag value, creating the row if needed.
func (r *FlagRepository) Set(name, value string) error {
	var f entity.AppFlag
	err := r.db.First(&f, "name = ?", name).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&entity.AppFlag{Name: name, Value: value}).Error
	}
	if err != nil {
		return err
	}
	f.Value = value
	return r.db.Save(&f).Error
}
