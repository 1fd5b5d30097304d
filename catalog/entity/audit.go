package entity

import "time"

// ActivityLog represents admin_activity_log table: one row per admin catalog
// action (Added / Updated / Deleted / Stock toggled).
type ActivityLog struct {
	ID          uint      `gorm:"column:log_id;primaryKey;autoIncrement" json:"id"`
	Action      string    `gorm:"column:action;type:varchar(32);not null" json:"action"`
	ProductName string    `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "admin_activity_log"
}

// PriceAlert represents user_price_alert table. The alert sweep marks a row
// triggered once the product's cheapest available price drops to the target.
type PriceAlert struct {
	ID          uint       `gorm:"column:alert_id;primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	ProductID   uint       `gorm:"column:product_id;index;not null" json:"product_id"`
	TargetPrice int        `gorm:"column:target_price;not null" json:"target_price"`
	Active      bool       `gorm:"column:active;not null;default:true" json:"active"`
	TriggeredAt *time.Time `gorm:"column:triggered_at" json:"triggered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (PriceAlert) TableName() string {
	return "user_price_alert"
}

// Feedback represents portal_feedback table (the star-rating widget).
type Feedback struct {
	ID        uint      `gorm:"column:feedback_id;primaryKey;autoIncrement" json:"id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Feedback) TableName() string {
	return "portal_feedback"
}

// AppFlag represents app_flag table: one-shot markers such as the seeding
// version, so startup migrations run exactly once.
type AppFlag struct {
	Name      string    `gorm:"column:name;type:varchar(64);primaryKey" json:"name"`
	Value     string    `gorm:"column:value;type:varchar(255)" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

func (AppFlag) TableName() string {
	return "app_flag"
}
