package entity

// Category represents catalog_category table. The eight seed categories are
// static reference data; admin-added ones carry Custom=true.
type Category struct {
	ID          string `gorm:"column:category_id;type:varchar(64);primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	ImageURL    string `gorm:"column:image_url;type:text" json:"image_url"`
	DealsLabel  string `gorm:"column:deals_label;type:varchar(128)" json:"deals_label"`
	Custom      bool   `gorm:"column:custom;not null;default:false" json:"custom"`
}

func (Category) TableName() string {
	return "catalog_category"
}
