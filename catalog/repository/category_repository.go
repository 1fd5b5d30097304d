package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.Order("category_id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.db.First(&c, "category_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert inserts or replaces a category by id.
func (r *CategoryRepository) Upsert(c *entity.Category) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		UpdateAll: true,
	}).Create(c).Error
}

// Delete removes a custom category. Seed categories are protected.
func (r *CategoryRepository) Delete(id string) error {
	res := r.db.Where("category_id = ? AND custom = ?", id, true).Delete(&entity.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EngineCategories converts rows into the engine's reference view.
func EngineCategories(rows []entity.Category) []engine.Category {
	out := make([]engine.Category, len(rows))
	for i, c := range rows {
		out[i] = engine.Category{ID: c.ID, Name: c.Name}
	}
	return out
}
