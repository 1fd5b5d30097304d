// Package repository implements gorm-backed data access for the catalog
// store. Engines never see these types, they get snapshots.
package repository

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
	"github.com/diyashah3011/SmartPriceMonitor/engine"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")

type ProductRepository struct {
	db *gorm.DB
}

var (
	productRepoMu        sync.Mutex
	productRepoInstances = map[*gorm.DB]*ProductRepository{}
)

// GetProductRepository returns a shared repository instance for the DB.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	productRepoMu.Lock()
	defer productRepoMu.Unlock()
	if r, ok := productRepoInstances[db]; ok {
		return r
	}
	r := NewProductRepository(db)
	productRepoInstances[db] = r
	return r
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindAll returns the whole catalog in insertion order.
func (r *ProductRepository) FindAll() ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Order("product_id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindByCategory(category string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Where("category = ?", category).Order("product_id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindTrending() ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Where("trending = ?", true).Order("product_id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *entity.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id uint) error {
	res := r.db.Delete(&entity.Product{}, "product_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Product{}).Count(&n).Error
	return n, err
}

func (r *ProductRepository) CountTrending() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Product{}).Where("trending = ?", true).Count(&n).Error
	return n, err
}

// CountByCategory returns product counts grouped by category id.
func (r *ProductRepository) CountByCategory() (map[string]int64, error) {
	rows, err := r.db.Model(&entity.Product{}).
		Select("category, COUNT(*) AS n").
		Group("category").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var cat string
		var n int64
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		out[cat] = n
	}
	return out, rows.Err()
}

// SetAvailability toggles one seller's offer on a product (the admin stock
// switch). An offer with no positive price stays unavailable. Sellers the
// product has no offer for are rejected with ErrNotFound.
func (r *ProductRepository) SetAvailability(id uint, seller string, available bool) (*entity.Product, error) {
	p, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	offers := p.OfferMap()
	o, ok := offers[seller]
	if !ok {
		return nil, ErrNotFound
	}
	o.Available = available && o.Price > 0
	offers[seller] = o
	if err := p.SetOffers(offers); err != nil {
		return nil, err
	}
	if err := r.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetTrending updates the trending flags in bulk; ids not listed are reset.
func (r *ProductRepository) SetTrending(ids []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Product{}).Where("trending = ?", true).
			Update("trending", false).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&entity.Product{}).Where("product_id IN ?", ids).
			Update("trending", true).Error
	})
}

// Snapshots returns the catalog as engine products.
func (r *ProductRepository) Snapshots() ([]engine.Product, error) {
	rows, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]engine.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].Snapshot()
	}
	return out, nil
}
