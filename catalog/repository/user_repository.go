package repository

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/diyashah3011/SmartPriceMonitor/catalog/entity"
)

// SessionTTL is how long issued login tokens stay valid.
const SessionTTL = 24 * time.Hour

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.First(&u, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *entity.User) error {
	return r.db.Save(u).Error
}

// DeleteByEmail removes a customer account. The system admin is protected.
func (r *UserRepository) DeleteByEmail(email string) error {
	res := r.db.Where("email = ? AND is_system_admin = ?", email, false).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) List() ([]entity.User, error) {
	var users []entity.User
	err := r.db.Order("user_id").Find(&users).Error
	return users, err
}

func (r *UserRepository) CountByRole(role string) (int64, error) {
	var n int64
	err := r.db.Model(&entity.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// --- sessions ---

// CreateSession issues a new bearer token for the user.
func (r *UserRepository) CreateSession(userID uint) (*entity.SessionToken, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	s := &entity.SessionToken{
		Token:     hex.EncodeToString(buf),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := r.db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// FindActiveToken resolves a bearer token to its user. Expired or revoked
// tokens do not resolve.
func (r *UserRepository) FindActiveToken(token string) (*entity.User, error) {
	var s entity.SessionToken
	err := r.db.First(&s, "token = ? AND revoked = ?", token, false).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(s.ExpiresAt) {
		return nil, ErrNotFound
	}
	return r.FindByID(s.UserID)
}

// RevokeSession invalidates a token (logout).
func (r *UserRepository) RevokeSession(token string) error {
	return r.db.Model(&entity.SessionToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}

// --- wishlist ---

func (r *UserRepository) Wishlist(userID uint) ([]entity.WishlistItem, error) {
	var items []entity.WishlistItem
	err := r.db.Where("user_id = ?", userID).Order("item_id").Find(&items).Error
	return items, err
}

func (r *UserRepository) AddToWishlist(userID, productID uint) error {
	var existing entity.WishlistItem
	err := r.db.First(&existing, "user_id = ? AND product_id = ?", userID, productID).Error
	if err == nil {
		return nil // already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&entity.WishlistItem{UserID: userID, ProductID: productID}).Error
}

func (r *UserRepository) RemoveFromWishlist(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.WishlistItem{}).Error
}

func (r *UserRepository) ClearWishlist(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.WishlistItem{}).Error
}

// --- cart ---

func (r *UserRepository) Cart(userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.db.Where("user_id = ?", userID).Order("item_id").Find(&items).Error
	return items, err
}

func (r *UserRepository) AddToCart(item *entity.CartItem) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return r.db.Create(item).Error
}

func (r *UserRepository) RemoveFromCart(userID, itemID uint) error {
	res := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&entity.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearCart(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}
