package entity

import (
	"time"

	"gorm.io/datatypes"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents portal_user table. Passwords are stored as-is: the portal
// ships demo accounts and simulated sign-in, credential security is
// explicitly out of scope.
type User struct {
	ID            uint           `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Email         string         `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Password      string         `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role          string         `gorm:"column:role;type:varchar(16);not null;default:user" json:"role"`
	IsSystemAdmin bool           `gorm:"column:is_system_admin;not null;default:false" json:"is_system_admin,omitempty"`
	Preferences   datatypes.JSON `gorm:"column:preferences" json:"preferences,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "portal_user"
}

// SessionToken represents user_session_token table: opaque bearer tokens
// issued on login.
type SessionToken struct {
	Token     string    `gorm:"column:token;type:varchar(64);primaryKey" json:"token"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	Revoked   bool      `gorm:"column:revoked;not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (SessionToken) TableName() string {
	return "user_session_token"
}

// WishlistItem represents user_wishlist_item table.
type WishlistItem struct {
	ID        uint      `gorm:"column:item_id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;index:idx_wishlist_user_product,unique;not null" json:"user_id"`
	ProductID uint      `gorm:"column:product_id;index:idx_wishlist_user_product,unique;not null" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (WishlistItem) TableName() string {
	return "user_wishlist_item"
}

// CartItem represents user_cart_item table. Seller and Price capture which
// offer was chosen at add-to-cart time.
type CartItem struct {
	ID        uint      `gorm:"column:item_id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ProductID uint      `gorm:"column:product_id;not null" json:"product_id"`
	Seller    string    `gorm:"column:seller;type:varchar(64);not null" json:"seller"`
	Price     int       `gorm:"column:price;not null;default:0" json:"price"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartItem) TableName() string {
	return "user_cart_item"
}
