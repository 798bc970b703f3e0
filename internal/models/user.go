package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system
type Role string

const (
	RoleAdmin Role = "admin"
	RoleBuyer Role = "buyer"
)

// BuyerProfile holds a user's car-shopping preferences. It seeds the
// default listings search and is updated independently of credentials.
type BuyerProfile struct {
	BudgetMin    int    `bson:"budget_min" json:"budgetMin"`
	BudgetMax    int    `bson:"budget_max" json:"budgetMax"`
	Make         string `bson:"make" json:"make"`
	Model        string `bson:"model,omitempty" json:"model,omitempty"`
	ZipCode      string `bson:"zip_code" json:"zipCode"`
	State        string `bson:"state" json:"state"`
	YearMin      int    `bson:"year_min" json:"yearMin"`
	YearMax      int    `bson:"year_max" json:"yearMax"`
	ComfortLevel string `bson:"comfort_level" json:"comfortLevel"` // "sedan", "suv", "sports", ...
	PrimaryUse   string `bson:"primary_use" json:"primaryUse"`
}

// SearchRecord is one timestamped snapshot of the filters a user searched with.
type SearchRecord struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Make      string    `bson:"make,omitempty" json:"make,omitempty"`
	Model     string    `bson:"model,omitempty" json:"model,omitempty"`
	Year      int       `bson:"year,omitempty" json:"year,omitempty"`
	MaxPrice  float64   `bson:"max_price,omitempty" json:"maxPrice,omitempty"`
}

// User represents a user in the system
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
	Role          Role               `bson:"role" json:"role"`
	Name          string             `bson:"name" json:"name"`
	Profile       BuyerProfile       `bson:"profile" json:"profile"`
	SearchHistory []SearchRecord     `bson:"search_history,omitempty" json:"searchHistory,omitempty"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	LastLogin     *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Name     string       `json:"name"`
	Role     Role         `json:"role"`
	Profile  BuyerProfile `json:"profile"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleBuyer:
		return true
	default:
		return false
	}
}

// HasPermission checks if a user has permission for a specific action
func (u *User) HasPermission(action string) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleBuyer:
		return action != "delete_user" && action != "manage_users"
	default:
		return false
	}
}
