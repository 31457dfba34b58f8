package models

// Role names used for authorization checks.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User is an account that can sign in to one business (tenant).
type User struct {
	ID           int    `json:"id"`
	BusinessID   int    `json:"business_id"`
	Username     string `json:"username"`
	Role         string `json:"role"` // admin | manager | cashier
	PasswordHash string `json:"-"`    // never serialized
}
