package domain

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User is owned by the auth boundary. Orders reference it by email, which
// acts as the stable business key; the store-internal node id is never used.
type User struct {
	Email        string
	Name         string
	PasswordHash string
	Role         UserRole
}

// Purchaser is the projection of a User safe to embed in order views.
type Purchaser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
