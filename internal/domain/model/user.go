package model

import (
	"net/mail"
	"strings"
	"time"
)

// Role values are the wire contract of the original platform API: admin,
// merchant ("comerciante") and route creator ("rutero").
const (
	RoleAdmin        = "admin"
	RoleMerchant     = "comerciante"
	RoleRouteCreator = "rutero"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMerchant, RoleRouteCreator:
		return true
	}
	return false
}

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"nombre"`
	Email          string    `json:"email"`
	Handle         string    `json:"handle"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"rol"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsAdmin reports whether the account is protected from deletion.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NewUserInput is the create-user payload. Field names follow the API
// contract the admin console submits.
type NewUserInput struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

// Normalize trims whitespace and applies the merchant default for an empty
// role. Call before Validate.
func (in *NewUserInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = RoleMerchant
	}
}

// Validate checks every field and returns one message per offending field,
// keyed by JSON field name. An empty map means the input is acceptable.
func (in *NewUserInput) Validate() map[string]string {
	fields := map[string]string{}
	if len([]rune(in.Name)) < 3 {
		fields["nombre"] = "name must be at least 3 characters"
	}
	if !validEmail(in.Email) {
		fields["email"] = "email address is not valid"
	}
	if len(in.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if !ValidRole(in.Role) {
		fields["rol"] = "role must be one of admin, comerciante, rutero"
	}
	return fields
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	// Reject RFC 5322 display-name forms, the API only takes bare addresses.
	return err == nil && addr.Address == email
}
