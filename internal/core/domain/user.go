package domain

import (
	"regexp"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^05\d{8}$`)

// ValidPhone reports whether phone is a local mobile number (05XXXXXXXX).
func ValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

// Role is the access level of a user. Upper case is canonical.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalizes casing and reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User models a registered learner or administrator.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the verified claim set of one request's bearer token.
type Identity struct {
	UserID    int64
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
