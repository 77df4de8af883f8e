package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired          = errors.New("user: id is required")
	ErrEmailRequired       = errors.New("user: email is required")
	ErrNameRequired        = errors.New("user: name is required")
	ErrPasswordHashMissing = errors.New("user: password hash is required")
	ErrInvalidRole         = errors.New("user: invalid role")
	ErrEmailAlreadyUsed    = errors.New("user: email already used")
	ErrNotFound            = errors.New("user: not found")
)

type ID string

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleGuest:
		return RoleGuest, nil
	case RoleHost:
		return RoleHost, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
)

type User struct {
	ID           ID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListParams struct {
	Query  string
	Limit  int
	Offset int
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	List(ctx context.Context, params ListParams) ([]*User, int, error)
}

type CreateParams struct {
	ID           ID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func NewUser(params CreateParams) (*User, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if params.PasswordHash == "" {
		return nil, ErrPasswordHashMissing
	}
	role := params.Role
	if role == "" {
		role = RoleGuest
	}
	if role != RoleGuest && role != RoleHost && role != RoleAdmin {
		return nil, ErrInvalidRole
	}
	now := params.CreatedAt.UTC()
	return &User{
		ID:           ID(id),
		Email:        email,
		Name:         name,
		PasswordHash: params.PasswordHash,
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) ChangeRole(role Role, now time.Time) error {
	if role != RoleGuest && role != RoleHost && role != RoleAdmin {
		return ErrInvalidRole
	}
	u.Role = role
	u.UpdatedAt = now.UTC()
	return nil
}

func (u *User) Suspend(now time.Time) {
	u.Status = StatusSuspended
	u.UpdatedAt = now.UTC()
}

func (u *User) Activate(now time.Time) {
	u.Status = StatusActive
	u.UpdatedAt = now.UTC()
}

func (u *User) Suspended() bool {
	return u.Status == StatusSuspended
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
