package dto

import (
	"time"

	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UserList struct {
	Items []UserProfile `json:"items"`
	Total int           `json:"total"`
}

func MapUserProfile(u *domainuser.User) UserProfile {
	return UserProfile{
		ID:        string(u.ID),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}
