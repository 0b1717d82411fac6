package dto

import (
	"time"

	"github.com/wallfeed/wallfeed/internal/model"
)

// BirthDateFormat is the wire format for profile birth dates
const BirthDateFormat = "2006-01-02"

// UserSnapshot is the credential-stripped view of a profile returned to
// clients. Every profile field is present, defaults included; the password
// digest never leaves the service layer.
type UserSnapshot struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	About     string `json:"about"`
	BirthDate string `json:"birthDate"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// NewUserSnapshot builds the outward view of a profile record
func NewUserSnapshot(p *model.Profile) *UserSnapshot {
	return &UserSnapshot{
		ID:        p.ID,
		Email:     p.Email,
		Avatar:    p.Avatar,
		About:     p.About,
		BirthDate: time.Time(p.BirthDate).Format(BirthDateFormat),
		Phone:     p.Phone,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login
type AuthResponse struct {
	User         UserSnapshot `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
