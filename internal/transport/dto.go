package transport

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/hr_notify/internal/models"
)

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResendActivationRequest struct {
	Email string `json:"email"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type Profile struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	IsStaff bool    `json:"isStaff"`
	Avatar  *string `json:"avatar,omitempty"`
}

type AccountSummary struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

func NewProfile(a *models.Account) Profile {
	return Profile{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		IsStaff: a.IsStaff,
		Avatar:  a.Avatar,
	}
}

func NewAccountSummaries(accounts []models.Account) []AccountSummary {
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountSummary{Name: a.Name, Email: a.Email, Active: a.Active})
	}
	return out
}

// Fixed response bodies.
var (
	Success        = echo.Map{"success": true}
	NotSuccess     = echo.Map{"success": false, "message": "Operation failed"}
	EmailExists    = echo.Map{"email": "Email already exists"}
	EmailNotFound  = echo.Map{"email": "User email not found"}
	PwdIncorrect   = echo.Map{"password": "Password incorrect"}
	NotActive      = echo.Map{"email": "Account is not activated"}
	UserNotFound   = echo.Map{"user": "User not found"}
	IsActive       = echo.Map{"email": "Account has been activated"}
	ActivationFail = echo.Map{"token": "The token is invalid. Please re-activate your email."}
	Unauthorized   = echo.Map{"unauthorized": "Staff access required"}
)
