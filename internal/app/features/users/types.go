// internal/app/features/users/types.go
package users

import (
	"time"

	"github.com/dalemusser/opshub/internal/app/system/status"
	"github.com/dalemusser/opshub/internal/domain/models"
)

// View is the public shape of a user. The password hash is not part of
// the model's JSON output either, but mapping through a typed view
// keeps the wire format explicit.
type View struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	FirstName  string    `json:"firstName,omitempty"`
	LastName   string    `json:"lastName,omitempty"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	Site       string    `json:"site"`
	Phone      string    `json:"phone,omitempty"`
	ReportsTo  string    `json:"reportsTo,omitempty"`
	IsActive   bool      `json:"isActive"`
	Status     string    `json:"status"`
	JoinDate   time.Time `json:"joinDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func userView(u models.User) View {
	return View{
		ID:         u.ID.Hex(),
		Email:      u.Email,
		Username:   u.Username,
		Name:       u.Name,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		Department: u.Department,
		Site:       u.Site,
		Phone:      u.Phone,
		ReportsTo:  u.ReportsTo,
		IsActive:   u.IsActive,
		Status:     status.FromActive(u.IsActive),
		JoinDate:   u.JoinDate,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func userViews(users []models.User) []View {
	views := make([]View, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	return views
}
