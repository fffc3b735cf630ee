// internal/app/features/supervisors/types.go
package supervisors

import (
	"net/http"
	"time"

	"github.com/dalemusser/opshub/internal/app/system/status"
	"github.com/dalemusser/opshub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// View is the public shape of a supervisor. It is built by a pure
// mapping function so the wire format is independent of the bson
// document layout.
type View struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Department       string    `json:"department"`
	ReportsTo        string    `json:"reportsTo,omitempty"`
	Site             string    `json:"site,omitempty"`
	Employees        int       `json:"employees"`
	Tasks            int       `json:"tasks"`
	AssignedProjects []string  `json:"assignedProjects"`
	IsActive         bool      `json:"isActive"`
	Status           string    `json:"status"`
	JoinDate         time.Time `json:"joinDate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func supervisorView(sup models.Supervisor) View {
	projects := sup.AssignedProjects
	if projects == nil {
		projects = []string{}
	}
	return View{
		ID:               sup.ID.Hex(),
		Name:             sup.Name,
		Email:            sup.Email,
		Phone:            sup.Phone,
		Department:       sup.Department,
		ReportsTo:        sup.ReportsTo,
		Site:             sup.Site,
		Employees:        sup.Employees,
		Tasks:            sup.Tasks,
		AssignedProjects: projects,
		IsActive:         sup.IsActive,
		Status:           status.FromActive(sup.IsActive),
		JoinDate:         sup.JoinDate,
		CreatedAt:        sup.CreatedAt,
		UpdatedAt:        sup.UpdatedAt,
	}
}

func supervisorViews(sups []models.Supervisor) []View {
	views := make([]View, 0, len(sups))
	for _, sup := range sups {
		views = append(views, supervisorView(sup))
	}
	return views
}

func newSupervisor(req createRequest) models.Supervisor {
	return models.Supervisor{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		ReportsTo:  req.ReportsTo,
		Site:       req.Site,
	}
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
