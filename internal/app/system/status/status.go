// Package status holds the shared active/inactive lifecycle values used
// across directory records.
package status

const (
	Active   = "active"
	Inactive = "inactive"
)

// IsValid reports whether s is a recognized status value.
func IsValid(s string) bool {
	return s == Active || s == Inactive
}

// FromActive maps the stored is_active flag to its API label.
func FromActive(active bool) string {
	if active {
		return Active
	}
	return Inactive
}

// IsActive maps a status value back to the stored is_active flag.
// Callers must validate s with IsValid first.
func IsActive(s string) bool {
	return s == Active
}
