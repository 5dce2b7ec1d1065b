package staff

import "github.com/google/uuid"

// Department is the staff category authorized to act on a kind of service
// request. Intake may route with a finer key (e.g. "floor-3" for a
// housekeeping team), so the type is open beyond the well-known constants.
type Department string

const (
	DepartmentKitchen      Department = "kitchen"
	DepartmentHousekeeping Department = "housekeeping"
	DepartmentReception    Department = "reception"
)

func (d Department) String() string {
	return string(d)
}

func (d Department) IsEmpty() bool {
	return d == ""
}

type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor identifies who is performing an operation. The identity provider is
// an external collaborator; the core only ever sees this explicit value,
// never ambient session state.
type Actor struct {
	ID         uuid.UUID
	Department Department
	Role       Role
}
