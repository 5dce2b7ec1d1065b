package request

import "roomserve/internal/domain/staff"

type Kind string

const (
	KindFood         Kind = "food"
	KindHousekeeping Kind = "housekeeping"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindFood, KindHousekeeping:
		return true
	default:
		return false
	}
}

// DepartmentFor returns the home department that fulfills a kind of request.
func DepartmentFor(k Kind) staff.Department {
	switch k {
	case KindFood:
		return staff.DepartmentKitchen
	case KindHousekeeping:
		return staff.DepartmentHousekeeping
	default:
		return ""
	}
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusPreparing  Status = "preparing"
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusInProgress, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// statusChains define the only forward paths a request may take. Cancelled is
// handled separately: reachable from any non-terminal status.
var statusChains = map[Kind][]Status{
	KindFood:         {StatusPending, StatusPreparing, StatusInProgress, StatusDelivered},
	KindHousekeeping: {StatusPending, StatusInProgress, StatusCompleted},
}

// NextStatus returns the immediate successor of current in the kind's chain.
// ok is false when current is terminal, unknown, or not part of the chain.
func NextStatus(kind Kind, current Status) (Status, bool) {
	chain, found := statusChains[kind]
	if !found {
		return "", false
	}
	for i, s := range chain {
		if s == current {
			if i+1 < len(chain) {
				return chain[i+1], true
			}
			return "", false
		}
	}
	return "", false
}
