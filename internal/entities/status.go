package entities

type PickupStatus string

const (
	StatusRequested PickupStatus = "REQUESTED"
	StatusWaiting   PickupStatus = "WAITING"
	StatusAccepted  PickupStatus = "ACCEPTED"
	StatusPreparing PickupStatus = "PREPARING"
	StatusReady     PickupStatus = "READY"
	StatusCompleted PickupStatus = "COMPLETED"
	StatusRejected  PickupStatus = "REJECTED"
	StatusCanceled  PickupStatus = "CANCELED"
)

// allStatuses в порядке жизненного цикла, используется для стабильного вывода статистики.
var allStatuses = []PickupStatus{
	StatusRequested,
	StatusWaiting,
	StatusAccepted,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
	StatusRejected,
	StatusCanceled,
}

func AllStatuses() []PickupStatus {
	out := make([]PickupStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func ParsePickupStatus(s string) (PickupStatus, bool) {
	for _, status := range allStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

func (s PickupStatus) String() string {
	return string(s)
}

func (s PickupStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCanceled:
		return true
	default:
		return false
	}
}

type ActorRole string

const (
	RoleCustomer ActorRole = "CUSTOMER"
	RolePharmacy ActorRole = "PHARMACY"
	RoleSystem   ActorRole = "SYSTEM"
)

func ParseActorRole(s string) (ActorRole, bool) {
	switch ActorRole(s) {
	case RoleCustomer, RolePharmacy, RoleSystem:
		return ActorRole(s), true
	default:
		return "", false
	}
}

func (r ActorRole) String() string {
	return string(r)
}

// Actor - уже разрешённая внешней системой идентичность вызывающего.
// Для SYSTEM ID равен 0.
type Actor struct {
	ID   int64
	Role ActorRole
}

var SystemActor = Actor{Role: RoleSystem}
