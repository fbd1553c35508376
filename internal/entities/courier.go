package entities

import "time"

// Courier пользователь из внешнего справочника, нужен только для проверок назначения.
type Courier struct {
	ID        string
	Name      string
	Phone     string
	Role      ActorRole
	Active    bool
	Presence  CourierPresenceType
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Courier) IsEligible() bool {
	return c != nil && c.Role == RoleCourier && c.Active
}

type CourierPresenceType string

const (
	CourierOnline  CourierPresenceType = "online"
	CourierOffline CourierPresenceType = "offline"
)

func (t CourierPresenceType) String() string {
	return string(t)
}

type CourierFilter struct {
	EligibleOnly bool
	ExcludeID    *string
}
