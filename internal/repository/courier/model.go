package courier

import "time"

type CourierDB struct {
	ID        string
	Name      string
	Phone     string
	Role      string
	Active    bool
	Presence  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
