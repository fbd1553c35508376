package incident

import "time"

type IncidentDB struct {
	ID                  string
	OrderID             string
	CourierID           string
	Type                string
	Description         string
	PhotoURL            *string
	Status              string
	OrderStatusAtReport string
	AdminNotes          *string
	Decision            *string
	NewCourierID        *string
	ResolvedBy          *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type IncidentModifyDB struct {
	ID                  *string
	OrderID             *string
	CourierID           *string
	Type                *string
	Description         *string
	PhotoURL            *string
	Status              *string
	OrderStatusAtReport *string
	AdminNotes          *string
	Decision            *string
	NewCourierID        *string
	ResolvedBy          *string
}
