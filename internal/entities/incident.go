package entities

import "time"

type Incident struct {
	ID                  string
	OrderID             string
	CourierID           string
	Type                IncidentType
	Description         string
	PhotoURL            *string
	Status              IncidentStatusType
	OrderStatusAtReport OrderStatusType
	AdminNotes          *string
	Decision            *IncidentDecision
	NewCourierID        *string
	ResolvedBy          *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type IncidentType string

const (
	IncidentPackageNotReady      IncidentType = "package_not_ready"
	IncidentRecipientUnavailable IncidentType = "recipient_unavailable"
	IncidentWrongAddress         IncidentType = "wrong_address"
	IncidentDamagedPackage       IncidentType = "damaged_package"
	IncidentOther                IncidentType = "other"
)

func (t IncidentType) String() string {
	return string(t)
}

func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentPackageNotReady, IncidentRecipientUnavailable, IncidentWrongAddress,
		IncidentDamagedPackage, IncidentOther:
		return true
	default:
		return false
	}
}

type IncidentStatusType string

const (
	IncidentPending  IncidentStatusType = "pending"
	IncidentResolved IncidentStatusType = "resolved"
)

func (s IncidentStatusType) String() string {
	return string(s)
}

type IncidentDecision string

const (
	DecisionRetry         IncidentDecision = "retry"
	DecisionReturn        IncidentDecision = "return"
	DecisionReassign      IncidentDecision = "reassign"
	DecisionWaitingClient IncidentDecision = "waiting_client"
)

func (d IncidentDecision) String() string {
	return string(d)
}

func (d IncidentDecision) IsValid() bool {
	switch d {
	case DecisionRetry, DecisionReturn, DecisionReassign, DecisionWaitingClient:
		return true
	default:
		return false
	}
}

type IncidentModify struct {
	ID                  *string
	OrderID             *string
	CourierID           *string
	Type                *IncidentType
	Description         *string
	PhotoURL            *string
	Status              *IncidentStatusType
	OrderStatusAtReport *OrderStatusType
	AdminNotes          *string
	Decision            *IncidentDecision
	NewCourierID        *string
	ResolvedBy          *string
}

type IncidentFilter struct {
	OrderIDs  []string
	CourierID *string
	Status    *IncidentStatusType
}

type IncidentReport struct {
	OrderID     string
	Type        IncidentType
	Description string
	Photo       []byte
}

type IncidentResolution struct {
	IncidentID   string
	Decision     IncidentDecision
	Notes        string
	NewCourierID *string
}
