package entities

import "time"

type Order struct {
	ID                 string
	OrderNumber        string
	SenderID           string
	CourierID          *string
	PickupAddress      string
	PickupPostalCode   string
	DeliveryAddress    string
	DeliveryPostalCode string
	RecipientName      string
	RecipientPhone     string
	PickupAt           time.Time
	DeliveryAt         time.Time
	Notes              string
	Status             OrderStatusType
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OrderView заказ вместе с вычисленным статусом для очередей.
type OrderView struct {
	Order
	EffectiveStatus OrderStatusType
}

type OrderStatusType string

const (
	OrderPending          OrderStatusType = "pending"
	OrderAssigned         OrderStatusType = "assigned"
	OrderGoingToPickup    OrderStatusType = "going_to_pickup"
	OrderInTransit        OrderStatusType = "in_transit"
	OrderIncidentReported OrderStatusType = "incident_reported"
	OrderDelivered        OrderStatusType = "delivered"
	OrderCancelled        OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// HoldsCourier статусы, в которых у заказа обязан быть курьер.
func (s OrderStatusType) HoldsCourier() bool {
	switch s {
	case OrderAssigned, OrderGoingToPickup, OrderInTransit, OrderIncidentReported:
		return true
	default:
		return false
	}
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPending, OrderAssigned, OrderGoingToPickup, OrderInTransit,
		OrderIncidentReported, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// ActiveStatuses заказы "в работе".
var ActiveStatuses = []OrderStatusType{OrderPending, OrderAssigned, OrderGoingToPickup, OrderInTransit}

type StatusGroup string

const (
	GroupPending  StatusGroup = "pending"
	GroupPickedUp StatusGroup = "picked_up"
	GroupIncident StatusGroup = "incident_reported"
	GroupFinished StatusGroup = "finished"
)

func (g StatusGroup) Statuses() ([]OrderStatusType, bool) {
	switch g {
	case GroupPending:
		return []OrderStatusType{OrderPending, OrderAssigned, OrderGoingToPickup}, true
	case GroupPickedUp:
		return []OrderStatusType{OrderInTransit}, true
	case GroupIncident:
		return []OrderStatusType{OrderIncidentReported}, true
	case GroupFinished:
		return []OrderStatusType{OrderDelivered, OrderCancelled}, true
	default:
		return nil, false
	}
}

// OrderModify частичное обновление заказа, nil поля не трогаем.
type OrderModify struct {
	ID          *string
	OrderNumber *string
	SenderID    *string
	CourierID   *string
	// ClearCourier обнуляет courier_id, имеет приоритет над CourierID
	ClearCourier       bool
	PickupAddress      *string
	PickupPostalCode   *string
	DeliveryAddress    *string
	DeliveryPostalCode *string
	RecipientName      *string
	RecipientPhone     *string
	PickupAt           *time.Time
	DeliveryAt         *time.Time
	Notes              *string
	Status             *OrderStatusType
}

// OrderFilter Statuses и Group сравниваются со статусом для очередей, а не с хранимым.
type OrderFilter struct {
	Statuses []OrderStatusType
	// Group раскрывается сервисом в Statuses
	Group     StatusGroup
	SenderID  *string
	CourierID *string
	IDs       []string
}

type OrderDraft struct {
	SenderID           string
	PickupAddress      string
	PickupPostalCode   string
	DeliveryAddress    string
	DeliveryPostalCode string
	RecipientName      string
	RecipientPhone     string
	PickupAt           time.Time
	DeliveryAt         time.Time
	Notes              string
}
