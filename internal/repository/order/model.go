package order

import "time"

type OrderDB struct {
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
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type OrderModifyDB struct {
	ID                 *string
	OrderNumber        *string
	SenderID           *string
	CourierID          *string
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
	Status             *string
}
