package dto

import "time"

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
	// ServerTime часы API: клиенты сверяют с ними окна дедлайнов
	ServerTime *time.Time `json:"server_time,omitempty"`
}

type Order struct {
	ID                 string    `json:"id"`
	OrderNumber        string    `json:"order_number"`
	SenderID           string    `json:"sender_id"`
	CourierID          *string   `json:"courier_id"`
	PickupAddress      string    `json:"pickup_address"`
	PickupPostalCode   string    `json:"pickup_postal_code"`
	DeliveryAddress    string    `json:"delivery_address"`
	DeliveryPostalCode string    `json:"delivery_postal_code"`
	RecipientName      string    `json:"recipient_name"`
	RecipientPhone     string    `json:"recipient_phone"`
	PickupAt           time.Time `json:"pickup_at"`
	DeliveryAt         time.Time `json:"delivery_at"`
	Notes              string    `json:"notes"`
	Status             string    `json:"status"`
	EffectiveStatus    string    `json:"effective_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
}

type CreateOrderRequest struct {
	// SenderID обязателен только для диспетчера
	SenderID           string    `json:"sender_id"`
	PickupAddress      string    `json:"pickup_address"`
	PickupPostalCode   string    `json:"pickup_postal_code"`
	DeliveryAddress    string    `json:"delivery_address"`
	DeliveryPostalCode string    `json:"delivery_postal_code"`
	RecipientName      string    `json:"recipient_name"`
	RecipientPhone     string    `json:"recipient_phone"`
	PickupAt           time.Time `json:"pickup_at"`
	DeliveryAt         time.Time `json:"delivery_at"`
	Notes              string    `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type CourierRequest struct {
	CourierID string `json:"courier_id"`
}

type Courier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
	Presence string `json:"presence"`
}

type CourierList struct {
	Couriers []Courier `json:"couriers"`
}

type PresenceRequest struct {
	Presence string `json:"presence"`
}

type EvidenceRequest struct {
	RecipientName     string `json:"recipient_name"`
	RecipientIDNumber string `json:"recipient_id_number"`
	// Signature PNG или JPEG в base64
	Signature []byte  `json:"signature"`
	Notes     *string `json:"notes,omitempty"`
}

type Evidence struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	CourierID         string    `json:"courier_id"`
	RecipientName     string    `json:"recipient_name"`
	RecipientIDNumber string    `json:"recipient_id_number"`
	SignatureURL      string    `json:"signature_url"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
}

type EvidenceList struct {
	Evidence []Evidence `json:"evidence"`
}

type IncidentReportRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Photo       []byte `json:"photo,omitempty"`
}

type IncidentResolveRequest struct {
	Decision     string  `json:"decision"`
	Notes        string  `json:"notes"`
	NewCourierID *string `json:"new_courier_id,omitempty"`
}

type Incident struct {
	ID                  string    `json:"id"`
	OrderID             string    `json:"order_id"`
	CourierID           string    `json:"courier_id"`
	Type                string    `json:"type"`
	Description         string    `json:"description"`
	PhotoURL            *string   `json:"photo_url"`
	Status              string    `json:"status"`
	OrderStatusAtReport string    `json:"order_status_at_report"`
	AdminNotes          *string   `json:"admin_notes"`
	Decision            *string   `json:"decision"`
	NewCourierID        *string   `json:"new_courier_id"`
	ResolvedBy          *string   `json:"resolved_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type IncidentList struct {
	Incidents []Incident `json:"incidents"`
}

type OrderEvent struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

type OrderEventList struct {
	Events []OrderEvent `json:"events"`
}

type Stats struct {
	Role           string `json:"role"`
	ActiveOrders   *int64 `json:"active_orders,omitempty"`
	ActiveCouriers *int64 `json:"active_couriers,omitempty"`
	DeliveredToday *int64 `json:"delivered_today,omitempty"`
	Total          *int64 `json:"total,omitempty"`
	Active         *int64 `json:"active,omitempty"`
	Completed      *int64 `json:"completed,omitempty"`
	Assigned       *int64 `json:"assigned,omitempty"`
	CompletedToday *int64 `json:"completed_today,omitempty"`
	InTransit      *int64 `json:"in_transit,omitempty"`
}
