package evidence

import "time"

type EvidenceDB struct {
	ID                string
	OrderID           string
	CourierID         string
	RecipientName     string
	RecipientIDNumber string
	SignatureURL      string
	Notes             *string
	CreatedAt         time.Time
}

type EvidenceModifyDB struct {
	ID                *string
	OrderID           *string
	CourierID         *string
	RecipientName     *string
	RecipientIDNumber *string
	SignatureURL      *string
	Notes             *string
}
