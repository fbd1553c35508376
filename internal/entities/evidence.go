package entities

import "time"

type DeliveryEvidence struct {
	ID                string
	OrderID           string
	CourierID         string
	RecipientName     string
	RecipientIDNumber string
	SignatureURL      string
	Notes             *string
	CreatedAt         time.Time
}

type DeliveryEvidenceModify struct {
	ID                *string
	OrderID           *string
	CourierID         *string
	RecipientName     *string
	RecipientIDNumber *string
	SignatureURL      *string
	Notes             *string
}

// DeliveryProof то, что курьер собирает у получателя.
type DeliveryProof struct {
	OrderID           string
	RecipientName     string
	RecipientIDNumber string
	Signature         []byte
	Notes             *string
}
