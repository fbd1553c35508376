package order

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func validateDraft(draft entities.OrderDraft) error {
	required := []string{
		draft.SenderID,
		draft.PickupAddress,
		draft.PickupPostalCode,
		draft.DeliveryAddress,
		draft.DeliveryPostalCode,
		draft.RecipientName,
		draft.RecipientPhone,
	}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrMissingFields
		}
	}

	if draft.PickupAt.IsZero() || draft.DeliveryAt.IsZero() {
		return ErrMissingFields
	}
	if draft.DeliveryAt.Before(draft.PickupAt) {
		return ErrInvalidSchedule
	}
	return nil
}
