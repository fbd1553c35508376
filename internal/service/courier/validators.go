package courier

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidCourierID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isValidPresence(presence entities.CourierPresenceType) bool {
	switch presence {
	case entities.CourierOnline, entities.CourierOffline:
		return true
	default:
		return false
	}
}
