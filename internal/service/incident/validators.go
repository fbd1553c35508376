package incident

import (
	"strings"
	"unicode/utf8"

	"dispatch/internal/entities"
)

const minDescriptionLength = 5

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func validateReport(report entities.IncidentReport) error {
	if !isValidID(report.OrderID) {
		return ErrInvalidOrderID
	}
	if !report.Type.IsValid() {
		return ErrUnknownIncidentType
	}
	if utf8.RuneCountInString(strings.TrimSpace(report.Description)) < minDescriptionLength {
		return ErrDescriptionTooShort
	}
	return nil
}

// validateResolution все проверки до начала записи.
func validateResolution(resolution entities.IncidentResolution) error {
	if !isValidID(resolution.IncidentID) {
		return ErrInvalidIncidentID
	}
	if resolution.Decision == "" {
		return entities.ErrMissingDecision
	}
	if !resolution.Decision.IsValid() {
		return ErrUnknownDecision
	}
	if resolution.Decision == entities.DecisionReassign &&
		(resolution.NewCourierID == nil || !isValidID(*resolution.NewCourierID)) {
		return entities.ErrMissingCourier
	}
	return nil
}

func isReportable(status entities.OrderStatusType) bool {
	return status == entities.OrderGoingToPickup || status == entities.OrderInTransit
}
