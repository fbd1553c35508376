package entities

import "errors"

// Категории ошибок домена, конкретные ошибки пакетов оборачивают их через %w.
var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrWrongOrderState   = errors.New("wrong order state")
	ErrForbidden         = errors.New("forbidden")

	ErrIneligibleCourier = errors.New("ineligible courier")
	ErrAlreadyAssigned   = errors.New("order already assigned")
	ErrNoCurrentCourier  = errors.New("order has no current courier")
	ErrSameCourier       = errors.New("order already assigned to this courier")

	ErrAlreadyResolved = errors.New("incident already resolved")
	ErrMissingDecision = errors.New("missing resolution decision")
	ErrMissingCourier  = errors.New("missing new courier for reassignment")

	ErrStoreUnavailable = errors.New("store unavailable")
	ErrConflict         = errors.New("conflict")

	ErrOrderNotFound    = errors.New("order not found")
	ErrCourierNotFound  = errors.New("courier not found")
	ErrIncidentNotFound = errors.New("incident not found")
	ErrEvidenceNotFound = errors.New("delivery evidence not found")
)
