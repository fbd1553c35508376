package evidence

import "dispatch/internal/entities"

func ToDomain(e *EvidenceDB) *entities.DeliveryEvidence {
	if e == nil {
		return nil
	}
	return &entities.DeliveryEvidence{
		ID:                e.ID,
		OrderID:           e.OrderID,
		CourierID:         e.CourierID,
		RecipientName:     e.RecipientName,
		RecipientIDNumber: e.RecipientIDNumber,
		SignatureURL:      e.SignatureURL,
		Notes:             e.Notes,
		CreatedAt:         e.CreatedAt,
	}
}

func FromDomainModify(e *entities.DeliveryEvidenceModify) *EvidenceModifyDB {
	if e == nil {
		return nil
	}
	return &EvidenceModifyDB{
		ID:                e.ID,
		OrderID:           e.OrderID,
		CourierID:         e.CourierID,
		RecipientName:     e.RecipientName,
		RecipientIDNumber: e.RecipientIDNumber,
		SignatureURL:      e.SignatureURL,
		Notes:             e.Notes,
	}
}

func ToDomainList(evidenceDB []EvidenceDB) []entities.DeliveryEvidence {
	if len(evidenceDB) == 0 {
		return []entities.DeliveryEvidence{}
	}

	result := make([]entities.DeliveryEvidence, len(evidenceDB))
	for i, e := range evidenceDB {
		result[i] = *ToDomain(&e)
	}
	return result
}
