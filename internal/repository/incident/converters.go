package incident

import (
	"dispatch/internal/entities"
)

func ToDomain(i *IncidentDB) *entities.Incident {
	if i == nil {
		return nil
	}

	incident := &entities.Incident{
		ID:                  i.ID,
		OrderID:             i.OrderID,
		CourierID:           i.CourierID,
		Type:                entities.IncidentType(i.Type),
		Description:         i.Description,
		PhotoURL:            i.PhotoURL,
		Status:              entities.IncidentStatusType(i.Status),
		OrderStatusAtReport: entities.OrderStatusType(i.OrderStatusAtReport),
		AdminNotes:          i.AdminNotes,
		NewCourierID:        i.NewCourierID,
		ResolvedBy:          i.ResolvedBy,
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
	}
	if i.Decision != nil {
		decision := entities.IncidentDecision(*i.Decision)
		incident.Decision = &decision
	}

	return incident
}

func FromDomainModify(incidentModify *entities.IncidentModify) *IncidentModifyDB {
	if incidentModify == nil {
		return nil
	}

	incidentDB := &IncidentModifyDB{
		ID:           incidentModify.ID,
		OrderID:      incidentModify.OrderID,
		CourierID:    incidentModify.CourierID,
		Description:  incidentModify.Description,
		PhotoURL:     incidentModify.PhotoURL,
		AdminNotes:   incidentModify.AdminNotes,
		NewCourierID: incidentModify.NewCourierID,
		ResolvedBy:   incidentModify.ResolvedBy,
	}

	if incidentModify.Type != nil {
		incidentType := incidentModify.Type.String()
		incidentDB.Type = &incidentType
	}
	if incidentModify.Status != nil {
		status := incidentModify.Status.String()
		incidentDB.Status = &status
	}
	if incidentModify.OrderStatusAtReport != nil {
		status := incidentModify.OrderStatusAtReport.String()
		incidentDB.OrderStatusAtReport = &status
	}
	if incidentModify.Decision != nil {
		decision := incidentModify.Decision.String()
		incidentDB.Decision = &decision
	}

	return incidentDB
}

func ToDomainList(incidentsDB []IncidentDB) []entities.Incident {
	if len(incidentsDB) == 0 {
		return []entities.Incident{}
	}

	result := make([]entities.Incident, len(incidentsDB))
	for i, incidentDB := range incidentsDB {
		result[i] = *ToDomain(&incidentDB)
	}
	return result
}
