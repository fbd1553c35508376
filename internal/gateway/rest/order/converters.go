package order

import (
	"net/url"

	"dispatch/internal/entities"
)

type listResponse struct {
	Orders []orderItem `json:"orders"`
}

type orderItem struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
}

func toIDs(resp *listResponse) []string {
	if resp == nil || len(resp.Orders) == 0 {
		return []string{}
	}

	ids := make([]string, 0, len(resp.Orders))
	for _, item := range resp.Orders {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func toQuery(filter entities.OrderFilter) url.Values {
	query := url.Values{}
	for _, status := range filter.Statuses {
		query.Add("status", status.String())
	}
	if filter.Group != "" {
		query.Set("group", string(filter.Group))
	}
	if filter.SenderID != nil {
		query.Set("sender_id", *filter.SenderID)
	}
	if filter.CourierID != nil {
		query.Set("courier_id", *filter.CourierID)
	}
	return query
}
