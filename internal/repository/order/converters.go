package order

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		SenderID:           o.SenderID,
		CourierID:          o.CourierID,
		PickupAddress:      o.PickupAddress,
		PickupPostalCode:   o.PickupPostalCode,
		DeliveryAddress:    o.DeliveryAddress,
		DeliveryPostalCode: o.DeliveryPostalCode,
		RecipientName:      o.RecipientName,
		RecipientPhone:     o.RecipientPhone,
		PickupAt:           o.PickupAt,
		DeliveryAt:         o.DeliveryAt,
		Notes:              o.Notes,
		Status:             entities.OrderStatusType(o.Status),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func FromDomainModify(orderModify *entities.OrderModify) *OrderModifyDB {
	if orderModify == nil {
		return nil
	}

	orderDB := &OrderModifyDB{
		ID:                 orderModify.ID,
		OrderNumber:        orderModify.OrderNumber,
		SenderID:           orderModify.SenderID,
		CourierID:          orderModify.CourierID,
		ClearCourier:       orderModify.ClearCourier,
		PickupAddress:      orderModify.PickupAddress,
		PickupPostalCode:   orderModify.PickupPostalCode,
		DeliveryAddress:    orderModify.DeliveryAddress,
		DeliveryPostalCode: orderModify.DeliveryPostalCode,
		RecipientName:      orderModify.RecipientName,
		RecipientPhone:     orderModify.RecipientPhone,
		PickupAt:           orderModify.PickupAt,
		DeliveryAt:         orderModify.DeliveryAt,
		Notes:              orderModify.Notes,
	}

	if orderModify.Status != nil {
		status := orderModify.Status.String()
		orderDB.Status = &status
	}

	return orderDB
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}

func statusStrings(statuses []entities.OrderStatusType) []string {
	result := make([]string, len(statuses))
	for i, status := range statuses {
		result[i] = status.String()
	}
	return result
}
