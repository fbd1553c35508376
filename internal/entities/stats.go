package entities

type DispatcherStats struct {
	ActiveOrders   int64
	ActiveCouriers int64
	DeliveredToday int64
}

type SenderStats struct {
	Total     int64
	Active    int64
	Completed int64
}

type CourierStats struct {
	Assigned       int64
	CompletedToday int64
	InTransit      int64
}

// Stats заполняется только та часть, что соответствует роли.
type Stats struct {
	Role       ActorRole
	Dispatcher *DispatcherStats
	Sender     *SenderStats
	Courier    *CourierStats
}
