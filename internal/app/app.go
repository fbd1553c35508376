package app

import (
	"dispatch/internal/handlers/tasks/at_risk_sweep"
	assignmentService "dispatch/internal/service/assignment"
	courierService "dispatch/internal/service/courier"
	evidenceService "dispatch/internal/service/evidence"
	historyService "dispatch/internal/service/history"
	incidentService "dispatch/internal/service/incident"
	orderService "dispatch/internal/service/order"
	"dispatch/internal/watch"
	"dispatch/pkg/querier"
)

type Application struct {
	Orders      *orderService.Service
	Assignment  *assignmentService.Service
	Evidence    *evidenceService.Service
	Incidents   *incidentService.Service
	Couriers    *courierService.Courier
	History     *historyService.Service
	AtRiskSweep *at_risk_sweep.AtRiskSweep
	// Storage нужен healthcheck'у, сервисы получают репозитории
	Storage *querier.Querier
}

type KafkaWorkerApp struct {
	History *historyService.Service
	Storage *querier.Querier
}

type WatcherApp struct {
	Poller *watch.Poller
}
