package cmd

import (
	"log/slog"
	"strings"
	"time"

	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/carrierrepo"
	redisadapter "shipping/internal/adapters/out/redis"
	"shipping/internal/adapters/out/staticdir"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	"gorm.io/gorm"
)

// notifierInboxSize bounds the kafka notifier's in-memory queue.
const notifierInboxSize = 1024

// CompositionRoot wires adapters into use case handlers. It owns the
// process-lifetime resources (kafka writer, redis client) and hands out
// handlers to the HTTP server and the job manager.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	carrierRepo *carrierrepo.GormCarrierRepository
	notifier    *kafka.Notifier
	staff       ports.StaffDirectory
	cache       queries.TrackingCache
	logger      *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	staff, err := staticdir.NewStaffDirectory(map[string][]string{
		string(ports.RoleWarehouseStaff):     splitIDs(configs.WarehouseStaffIDs),
		string(ports.RoleCustomerServiceRep): splitIDs(configs.CustomerServiceRepIDs),
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	var cache queries.TrackingCache
	if configs.RedisHost != "" {
		ttl := 60 * time.Second
		if parsed, parseErr := time.ParseDuration(configs.TrackingCacheTTLSeconds + "s"); parseErr == nil {
			ttl = parsed
		}
		cache = redisadapter.NewTrackingCache(redisadapter.NewClient(configs.RedisHost), ttl)
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		carrierRepo: carrierrepo.NewGormCarrierRepository(gormDB),
		notifier: kafka.NewNotifier(
			strings.Split(configs.KafkaHost, ","),
			configs.KafkaNotificationTopic,
			notifierInboxSize,
			logger,
		),
		staff:  staff,
		cache:  cache,
		logger: logger,
	}, nil
}

// Close flushes and releases process-lifetime resources.
func (c *CompositionRoot) Close() error {
	return c.notifier.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.notifier, c.staff, c.logger)
}

func (c *CompositionRoot) CreateAssignCarrierCommandHandler() commands.AssignCarrierCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCarrierCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.carrierRepo, c.notifier, c.staff, c.logger)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.carrierRepo)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReportAnomalyCommandHandler() commands.ReportAnomalyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportAnomalyCommandHandler(f, c.notifier, c.staff, c.logger)
}

func (c *CompositionRoot) CreateReconcileShipmentCommandHandler() commands.ReconcileShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcilePendingShipmentsCommandHandler() commands.ReconcilePendingShipmentsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePendingShipmentsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetOrderByTrackingIDQueryHandler() queries.GetOrderByTrackingIDQueryHandler {
	return queries.NewGetOrderByTrackingIDQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcilePendingShipmentsCommandHandler(), c.logger)
}

func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
