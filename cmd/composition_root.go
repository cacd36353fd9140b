package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "shoporders/internal/adapters/in/http"
	"shoporders/internal/adapters/in/ws"
	"shoporders/internal/adapters/out/kafka"
	"shoporders/internal/adapters/out/mailer"
	"shoporders/internal/adapters/out/postgres"
	"shoporders/internal/adapters/out/postgres/directory"
	"shoporders/internal/adapters/out/postgres/orderrepo"
	"shoporders/internal/core/application/usecases/commands"
	"shoporders/internal/core/application/usecases/queries"
	"shoporders/internal/core/ports"
	"shoporders/internal/jobs"
	"shoporders/internal/pkg/hub"
	"shoporders/internal/pkg/keylock"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config   Config
	gormDB   *gorm.DB
	logger   *slog.Logger
	registry *prometheus.Registry

	uowFactory  *postgres.GormUnitOfWorkFactory
	hub         *hub.Hub
	locks       *keylock.Locker
	broadcaster *commands.OrderBroadcaster

	closers []func() error
}

// NewCompositionRoot wires the long-lived components. Brokers are optional: without
// AMQP_URL emails go to the log, without KAFKA_HOST order events are not mirrored.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		registry:   registry,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        hub.New(logger, hub.NewMetrics(registry)),
		locks:      keylock.New(),
	}

	orderMailer, err := c.createMailer()
	if err != nil {
		return nil, err
	}

	c.broadcaster = commands.NewOrderBroadcaster(c.hub, c.createEventPublisher(), orderMailer, logger)
	return c, nil
}

func (c *CompositionRoot) createMailer() (ports.Mailer, error) {
	composer := mailer.NewComposer(c.config.MailTimezone)
	if c.config.AMQPURL == "" {
		c.logger.Warn("AMQP_URL is not set, order emails are written to the log")
		return mailer.NewLogMailer(composer, c.logger), nil
	}

	conn, err := mailer.Dial(c.config.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the email broker: %w", err)
	}
	amqpMailer, err := mailer.NewAMQPMailer(conn, c.config.AMQPEmailQueue, composer)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set up the email queue: %w", err)
	}
	c.closers = append(c.closers, amqpMailer.Close, conn.Close)
	return amqpMailer, nil
}

func (c *CompositionRoot) createEventPublisher() ports.OrderEventPublisher {
	client := kafka.NewClient(c.config.KafkaHost)
	if !client.Enabled() {
		return kafka.DisabledPublisher{}
	}
	publisher := kafka.NewOrderEventPublisher(client.NewWriter(c.config.KafkaOrderChangedTopic), c.logger)
	c.closers = append(c.closers, publisher.Close)
	return publisher
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		directory.NewGormShopDirectory(c.gormDB),
		directory.NewGormUserDirectory(c.gormDB),
		c.broadcaster,
		c.config.DefaultPickup,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.locks, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetVendorOrdersQueryHandler() queries.GetVendorOrdersQueryHandler {
	return queries.NewGetVendorOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOverduePickupsQueryHandler() queries.GetOverduePickupsQueryHandler {
	return queries.NewGetOverduePickupsQueryHandler(c.gormDB)
}

// CreateRouter builds the HTTP entry point: REST routes, the streaming endpoint and
// the operational routes.
func (c *CompositionRoot) CreateRouter(swaggerUI bool) *echo.Echo {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateStatus := c.CreateUpdateOrderStatusCommandHandler()

	server := httpin.NewServer(
		&createOrder,
		&updateStatus,
		c.CreateGetOrderQueryHandler(),
		c.CreateGetVendorOrdersQueryHandler(),
		c.CreateGetUserOrdersQueryHandler(),
		c.logger,
	)

	streamRouter := ws.NewRouter()
	streamRouter.Handle(ws.UpdateOrderStatusDestination, ws.UpdateOrderStatusHandler(&updateStatus))
	gateway := ws.NewGateway(c.hub, streamRouter, c.config.HubSubscriberBuffer, ws.NewMetrics(c.registry), c.logger)

	return httpin.NewRouter(httpin.RouterConfig{
		API:       server,
		Logger:    c.logger,
		Streaming: gateway.Handler(),
		Metrics:   httpin.NewMetrics(c.registry),
		Gatherer:  c.registry,
		SwaggerUI: swaggerUI,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOverduePickupJob(
			c.CreateGetOverduePickupsQueryHandler(),
			c.hub,
			c.config.OverduePickupSchedule,
			c.config.OverduePickupGrace,
			c.logger,
		),
		jobs.NewSlowSubscriberEvictionJob(c.hub, c.config.HubEvictionSchedule, c.config.HubEvictAfterDrops, c.logger),
	)
}

// Close disconnects live subscribers, waits for pending emails and events, then
// releases the broker connections.
func (c *CompositionRoot) Close() error {
	c.hub.Close()
	c.broadcaster.Wait()

	var problems []error
	for _, closeFn := range c.closers {
		problems = append(problems, closeFn())
	}
	return errors.Join(problems...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
