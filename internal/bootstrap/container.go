package bootstrap

import (
	"context"
	"log"

	"clinical-curation-be/internal/config"
	"clinical-curation-be/internal/controller"
	"clinical-curation-be/internal/pkg/logger"
	"clinical-curation-be/internal/repository/memory"
	"clinical-curation-be/internal/repository/unitofwork"
	"clinical-curation-be/internal/service"
	"clinical-curation-be/pkg/warehouse"

	pktNats "clinical-curation-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RegistryController controller.IRegistryController
	BindingController  controller.IBindingController

	// Background Services (Exposed for main.go to run)
	RefreshWorker service.IRefreshWorker

	Logger logger.ILogger
	Engine warehouse.Engine
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional: registry still works without lifecycle events)
	var eventPub service.IEventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPub = natsPub
	}

	// Warehouse engine
	engine, err := warehouse.NewBigQueryEngine(context.Background(), cfg.Warehouse.Project, cfg.Warehouse.Dataset)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize warehouse engine: %v", err)
	}

	// Name resolution cache
	nameCache := memory.NewResolutionCache()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Warehouse.RefreshTopic, pubSub)

	registryService := service.NewRegistryService(
		uowFactory,
		engine,
		nameCache,
		eventPub,
		sysLogger,
	)
	bindingService := service.NewBindingService(uowFactory, sysLogger)

	refreshWorker := service.NewRefreshWorker(
		pubSub,
		cfg.Warehouse.RefreshTopic,
		registryService,
	)

	// 4. Controllers
	return &Container{
		RegistryController: controller.NewRegistryController(registryService, publisherService),
		BindingController:  controller.NewBindingController(bindingService),

		RefreshWorker: refreshWorker,

		Logger: sysLogger,
		Engine: engine,
	}
}
