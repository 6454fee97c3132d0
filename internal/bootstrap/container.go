package bootstrap

import (
	"context"
	"log"

	"studybuddy-be/internal/config"
	"studybuddy-be/internal/controller"
	"studybuddy-be/internal/handler"
	"studybuddy-be/internal/pkg/logger"
	"studybuddy-be/internal/repository/unitofwork"
	"studybuddy-be/internal/service"
	"studybuddy-be/internal/websocket"
	"studybuddy-be/pkg/embedding"
	"studybuddy-be/pkg/llm/factory"

	pktNats "studybuddy-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ResourceController controller.IResourceController
	QueryController    controller.IQueryController
	PlanController     controller.IPlanController
	CardController     controller.ICardController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Progress Pushes
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

// NewContainer wires the whole application. db may be nil; the
// in-process backend takes over so the system runs without postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		uowFactory = unitofwork.NewMemoryRepositoryFactory()
		log.Printf("[INFO] No database configured, using in-memory storage backend")
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		embeddingProvider = embedding.NewMockProvider(cfg.Ai.EmbeddingDimension)
		log.Printf("[INFO] Using Embedding Provider: MOCK (dim %d)", cfg.Ai.EmbeddingDimension)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewZapLogger("logs/progress.log", cfg.App.Environment == "production")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
		cfg.Ai,
		sysLogger,
	)

	resourceService := service.NewResourceService(uowFactory, publisherService, cfg.Retrieval, sysLogger)
	queryService := service.NewQueryService(uowFactory, embeddingProvider, llmProvider, cfg.Retrieval, cfg.Ai, sysLogger)
	plannerService := service.NewPlannerService(uowFactory, cfg.Planner, natsPub, sysLogger)
	reviewService := service.NewReviewService(uowFactory, natsPub, sysLogger)

	// 5. Progress push worker
	progressHandler := handler.NewProgressHandler(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go progressHandler.Start()
	}

	return &Container{
		ResourceController: controller.NewResourceController(resourceService),
		QueryController:    controller.NewQueryController(queryService),
		PlanController:     controller.NewPlanController(plannerService),
		CardController:     controller.NewCardController(reviewService),

		ConsumerService: consumerService,

		ProgressHandler: progressHandler,
		WebSocketHub:    wsHub,
	}
}
