package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/app/commands"
	adminapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/admin"
	bookingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/booking"
	favoritesapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/favorites"
	listingapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/listings"
	reviewsapp "github.com/Grace-nduta/Airbnb-Platform/internal/app/handlers/reviews"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/middleware"
	appoutbox "github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/queries"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/services/auth"
	"github.com/Grace-nduta/Airbnb-Platform/internal/app/uow"
	domainaccess "github.com/Grace-nduta/Airbnb-Platform/internal/domain/access"
	domainauth "github.com/Grace-nduta/Airbnb-Platform/internal/domain/auth"
	domainpricing "github.com/Grace-nduta/Airbnb-Platform/internal/domain/pricing"
	domainuser "github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/broker/kafka"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/config"
	mongostore "github.com/Grace-nduta/Airbnb-Platform/internal/infra/db/mongo"
	ginserver "github.com/Grace-nduta/Airbnb-Platform/internal/infra/http/gin"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/obs"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/outbox"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/security"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}
	go app.runCompletionSweep(ctx, cfg.CompletionInterval, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "mongo", cfg.UseMongo(), "kafka", cfg.UseKafka())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	commands commands.Bus
	worker   *outbox.Worker
	producer *kafka.Producer
	ready    func() error
}

func buildApplication(cfg config.Config, logger *slog.Logger) (*application, error) {
	var (
		factory  uow.UoWFactory
		users    domainuser.Repository
		sessions domainauth.SessionStore
		box      appoutbox.Outbox
		worker   *outbox.Worker
		producer *kafka.Producer
		ready    = func() error { return nil }
	)

	if cfg.UseMongo() {
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		mongoUsers := mongostore.NewUserRepository(client.DB)
		factory = mongostore.Factory{
			DB:               client.DB,
			ListingsRepo:     mongostore.NewListingRepository(client.DB),
			AvailabilityRepo: mongostore.NewCalendarRepository(client.DB),
			BookingRepo:      mongostore.NewBookingRepository(client.DB),
			ReviewsRepo:      mongostore.NewReviewRepository(client.DB),
			FavoritesRepo:    mongostore.NewFavoriteRepository(client.DB),
			UsersRepo:        mongoUsers,
			PricingSvc:       domainpricing.StandardCalculator{},
		}
		users = mongoUsers
		sessions = mongostore.NewSessionStore(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.DB.Client().Ping(pingCtx, nil)
		}

		store := outbox.NewStore(client.DB)
		box = store
		if cfg.UseKafka() {
			producer, err = kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return nil, err
			}
			worker = &outbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
			}
		} else {
			logger.Warn("kafka brokers not configured, outbox events stay queued")
		}
	} else {
		memUsers := memory.NewUserRepository()
		factory = memory.Factory{
			ListingsRepo:     memory.NewListingRepository(),
			AvailabilityRepo: memory.NewAvailabilityRepository(),
			BookingRepo:      memory.NewBookingRepository(),
			ReviewsRepo:      memory.NewReviewRepository(),
			FavoritesRepo:    memory.NewFavoriteRepository(),
			UsersRepo:        memUsers,
			PricingSvc:       domainpricing.StandardCalculator{},
		}
		users = memUsers
		sessions = memory.NewSessionStore()
		box = memory.NewOutbox(nil)
		logger.Info("running on in-memory storage")
	}

	authService := &auth.Service{
		Users:      users,
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{Cost: cfg.BcryptCost},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	policy := domainaccess.Policy{}
	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{
		UoWFactory: factory, Policy: policy, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, bookingapp.TransitionBookingCommand{}.Key(), &bookingapp.TransitionBookingHandler{
		UoWFactory: factory, Policy: policy, Outbox: box, Encoder: encoder,
	})
	commands.RegisterHandler(commandBus, bookingapp.CompleteElapsedCommand{}.Key(), &bookingapp.CompleteElapsedHandler{
		UoWFactory: factory, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, listingapp.CreateListingCommand{}.Key(), &listingapp.CreateListingHandler{
		Policy: policy, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, listingapp.UpdateListingCommand{}.Key(), &listingapp.UpdateListingHandler{
		Policy: policy, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, listingapp.DeactivateListingCommand{}.Key(), &listingapp.DeactivateListingHandler{
		Policy: policy, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, listingapp.ApproveListingCommand{}.Key(), &listingapp.ApproveListingHandler{
		Policy: policy, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, listingapp.DeleteListingCommand{}.Key(), &listingapp.DeleteListingHandler{
		Policy: policy, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, reviewsapp.SubmitReviewCommand{}.Key(), &reviewsapp.SubmitReviewHandler{
		Policy: policy, Outbox: box, Encoder: encoder, Logger: logger,
	})
	commands.RegisterHandler(commandBus, favoritesapp.ToggleFavoriteCommand{}.Key(), &favoritesapp.ToggleFavoriteHandler{
		Policy: policy, Logger: logger,
	})
	commands.RegisterHandler(commandBus, adminapp.ChangeUserRoleCommand{}.Key(), &adminapp.ChangeUserRoleHandler{
		Policy: policy, Logger: logger,
	})
	commands.RegisterHandler(commandBus, adminapp.SetUserSuspensionCommand{}.Key(), &adminapp.SetUserSuspensionHandler{
		Policy: policy, Logger: logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{UoWFactory: factory, Policy: policy})
	queries.RegisterHandler(queryBus, bookingapp.ListGuestBookingsQuery{}.Key(), &bookingapp.ListGuestBookingsHandler{UoWFactory: factory, Policy: policy, Logger: logger})
	queries.RegisterHandler(queryBus, bookingapp.ListHostBookingsQuery{}.Key(), &bookingapp.ListHostBookingsHandler{UoWFactory: factory, Policy: policy})
	queries.RegisterHandler(queryBus, listingapp.SearchCatalogQuery{}.Key(), &listingapp.SearchCatalogHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, listingapp.GetListingOverviewQuery{}.Key(), &listingapp.GetListingOverviewHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, listingapp.ListHostListingsQuery{}.Key(), &listingapp.ListHostListingsHandler{UoWFactory: factory, Policy: policy})
	queries.RegisterHandler(queryBus, listingapp.HostEarningsQuery{}.Key(), &listingapp.HostEarningsHandler{UoWFactory: factory, Policy: policy})
	queries.RegisterHandler(queryBus, reviewsapp.ListListingReviewsQuery{}.Key(), &reviewsapp.ListListingReviewsHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, reviewsapp.ListAuthorReviewsQuery{}.Key(), &reviewsapp.ListAuthorReviewsHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, reviewsapp.GetListingAggregateQuery{}.Key(), &reviewsapp.GetListingAggregateHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, favoritesapp.ListFavoritesQuery{}.Key(), &favoritesapp.ListFavoritesHandler{UoWFactory: factory, Policy: policy, Logger: logger})
	queries.RegisterHandler(queryBus, adminapp.ListUsersQuery{}.Key(), &adminapp.ListUsersHandler{UoWFactory: factory, Policy: policy})
	queries.RegisterHandler(queryBus, adminapp.MarketplaceAnalyticsQuery{}.Key(), &adminapp.MarketplaceAnalyticsHandler{UoWFactory: factory, Policy: policy})

	commandChain := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(memory.NewIdempotencyStore(), middleware.JSONResultCodec{}),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)
	queryChain := middleware.ChainQueries(queryBus)

	authMW := ginserver.AuthMiddleware{Service: authService, Logger: logger}

	handlers := ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		Listing:        ginserver.ListingHandler{Queries: queryChain, Logger: logger},
		Booking:        ginserver.BookingHandler{Commands: commandChain, Queries: queryChain, Logger: logger},
		Reviews:        ginserver.ReviewsHandler{Commands: commandChain, Logger: logger},
		Me:             ginserver.MeHandler{Commands: commandChain, Queries: queryChain, Logger: logger},
		Host:           ginserver.HostHandler{Commands: commandChain, Queries: queryChain, Logger: logger},
		Admin:          ginserver.AdminHandler{Commands: commandChain, Queries: queryChain, Logger: logger},
		AuthMiddleware: authMW.Handle,
	}

	return &application{
		handlers: handlers,
		commands: commandChain,
		worker:   worker,
		producer: producer,
		ready:    ready,
	}, nil
}

// runCompletionSweep periodically moves confirmed bookings whose stay has
// ended into the completed state.
func (a *application) runCompletionSweep(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cmd := bookingapp.CompleteElapsedCommand{Now: time.Now().UTC()}
			result, err := commands.Dispatch[bookingapp.CompleteElapsedCommand, *bookingapp.CompleteElapsedResult](ctx, a.commands, cmd)
			if err != nil {
				logger.Error("completion sweep failed", "error", err)
				continue
			}
			if result.Completed > 0 {
				logger.Info("completion sweep finished", "completed", result.Completed)
			}
		}
	}
}

func (a *application) close(logger *slog.Logger) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
}
