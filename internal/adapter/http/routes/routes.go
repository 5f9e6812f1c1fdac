package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "cartonera/docs"
	"cartonera/internal/adapter/http/handlers"
	"cartonera/internal/adapter/persistence/repository"
	"cartonera/internal/config"
	"cartonera/internal/infrastructure/cache"
	"cartonera/internal/infrastructure/database"
	"cartonera/internal/infrastructure/documents"
	"cartonera/internal/infrastructure/export"
	"cartonera/internal/infrastructure/logging"
	"cartonera/internal/infrastructure/notifications"
	"cartonera/internal/infrastructure/payments"
	"cartonera/internal/infrastructure/scheduler"
	"cartonera/internal/usecase"
	"cartonera/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	companyName     = "Cartonera"
	shutdownTimeout = 30 * time.Second
)

var router = gin.New()

// Run will start the server and block until ctx is cancelled. ctx also bounds the
// background quote expiry sweep.
func Run(ctx context.Context, cfg config.Config) {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cleanup := getRoutes(ctx, cfg)
	defer cleanup()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("[http] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to startup the application")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func getRoutes(ctx context.Context, cfg config.Config) func() {
	ddb := database.ConnectDynamoDB(ctx, cfg.AWS)

	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.Tables.Quotes, cfg.Tables.Orders)
	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.Tables.Orders, cfg.Tables.Payments, cfg.Tables.Checks)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb, cfg.Tables.Payments)
	checkRepo := repository.NewCheckDynamoRepository(ddb, cfg.Tables.Checks)
	pricingRepo := repository.NewPricingConfigDynamoRepository(ddb, cfg.Tables.PricingConfigs)

	rdb := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	pricingProvider := cache.NewCachedPricingProvider(pricingRepo, rdb, cfg.PricingCacheTTL)

	notifier, closeNotifier := newNotifier(ctx, cfg)
	exporter := export.NewXLSXExporter(companyName)
	docs := documents.NewGateway(documents.Settings{
		InvoiceURL:     cfg.InvoiceAPIURL,
		TaxDocumentURL: cfg.TaxDocumentAPIURL,
		Token:          cfg.DocumentsAPIToken,
		RemitoDir:      cfg.RemitoDir,
	}, exporter)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPago)
	if err != nil {
		log.Warn().Err(err).Msg("Mercado Pago gateway not configured")
	} else {
		paymentGateway = mpGateway
	}

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, pricingProvider, notifier, exporter)
	orderUseCase := usecase.NewOrderUseCase(usecase.OrderUseCaseDeps{
		Repo:        orderRepo,
		PaymentRepo: paymentRepo,
		Gateway:     paymentGateway,
		Documents:   docs,
		Notifier:    notifier,
		MercadoPago: usecase.MercadoPagoSettings{
			Mock:            cfg.MercadoPago.Mock,
			AccessToken:     cfg.MercadoPago.AccessToken,
			TestPayerEmail:  cfg.MercadoPago.TestPayerEmail,
			TestPayerUserID: cfg.MercadoPago.TestPayerUserID,
		},
		DocumentsTimeout: cfg.DocumentsTimeout,
	})
	checkUseCase := usecase.NewCheckUseCase(checkRepo)
	pricingUseCase := usecase.NewPricingConfigUseCase(pricingRepo, pricingProvider)

	go scheduler.RunQuoteExpiry(ctx, quoteUseCase, cfg.QuoteExpiryInterval)

	v1 := router.Group("/v1")
	addRoutes(v1, routeHandlers{
		quotes:  handlers.NewQuoteHandler(quoteUseCase),
		orders:  handlers.NewOrderHandler(orderUseCase),
		checks:  handlers.NewCheckHandler(checkUseCase),
		pricing: handlers.NewPricingConfigHandler(pricingUseCase),
	})

	return func() {
		closeNotifier()
		if rdb != nil {
			_ = rdb.Close()
		}
	}
}

func newNotifier(ctx context.Context, cfg config.Config) (interfaces.INotifier, func()) {
	if cfg.PubSubProjectID == "" {
		log.Info().Msg("[notification] PUBSUB_PROJECT_ID not set, logging events only")
		return notifications.LogNotifier{}, func() {}
	}
	n, err := notifications.NewPubSubNotifier(ctx, cfg.PubSubProjectID, cfg.PubSubTopic, "")
	if err != nil {
		log.Warn().Err(err).Msg("[notification] pubsub unavailable, logging events only")
		return notifications.LogNotifier{}, func() {}
	}
	return n, func() { _ = n.Close() }
}

func setMiddlewares() {
	router.Use(logging.Middleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.FullPath()).Msg("Recovered from panic")
		c.AbortWithStatus(500)
	}))
}
