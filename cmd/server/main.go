package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/cache"
	"storefront-be/internal/cart"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/discount"
	"storefront-be/internal/logger"
	mw "storefront-be/internal/middleware"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/rest"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"

	"go.uber.org/zap"
)

const (
	notifyTimeout   = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = serve
)

type server struct {
	handler    http.Handler
	limiter    *mw.RateLimiter
	dispatcher *notification.Dispatcher
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.L().Warn("JWT_SECRET is empty, logins will fail")
	}

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newServer(cfg, database)
	go s.limiter.Cleanup(ctx, time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.L().Info("storefront api listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
	err := startServerFunc(ctx, srv)

	// Let queued order emails finish before exiting.
	s.dispatcher.Wait()
	stats := s.dispatcher.Stats()
	logger.L().Info("notifications drained", zap.Uint64("sent", stats.Sent), zap.Uint64("failed", stats.Failed))
	return err
}

func newServer(cfg *config.Config, database *sql.DB) *server {
	policyCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, "storefront")

	discountSvc := discount.NewService(discount.NewRepository(database), policyCache, cfg.PolicyCacheTTL)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, discountSvc)

	userSvc := user.NewService(user.NewRepository(database), cfg.JWTSecret, auth.DefaultTokenTTL)
	cartSvc := cart.NewService(cart.NewRepository(database))
	wishlistSvc := wishlist.NewService(wishlist.NewRepository(database), productRepo, productSvc)

	dispatcher := notification.NewDispatcher(notifyTimeout)
	orderSvc := order.NewService(order.Deps{
		Repo:       order.NewRepository(database),
		Products:   productRepo,
		Policies:   discountSvc,
		Carts:      cartSvc,
		Recipients: userSvc,
		Notifier:   newNotifier(cfg),
		Dispatcher: dispatcher,
		LeadDays:   cfg.DeliveryLeadDays,
	})

	h := &rest.Handler{
		Users:     userSvc,
		Products:  productSvc,
		Discounts: discountSvc,
		Carts:     cartSvc,
		Wishlists: wishlistSvc,
		Orders:    orderSvc,
		DB:        database,
	}

	limiter := mw.NewRateLimiter()
	return &server{
		handler: rest.NewRouter(h, rest.RouterConfig{
			JWTSecret:  cfg.JWTSecret,
			CORSOrigin: cfg.CORSOrigin,
			Limiter:    limiter,
		}),
		limiter:    limiter,
		dispatcher: dispatcher,
	}
}

// newNotifier sends real mail when SMTP is configured and only logs otherwise.
func newNotifier(cfg *config.Config) notification.Notifier {
	if cfg.SMTPHost == "" {
		logger.L().Info("SMTP_HOST not set, order emails will be logged only")
		return notification.LogNotifier{}
	}

	mailer, err := notification.NewMailer(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
	})
	if err != nil {
		logger.L().Warn("mailer unavailable, falling back to log notifier", zap.Error(err))
		return notification.LogNotifier{}
	}
	return mailer
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
