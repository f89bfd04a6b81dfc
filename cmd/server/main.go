package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ongod-gadgets/storefront/auth"
	"github.com/ongod-gadgets/storefront/config"
	"github.com/ongod-gadgets/storefront/handlers"
	"github.com/ongod-gadgets/storefront/mailer"
	"github.com/ongod-gadgets/storefront/store"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	stores := store.New(db)
	if err := stores.Init(ctx); err != nil {
		return err
	}
	if err := stores.SeedProducts(ctx, store.DefaultCatalog()); err != nil {
		return err
	}

	dispatcher := newDispatcher(cfg, logger)

	tokens := auth.NewTokenService(
		[]byte(cfg.SigningKey),
		cfg.TokenTTL,
		cfg.Issuer,
		cfg.Audience,
		logger.Named("tokens"),
	)

	registrar := auth.NewRegistrar(
		stores.Users(),
		stores.PendingRegistrations(),
		dispatcher,
		auth.WithCodeTTL(cfg.CodeTTL),
		auth.WithPhoneRegion(cfg.DefaultPhoneRegion),
		auth.WithRegistrarLogger(logger.Named("registrar")),
	)

	sessions := auth.NewSessionIssuer(stores.Users(), tokens, logger.Named("sessions"))

	app := handlers.New(handlers.Deps{
		Logger:        logger.Named("http"),
		Registrar:     registrar,
		Sessions:      sessions,
		Tokens:        tokens,
		Users:         stores.Users(),
		Products:      stores.Products(),
		Orders:        stores.Orders(),
		Notifications: stores.Notifications(),
		Care:          stores.CareMessages(),
	})

	go func() {
		sig := waitExitSignal()
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := app.Shutdown(); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("backend running", zap.String("port", cfg.HTTPPort))
	return app.Listen(":" + cfg.HTTPPort)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newDispatcher picks SendGrid when a key is configured, otherwise mail
// is logged so the registration flow stays usable in development.
func newDispatcher(cfg config.Config, logger *zap.Logger) auth.MailDispatcher {
	if cfg.SendGridAPIKey != "" {
		return mailer.NewSendGridDispatcher(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	}

	logger.Warn("SENDGRID_API_KEY not set, verification emails are logged instead of sent")
	return mailer.NewLogDispatcher(logger.Named("mailer"))
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
