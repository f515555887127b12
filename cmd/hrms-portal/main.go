package main

import (
	"context"
	"log/slog"
	"syscall"

	"github.com/go-playground/validator/v10"
	evbus "github.com/vardius/message-bus"

	"github.com/hrms-project/hrms-portal/internal"
	"github.com/hrms-project/hrms-portal/internal/adapters"
	"github.com/hrms-project/hrms-portal/internal/adapters/idp"
	"github.com/hrms-project/hrms-portal/internal/app/api/core"
	handlersV0 "github.com/hrms-project/hrms-portal/internal/app/api/v0/handlers"
	"github.com/hrms-project/hrms-portal/internal/app/audit"
	"github.com/hrms-project/hrms-portal/internal/app/auth"
	"github.com/hrms-project/hrms-portal/internal/app/directory"
	"github.com/hrms-project/hrms-portal/internal/app/mail"
	"github.com/hrms-project/hrms-portal/internal/config"
)

func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)

	internal.SetupLogging(cfg.Core.LogLevel, cfg.Core.LogJson)

	slog.Info("starting hrms portal", "version", internal.Version)

	rawDb, err := adapters.NewDatabase(cfg.Database)
	internal.AssertNoError(err)

	auditRepo, err := adapters.NewAuditRepository(rawDb)
	internal.AssertNoError(err)

	queueSize := 100
	eventBus := evbus.New(queueSize)

	metricsSrv := adapters.NewMetricsServer(cfg)
	provider := idp.NewClient(cfg.Provider).WithMetrics(metricsSrv)
	mailer := adapters.NewSmtpMailRepo(cfg.Mail)

	authenticator, err := auth.NewAuthenticator(cfg, eventBus, provider, metricsSrv)
	internal.AssertNoError(err)

	userCache := directory.NewMemoryUserCache()
	directoryManager, err := directory.NewDirectoryManager(cfg, eventBus, provider, userCache, metricsSrv)
	internal.AssertNoError(err)

	auditManager := audit.NewManager(auditRepo)
	_, err = audit.NewAuditRecorder(cfg, eventBus, auditRepo)
	internal.AssertNoError(err)

	_, err = mail.NewMailManager(cfg, eventBus, mailer)
	internal.AssertNoError(err)

	session := handlersV0.NewSessionWrapper(cfg)
	validate := validator.New()
	webAuth := handlersV0.NewAuthenticationHandler(session)

	apiV0 := handlersV0.NewRestApi(session,
		handlersV0.NewAuthEndpoint(cfg, webAuth, session, validate, authenticator),
		handlersV0.NewUserEndpoint(webAuth, session, validate, directoryManager),
		handlersV0.NewDashboardEndpoint(webAuth, session, directoryManager),
		handlersV0.NewHrEndpoint(webAuth),
		handlersV0.NewAuditEndpoint(cfg, webAuth, auditManager),
	)

	webSrv, err := core.NewServer(cfg, apiV0)
	internal.AssertNoError(err)

	go metricsSrv.Run(ctx)
	go webSrv.Run(ctx, cfg.Web.ListeningAddress)

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("stopped hrms portal")
}
