package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/codatende/webhookhub/pkg/config"
	"github.com/codatende/webhookhub/pkg/hub_server/api"
	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/inbound"
	"github.com/codatende/webhookhub/pkg/hub_server/logstream"
	"github.com/codatende/webhookhub/pkg/hub_server/manager"
	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	"github.com/codatende/webhookhub/pkg/hub_server/signup"
	"github.com/codatende/webhookhub/pkg/hub_server/storage/postgres"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/gobuffalo/pop"
	"github.com/gobuffalo/pop/logging"
	"github.com/sirupsen/logrus"
)

const appName string = "hub-server"

type CLI struct {
	Server struct {
	} `cmd:"" help:"Run the external API, the dashboard API and an embedded delivery worker"`
	Migrate struct {
		Path string `short:"p" long:"path" help:"Path to the migration files" type:"existingdir" default:"migrations"`
	} `cmd:"" help:"Migrate the database"`
	Worker struct {
	} `cmd:"" help:"Run a standalone webhook delivery worker"`
	Config string `short:"c" long:"config" help:"Path to the configuration file" type:"existingfile" default:"config.yaml"`
	Env    string `short:"e" long:"env" help:"Path to an optional .env file" default:".env"`
}

type Config struct {
	Database util.PostgresDatabaseConfig `yaml:"database"`
	Server   struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Manager struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"manager"`
	Webhook struct {
		CheckInterval int `yaml:"check_interval"`
		BatchSize     int `yaml:"batch_size"`
		Workers       int `yaml:"workers"`
		Timeout       int `yaml:"timeout"`
		MaxAttempts   int `yaml:"max_attempts"`
		BaseDelay     int `yaml:"base_delay"`
		MaxDelay      int `yaml:"max_delay"`
		Lease         int `yaml:"lease"`
		CacheTTL      int `yaml:"cache_ttl"`
		RetentionDays int `yaml:"retention_days"`
	} `yaml:"webhook"`
	Meta struct {
		inbound.ReceiverConfig `yaml:",inline"`
		GraphURL               string `yaml:"graph_url"`
	} `yaml:"meta"`
	Dashboard struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"dashboard"`
	Internal struct {
		ServiceKey string `yaml:"service_key"`
	} `yaml:"internal"`
	RateLimit    middleware.RateLimitConfig `yaml:"rate_limit"`
	OTLPEndpoint string                     `yaml:"otlp_endpoint"`
}

func (c *Config) SetDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Manager.Port == 0 {
		c.Manager.Port = 8081
	}
	if c.Webhook.Timeout <= 0 {
		c.Webhook.Timeout = int(webhook.DefaultDeliveryTimeout / time.Second)
	}
	if c.Webhook.CacheTTL <= 0 {
		c.Webhook.CacheTTL = int(webhook.DefaultMatcherCacheTTL / time.Second)
	}
}

func (c *Config) processorConfig() webhook.Config {
	return webhook.Config{
		Database:      c.Database,
		CheckInterval: c.Webhook.CheckInterval,
		BatchSize:     c.Webhook.BatchSize,
		Workers:       c.Webhook.Workers,
		Timeout:       c.Webhook.Timeout,
		Lease:         c.Webhook.Lease,
		MaxAttempts:   c.Webhook.MaxAttempts,
		BaseDelay:     c.Webhook.BaseDelay,
		MaxDelay:      c.Webhook.MaxDelay,
	}
}

type App struct{}

func (a *App) Run() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.UsageOnError())

	if err := config.LoadDotEnv(cli.Env); err != nil {
		logrus.Errorf("failed to load %s: %v", cli.Env, err)
		os.Exit(128)
	}

	switch ctx.Command() {
	case "server":
		a.runServer(cli)
	case "migrate":
		a.runMigrate(cli)
	case "worker":
		a.runWorker(cli)
	default:
	}
}

func loadConfig(cli CLI) Config {
	var appConfig Config
	if err := config.FromFile(cli.Config, &appConfig); err != nil {
		logrus.Errorf("failed to load config: %v", err)
		os.Exit(128)
	}
	return appConfig
}

func initExporter(ctx context.Context, endpoint string) func() {
	if endpoint == "" {
		return func() {}
	}
	exporter, err := otlp_util.InitExporter(
		otlp_util.WithContext(ctx),
		otlp_util.WithEndPoint(endpoint),
		otlp_util.WithServiceName(appName),
		otlp_util.WithInSecure(),
		otlp_util.WithErrorHandler(func(err error) {
			logrus.Warnf("OTLP error: %v", err)
		}),
	)
	if err != nil {
		logrus.Errorf("failed to initialize OTLP exporter: %v", err)
		os.Exit(128)
	}
	return func() { _ = exporter.Shutdown(ctx) }
}

func (a *App) runServer(cli CLI) {
	ctx := context.Background()
	appConfig := loadConfig(cli)
	defer initExporter(ctx, appConfig.OTLPEndpoint)()

	dbStorage, err := postgres.NewStorageWithConfig(appConfig.Database)
	if err != nil {
		logrus.Errorf("failed to create database connection: %v", err)
		os.Exit(128)
	}

	deliveryTimeout := time.Duration(appConfig.Webhook.Timeout) * time.Second
	matcher := webhook.NewMatcher(dbStorage, time.Duration(appConfig.Webhook.CacheTTL)*time.Second)
	emitter := webhook.NewEmitter(dbStorage, matcher)
	deliverer := webhook.NewHTTPDeliverer(deliveryTimeout)
	logHub := logstream.NewHub()
	webhookCtrl := webhook.NewWebhookController(dbStorage, matcher, deliverer, logHub)

	connMgr := connection.NewManager(dbStorage, emitter)
	sender := provider.NewRouter(
		provider.NewCloudAPISender(appConfig.Meta.GraphURL, deliveryTimeout),
		provider.NewUazAPISender(deliveryTimeout),
	)
	crmMgr := crm.NewManager(dbStorage, emitter, connMgr, sender)
	tokenMgr := auth.NewAPITokenManager(dbStorage)
	receiver := inbound.NewReceiver(inbound.NewIngestor(connMgr, crmMgr), appConfig.Meta.ReceiverConfig)
	limiter := middleware.NewRateLimiter(appConfig.RateLimit)

	apiServer, err := api.NewAPIWithController(
		tokenMgr,
		crmMgr,
		connMgr,
		dbStorage,
		limiter,
		net.JoinHostPort(appConfig.Server.Host, strconv.Itoa(appConfig.Server.Port)),
		receiver,
	)
	if err != nil {
		logrus.Errorf("failed to create API server: %v", err)
		os.Exit(128)
	}

	correlator := signup.NewCorrelator()
	graph := provider.NewGraphClient(appConfig.Meta.GraphURL, deliveryTimeout)
	managerServer, err := manager.NewManagerAPIWithControllers(
		manager.Controllers{
			Webhooks:    webhookCtrl,
			Emitter:     emitter,
			Tokens:      tokenMgr,
			Connections: connMgr,
			Signup:      signup.NewService(correlator, connMgr, graph),
			APILogs:     dbStorage,
			LogStream:   logHub,
			Dashboard:   auth.NewDashboardAuthenticator(appConfig.Dashboard.JWTSecret),
		},
		appConfig.Internal.ServiceKey,
		net.JoinHostPort(appConfig.Manager.Host, strconv.Itoa(appConfig.Manager.Port)),
	)
	if err != nil {
		logrus.Errorf("failed to create Manager server: %v", err)
		os.Exit(128)
	}

	processor, err := webhook.NewProcessorWithConfig(
		appConfig.processorConfig(),
		webhook.WithStorage(dbStorage),
		webhook.WithDeliverer(deliverer),
		webhook.WithLogPublisher(logHub),
	)
	if err != nil {
		logrus.Errorf("failed to create webhook processor: %v", err)
		os.Exit(128)
	}
	janitor := webhook.NewJanitor(
		dbStorage,
		appConfig.Webhook.RetentionDays,
		webhook.WithSweeper(correlator),
		webhook.WithSweeper(limiter),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()

		if err := apiServer.Run(); err != nil {
			logrus.Errorf("failed to run API server: %v", err)
			os.Exit(1)
		}
	}(wg)

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()

		if err := managerServer.Run(); err != nil {
			logrus.Errorf("failed to run Manager server: %v", err)
			os.Exit(1)
		}
	}(wg)

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		processor.Run(ctx)
	}(wg)

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		if err := janitor.Run(ctx); err != nil {
			logrus.Errorf("failed to run webhook janitor: %v", err)
		}
	}(wg)

	// listen for the stop signal
	<-ctx.Done()

	// Restore default behavior on the signals we are listening to
	stop()
	logrus.Info("shutting down gracefully, press Ctrl+C again to force")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Close(ctx); err != nil {
		logrus.Warnf("failed to close API server: %v", err)
		os.Exit(1)
	}
	if err := managerServer.Close(ctx); err != nil {
		logrus.Warnf("failed to close Manager server: %v", err)
		os.Exit(1)
	}

	wg.Wait()
}

// runWorker only drains the delivery queue, so that delivery can scale apart from the APIs.
func (a *App) runWorker(cli CLI) {
	ctx := context.Background()
	appConfig := loadConfig(cli)
	defer initExporter(ctx, appConfig.OTLPEndpoint)()

	dbStorage, err := postgres.NewStorageWithConfig(appConfig.Database)
	if err != nil {
		logrus.Errorf("failed to create database connection: %v", err)
		os.Exit(128)
	}

	processor, err := webhook.NewProcessorWithConfig(appConfig.processorConfig(), webhook.WithStorage(dbStorage))
	if err != nil {
		logrus.Errorf("failed to create webhook processor: %v", err)
		os.Exit(128)
	}
	janitor := webhook.NewJanitor(dbStorage, appConfig.Webhook.RetentionDays)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		processor.Run(ctx)
	}(wg)

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		if err := janitor.Run(ctx); err != nil {
			logrus.Errorf("failed to run webhook janitor: %v", err)
		}
	}(wg)

	<-ctx.Done()
	stop()
	logrus.Info("shutting down gracefully, waiting for in-flight deliveries")

	wg.Wait()
	logrus.Info("worker stopped")
}

func (a *App) runMigrate(cli CLI) {
	appConfig := loadConfig(cli)

	// set up the logger
	pop.SetLogger(func(lvl logging.Level, s string, args ...interface{}) {
		switch lvl {
		case logging.Debug:
			logrus.Debugf(s, args...)
		case logging.Info:
			logrus.Infof(s, args...)
		case logging.Warn:
			logrus.Warnf(s, args...)
		case logging.Error:
			logrus.Errorf(s, args...)
		case logging.SQL:
			// Do nothing
		}
	})

	// setup database connection
	cd := pop.ConnectionDetails{
		Dialect:  "postgres",
		Database: appConfig.Database.Database,
		Host:     appConfig.Database.Host,
		Port:     strconv.Itoa(appConfig.Database.Port),
		User:     appConfig.Database.User,
		Password: appConfig.Database.Password,
	}
	conn, err := pop.NewConnection(&cd)
	if err != nil {
		logrus.Errorf("failed to create connection: %v", err)
		os.Exit(128)
	}

	// create the database if it doesn't exist
	if err = conn.Dialect.CreateDB(); err != nil {
		logrus.Warnf("failed to create database: %v", err)
	}

	migrator, err := pop.NewFileMigrator(cli.Migrate.Path, conn)
	if err != nil {
		logrus.Errorf("failed to create migrator: %v", err)
		os.Exit(128)
	}
	// Remove SchemaPath to prevent migrator try to dump schema.
	migrator.SchemaPath = ""

	// run the migrations
	if err = migrator.Up(); err != nil {
		logrus.Errorf("failed to migrate: %v", err)
		os.Exit(1)
	}
}
