package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/niksmo/bant-confirm/config"
	"github.com/niksmo/bant-confirm/internal/adapter/events"
	"github.com/niksmo/bant-confirm/internal/adapter/httphandler"
	"github.com/niksmo/bant-confirm/internal/adapter/idgen"
	"github.com/niksmo/bant-confirm/internal/adapter/kafka"
	"github.com/niksmo/bant-confirm/internal/adapter/scheduler"
	"github.com/niksmo/bant-confirm/internal/adapter/seed"
	"github.com/niksmo/bant-confirm/internal/core/port"
	"github.com/niksmo/bant-confirm/internal/core/service"
	"github.com/niksmo/bant-confirm/pkg/schema"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

type outbound struct {
	publisher port.LeadEventsPublisher
	async     *events.AsyncPublisher
	tallyProc port.SearchTallyProcessor
	tallyView *kafka.SearchTallyView
	tally     port.SearchTally
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	logFile    io.Closer
	ids        *idgen.Snowflake
	content    seed.Content
	security   kafka.Security
	serde      schema.Serde
	outbound   outbound
	service    *service.Service
	scheduler  *scheduler.Scheduler
	httpServer httphandler.HTTPServer

	stopBg context.CancelFunc
	bg     *errgroup.Group
}

func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	app.initLogger()
	app.initIDs()
	app.initSeed()
	if app.cfg.Broker.Enabled() {
		app.initSecurity()
		app.initSerde()
		app.initOutboundAdapters()
	} else {
		slog.Warn("no seed brokers configured, lead events are dropped")
		app.outbound.publisher = events.NopPublisher{}
	}
	app.initCoreService()
	app.initScheduler()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	var w io.Writer = os.Stderr
	if app.cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   app.cfg.LogFile,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		app.logFile = lj
		w = io.MultiWriter(os.Stderr, lj)
	}
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
}

func (app *App) initIDs() {
	const op = "App.initIDs"

	ids, err := idgen.New(app.cfg.NodeID)
	if err != nil {
		app.fallDown(op, err)
	}
	app.ids = ids
}

func (app *App) initSeed() {
	const op = "App.initSeed"

	content, err := seed.Load(app.cfg.SeedFile, app.ids)
	if err != nil {
		app.fallDown(op, err)
	}
	app.content = content
}

func (app *App) initSecurity() {
	const op = "App.initSecurity"

	b := app.cfg.Broker
	sec, err := kafka.NewSecurity(b.TLS.CA, b.TLS.Cert, b.TLS.Key, b.User, b.Pass)
	if err != nil {
		app.fallDown(op, err)
	}

	kafka.ApplyGokaSecurity(sec)
	app.security = sec
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	registry, err := schema.NewRegistry(app.cfg.Broker.SchemaRegistryURLs...)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.LeadEventsTopic + "-value"
	serde, err := schema.NewSerdeLeadEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(registry),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.serde = serde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topic := app.cfg.Broker.LeadEventsTopic
	group := app.cfg.Broker.TallyGroup

	producer, err := kafka.NewLeadEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topic, app.security),
		kafka.ProducerEncoderOpt(app.serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	async, err := events.NewAsyncPublisher(
		producer, app.cfg.Broker.PublishWorkers, 0,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	tallyProc, err := kafka.NewSearchTallyProc(seedBrokers, topic, group, app.serde)
	if err != nil {
		app.fallDown(op, err)
	}

	tallyView, err := kafka.NewSearchTallyView(seedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound = outbound{
		publisher: async,
		async:     async,
		tallyProc: tallyProc,
		tallyView: tallyView,
		tally:     tallyView,
	}
}

func (app *App) initCoreService() {
	store := service.NewStore(service.State{
		Products: app.content.Products,
		Banners:  app.content.Banners,
		Vendors:  app.content.Vendors,
	})
	app.service = service.New(
		store,
		app.ids,
		app.outbound.publisher,
		app.outbound.tally,
		service.Config{
			AuthDelay:     app.cfg.AuthDelay,
			AdminUsername: app.cfg.Admin.Username,
			AdminPassword: app.cfg.Admin.Password,
			FAQs:          app.content.FAQs,
			Testimonials:  app.content.Testimonials,
		},
	)
}

func (app *App) initScheduler() {
	const op = "App.initScheduler"

	s, err := scheduler.New(app.service, app.cfg.CarouselSpec)
	if err != nil {
		app.fallDown(op, err)
	}
	app.scheduler = s
}

func (app *App) initInboundAdapters() {
	svc := httphandler.Services{
		Catalog:   app.service,
		Content:   app.service,
		Enquiries: app.service,
		Session:   app.service,
		Assistant: app.service,
		Admin:     app.service,
	}
	handler := httphandler.NewRouter(svc, os.DirFS(app.cfg.StaticDir))
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, app.cfg.AllowH2C,
	)
}

// Run starts the background workers and the http server. stopFn is called
// when the server stops on its own.
func (app *App) Run(stopFn context.CancelFunc) {
	bgCtx, cancel := context.WithCancel(context.Background())
	app.stopBg = cancel
	app.bg, bgCtx = errgroup.WithContext(bgCtx)

	app.bg.Go(func() error {
		app.scheduler.Run(bgCtx)
		return nil
	})
	if app.outbound.tallyProc != nil {
		app.bg.Go(func() error {
			app.outbound.tallyProc.Run(bgCtx)
			return nil
		})
		app.bg.Go(func() error {
			app.outbound.tallyView.Run(bgCtx)
			return nil
		})
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	app.stopBg()
	if app.outbound.tallyProc != nil {
		app.outbound.tallyProc.Close()
	}
	_ = app.bg.Wait()

	if app.outbound.async != nil {
		app.outbound.async.Close()
	}

	slog.Info("application is closed")

	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
