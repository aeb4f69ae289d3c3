package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	cataloginadapter "studyhub/internal/modules/catalog/adapter/in"
	catalogoutadapter "studyhub/internal/modules/catalog/adapter/out"
	catalogdomain "studyhub/internal/modules/catalog/domain"
	catalogusecase "studyhub/internal/modules/catalog/usecase"
	listeninginadapter "studyhub/internal/modules/listening/adapter/in"
	listeningoutadapter "studyhub/internal/modules/listening/adapter/out"
	listeningusecase "studyhub/internal/modules/listening/usecase"
	notificationinadapter "studyhub/internal/modules/notification/adapter/in"
	notificationoutadapter "studyhub/internal/modules/notification/adapter/out"
	notificationservice "studyhub/internal/modules/notification/service"
	notificationusecase "studyhub/internal/modules/notification/usecase"
	progressinadapter "studyhub/internal/modules/progress/adapter/in"
	progressoutadapter "studyhub/internal/modules/progress/adapter/out"
	progressusecase "studyhub/internal/modules/progress/usecase"
	sessioninadapter "studyhub/internal/modules/session/adapter/in"
	sessionoutadapter "studyhub/internal/modules/session/adapter/out"
	sessionservice "studyhub/internal/modules/session/service"
	sessionusecase "studyhub/internal/modules/session/usecase"
	speakinginadapter "studyhub/internal/modules/speaking/adapter/in"
	speakingoutadapter "studyhub/internal/modules/speaking/adapter/out"
	speakingusecase "studyhub/internal/modules/speaking/usecase"
	timerinadapter "studyhub/internal/modules/timer/adapter/in"
	timerusecase "studyhub/internal/modules/timer/usecase"
	"studyhub/internal/platform/clock"
	"studyhub/internal/platform/config"
	"studyhub/internal/platform/events"
	"studyhub/internal/platform/httpapi"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/kv"
	"studyhub/internal/platform/logging"
	"studyhub/internal/platform/schedule"
	uiapp "studyhub/internal/ui/app"
)

// App is the application root. It owns the store, the scheduler and every
// long-lived component; Close releases them in reverse order.
type App struct {
	Config config.Config
	Logger hclog.Logger
	Events events.Subscriber

	SessionCLI      sessioninadapter.CLIHandler
	NotificationCLI notificationinadapter.CLIHandler
	ProgressCLI     progressinadapter.CLIHandler
	ListeningCLI    listeninginadapter.CLIHandler
	ListeningTUI    listeninginadapter.TUIHandler
	SpeakingCLI     speakinginadapter.CLIHandler
	TimerCLI        timerinadapter.CLIHandler
	CatalogCLI      cataloginadapter.CLIHandler

	store     *kv.SQLiteStore
	scheduler schedule.Scheduler
	bus       *events.Bus
	logCloser io.Closer
	closers   []func()
}

// Options overrides process-level collaborators, mostly for tests.
type Options struct {
	LogOutput io.Writer
	Scheduler schedule.Scheduler
}

func New(cfg config.Config) (*App, error) {
	return NewWithOptions(cfg, Options{})
}

func NewWithOptions(cfg config.Config, opts Options) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		JSON:   cfg.LogJSON,
		File:   cfg.LogFile,
		Output: opts.LogOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	store, err := kv.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = schedule.NewGocronScheduler()
	}
	clk := clock.SystemClock{}
	bus := events.NewBus()
	client := httpapi.New(cfg.APIURL, cfg.HTTPTimeout, logger)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(),
		sessionoutadapter.NewKVCredentialStore(store),
		sessionoutadapter.NewHTTPAuthGateway(client),
		bus,
		logger,
	)
	client.SetTokenSource(sessionUC.Token)
	client.OnUnauthorized(sessionUC.Expire)

	notificationUC := notificationusecase.NewInteractor(
		notificationservice.NewNotificationService(clk, id.Timestamped{Clock: clk}),
		notificationoutadapter.NewKVStore(store, logger),
		notificationoutadapter.NewHTTPSettingsGateway(client),
		notificationoutadapter.XLSXExporter{},
		bus,
		logger,
	)

	progressUC := progressusecase.NewInteractor(
		progressoutadapter.NewHTTPGateway(client),
		progressoutadapter.XLSXExporter{},
		bus,
		logger,
	)

	exercises := listeningoutadapter.NewManifestRepository(cfg.ExercisesDir)
	listeningUC := listeningusecase.NewInteractor(exercises, notificationUC, progressUC, logger)
	listeningOpener := listeningusecase.NewOpener(exercises, listeningoutadapter.NewSimulatedDriver, logger)

	recorder := speakingusecase.NewRecorder(
		speakingoutadapter.NewCommandCaptureDevice(cfg.CaptureCmd, cfg.CaptureMIME, logger),
		speakingoutadapter.NewFileAssetStore(cfg.RecordingsDir),
		progressUC,
		logger,
	)

	countdown := timerusecase.NewCountdown(time.Duration(cfg.TimerMinutes)*time.Minute, sched, notificationUC, bus, logger)

	feeds := make([]catalogdomain.Feed, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		feeds = append(feeds, catalogdomain.Feed{Key: f.Key, Path: f.Path, Label: f.Label})
	}
	catalogUC, err := catalogusecase.NewInteractor(feeds, catalogoutadapter.NewHTTPFeedCounter(client), notificationUC, sched, logger)
	if err != nil {
		sched.Stop()
		_ = store.Close()
		_ = logCloser.Close()
		return nil, fmt.Errorf("configure content feeds: %w", err)
	}

	return &App{
		Config:          cfg,
		Logger:          logger,
		Events:          bus,
		SessionCLI:      sessioninadapter.NewCLIHandler(sessionUC),
		NotificationCLI: notificationinadapter.NewCLIHandler(notificationUC),
		ProgressCLI:     progressinadapter.NewCLIHandler(progressUC),
		ListeningCLI:    listeninginadapter.NewCLIHandler(listeningUC),
		ListeningTUI:    listeninginadapter.NewTUIHandler(listeningOpener, listeningUC),
		SpeakingCLI:     speakinginadapter.NewCLIHandler(recorder),
		TimerCLI:        timerinadapter.NewCLIHandler(countdown),
		CatalogCLI:      cataloginadapter.NewCLIHandler(catalogUC),
		store:           store,
		scheduler:       sched,
		bus:             bus,
		logCloser:       logCloser,
		closers: []func(){
			catalogUC.StopWatching,
			countdown.Close,
			func() {
				if err := recorder.Close(); err != nil {
					logger.Warn("stop capture", "error", err)
				}
			},
		},
	}, nil
}

// Close stops periodic jobs and capture, then closes storage. It is safe to
// call once; later calls return the store's close error.
func (a *App) Close() error {
	for _, fn := range a.closers {
		fn()
	}
	a.closers = nil
	a.scheduler.Stop()
	a.bus.Close()
	return errors.Join(a.store.Close(), a.logCloser.Close())
}

// Restore brings back a persisted session, if any, and reports the route.
func (a *App) Restore(ctx context.Context) string {
	return a.SessionCLI.Restore(ctx).Route
}

func RunTUI(ctx context.Context, app *App) error {
	app.Restore(ctx)
	model := uiapp.NewModel(uiapp.Deps{
		Session:       app.SessionCLI,
		Notifications: app.NotificationCLI,
		Progress:      app.ProgressCLI,
		Listening:     app.ListeningTUI,
		Speaking:      app.SpeakingCLI,
		Timer:         app.TimerCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := uiapp.Forward(app.Events, program)
	defer unsubscribe()
	_, err := program.Run()
	return err
}
