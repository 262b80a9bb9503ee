package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/chat"
	"github.com/topi314/club-recruitment/server/database"
	"github.com/topi314/club-recruitment/server/session"
	"github.com/topi314/club-recruitment/server/views"
)

var (
	//go:embed static
	static embed.FS

	//go:embed templates/*.gohtml
	templates embed.FS
)

const devRoot = "server/"

func New(cfg Config) (*Server, error) {
	var staticFS http.FileSystem
	var t func() *template.Template
	var reloadNotifier *ReloadNotifier
	var stopWatcher context.CancelFunc
	if cfg.Dev {
		root, err := os.OpenRoot(devRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to open dev root: %w", err)
		}
		staticFS = http.FS(root.FS())
		t = func() *template.Template {
			return template.Must(template.New("templates").
				Funcs(templateFuncs).
				ParseFS(root.FS(), "templates/*.gohtml"))
		}
		reloadNotifier = newReloadNotifier()
		stopWatcher = startDevWatcher(reloadNotifier, devRoot+"templates", devRoot+"static")
	} else {
		staticFS = http.FS(static)

		st := template.Must(template.New("templates").
			Funcs(templateFuncs).
			ParseFS(templates, "templates/*.gohtml"),
		)

		t = func() *template.Template {
			return st
		}
	}

	var (
		store session.Store
		db    *database.Database
	)
	switch cfg.Session.Store {
	case session.StoreTypePostgres:
		var err error
		db, err = database.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store = db
	case session.StoreTypeMemory, "":
		store = session.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown session store: %q", cfg.Session.Store)
	}

	notifier, err := newNotifier(cfg.Notifications)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	// requests are bounded by the caller's context
	httpClient := &http.Client{}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		Cfg:            cfg,
		StaticFS:       staticFS,
		HttpClient:     httpClient,
		API:            api.New(cfg.API, httpClient),
		Sessions:       session.NewManager(cfg.Session, cfg.Identity, store),
		Chat:           chat.NewStore(cfg.Chat.IdleTimeout.Std()),
		Validator:      views.NewValidator(),
		Notifier:       notifier,
		ReloadNotifier: reloadNotifier,
		templates:      t,
		db:             db,
		stopWatcher:    stopWatcher,
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

type Server struct {
	Cfg            Config
	StaticFS       http.FileSystem
	HttpClient     *http.Client
	API            *api.Client
	Sessions       *session.Manager
	Chat           *chat.Store
	Validator      *views.Validator
	Notifier       *Notifier
	ReloadNotifier *ReloadNotifier

	server      *http.Server
	templates   func() *template.Template
	db          *database.Database
	stopWatcher context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

func (s *Server) Templates() *template.Template {
	return s.templates()
}

// Start serves handler on the configured address and runs the background cleanups.
func (s *Server) Start(handler http.Handler) {
	s.server = &http.Server{
		Addr:    s.Cfg.Server.Addr,
		Handler: handler,
	}

	go s.Sessions.Cleanup(s.ctx, 1*time.Hour)
	go s.Chat.Cleanup(s.ctx, 5*time.Minute)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	s.cancel()

	if s.stopWatcher != nil {
		s.stopWatcher()
	}
	if s.ReloadNotifier != nil {
		s.ReloadNotifier.Close()
	}

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown failed", slog.Any("err", err))
		}
	}

	s.Notifier.Close()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Failed to close database", slog.Any("err", err))
		}
	}
}
