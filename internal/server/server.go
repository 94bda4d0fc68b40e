package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"
	"github.com/surrealdb/surrealdb.go"

	"github.com/freddyb/standup/internal/assets"
	"github.com/freddyb/standup/internal/config"
	"github.com/freddyb/standup/internal/database"
	"github.com/freddyb/standup/internal/format"
	"github.com/freddyb/standup/internal/handlers"
	"github.com/freddyb/standup/internal/hub"
	"github.com/freddyb/standup/internal/identity"
	"github.com/freddyb/standup/internal/logging"
	"github.com/freddyb/standup/internal/pubsub"
	"github.com/freddyb/standup/internal/routing"
	"github.com/freddyb/standup/internal/view"
	"github.com/freddyb/standup/web"
)

const manifestPath = "web/static/manifest.json"

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	DB  *surrealdb.DB
	Cfg *config.Config

	bridge    *pubsub.WatermillBridge
	statusHub *hub.Hub
	cancel    context.CancelFunc

	statusHandler  *handlers.StatusHandler
	apiHandler     *handlers.APIHandler
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	streamHandler  *handlers.StreamHandler
}

// New creates a new Server instance and wires every dependency.
func New() *Server {
	logging.New()
	cfg := config.New()

	ctx, cancel := context.WithCancel(context.Background())

	db, err := database.Connect(ctx, cfg.DBUrl, cfg.DBNs, cfg.DBDb, cfg.DBUser, cfg.DBPass)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		cancel()
		os.Exit(1)
	}

	teamStore := database.NewSurrealTeamStore(db)
	projectStore := database.NewSurrealProjectStore(db)
	statusStore := database.NewSurrealStatusStore(db)
	userStore := database.NewSurrealUserStore(db)

	// Assets come from the embedded filesystem, except in debug mode where
	// they are read from disk so the asset build can rewrite them.
	var assetFs afero.Fs = afero.FromIOFS{FS: web.FS}
	manifest := "static/manifest.json"
	if cfg.Debug {
		assetFs = afero.NewOsFs()
		manifest = manifestPath
	}
	pipeline, err := assets.New(assetFs, manifest, "/static")
	if err != nil {
		slog.Error("Failed to load asset manifest", "error", err)
		cancel()
		os.Exit(1)
	}
	if cfg.Debug {
		// The asset build rewrites the manifest while developing; pick up
		// new hashes without a restart.
		go func() {
			if err := pipeline.Watch(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Manifest watcher stopped", "error", err)
			}
		}()
	}

	urls := routing.NewResolver()
	idp := identity.NewScriptProvider("https://login.persona.org/include.js")
	shell := view.NewShell(cfg, urls, pipeline, idp)

	bridge := pubsub.NewWatermillBridge()
	statusHub := hub.NewHub()
	go statusHub.Run()

	// Everything published on status.created fans out to the websocket
	// subscribers.
	if err := bridge.Subscribe(ctx, pubsub.TopicStatusCreated, func(_ context.Context, msg pubsub.Message) error {
		statusHub.Broadcast <- msg.Payload
		return nil
	}); err != nil {
		slog.Error("Failed to subscribe to status.created", "error", err)
		cancel()
		os.Exit(1)
	}

	formatter := format.NewFormatter()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	e.Validator = handlers.NewValidator()

	if cfg.Debug {
		e.Static("/static", "web/static")
	} else {
		e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	}

	return &Server{
		E:              e,
		DB:             db,
		Cfg:            cfg,
		bridge:         bridge,
		statusHub:      statusHub,
		cancel:         cancel,
		statusHandler:  handlers.NewStatusHandler(shell, teamStore, projectStore, statusStore),
		apiHandler:     handlers.NewAPIHandler(cfg.APIKey, formatter, userStore, projectStore, statusStore, bridge),
		authHandler:    handlers.NewAuthHandler(shell, userStore),
		profileHandler: handlers.NewProfileHandler(shell, statusStore),
		streamHandler:  handlers.NewStreamHandler(statusHub),
	}
}
