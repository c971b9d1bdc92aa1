package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/salescoach/authkit/modules/auth"
	"github.com/salescoach/authkit/pkg/audit"
	"github.com/salescoach/authkit/pkg/clientip"
	"github.com/salescoach/authkit/pkg/config"
	"github.com/salescoach/authkit/pkg/csrf"
	"github.com/salescoach/authkit/pkg/guard"
	"github.com/salescoach/authkit/pkg/httpserver"
	"github.com/salescoach/authkit/pkg/logger"
	"github.com/salescoach/authkit/pkg/mfa"
	"github.com/salescoach/authkit/pkg/pg"
	"github.com/salescoach/authkit/pkg/rbac"
	"github.com/salescoach/authkit/pkg/redis"
	"github.com/salescoach/authkit/pkg/session"
	"github.com/salescoach/authkit/pkg/totp"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"authkit"`

	HTTP    httpserver.Config
	PG      pg.Config
	Redis   redis.Config
	Session session.Config
	TOTP    totp.Config
	MFA     mfa.Config
	CSRF    csrf.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Environment, cfg.ServiceName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	users := auth.NewPGUserStore(pool)
	sessions := session.NewManager(
		session.NewPGStore(pool),
		auth.NewSessionSource(users),
		cfg.Session,
		session.WithLogger(log),
	)
	go sessions.RunSweeper(ctx)

	challenges := mfa.NewRedisStore(rdb, cfg.MFA.TTL)

	svc, err := auth.NewService(users, sessions, challenges, cfg.TOTP, auth.WithLogger(log))
	if err != nil {
		return err
	}

	resolver := rbac.NewResolver(rbac.NewPGSource(pool))
	if err := resolver.Seed(ctx); err != nil {
		return err
	}
	gates := guard.New(resolver, guard.WithLoginPath("/login"))

	auditStorage := audit.NewPGStorage(pool)
	recorder := audit.NewRecorder(auditStorage,
		audit.WithLogger(log),
		audit.WithActorExtractor(sessionActor),
	)
	reader := audit.NewReader(auditStorage)

	transport := session.NewCookieTransport(cfg.Session.CookieName, cfg.Session.SecureCookies)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(clientip.Middleware)
	r.Use(sessions.Middleware(transport))
	r.Use(csrf.New(cfg.CSRF).Middleware)

	r.Get("/healthz", httpserver.Healthcheck(log))
	r.Get("/readyz", httpserver.Healthcheck(log, pg.Healthcheck(pool), redis.Healthcheck(rdb)))

	r.Mount("/", svc.Handler(transport, recorder, cfg.Session))

	r.Route("/audit", func(r chi.Router) {
		r.Use(gates.RequireAuth)
		r.Use(gates.RequirePermission(rbac.PermAuditRead))
		r.Get("/recent", auditRecent(reader))
	})

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// sessionActor maps the session identity to an audit actor.
func sessionActor(ctx context.Context) (audit.Actor, bool) {
	identity, ok := session.IdentityFromContext(ctx)
	if !ok {
		return audit.Actor{}, false
	}
	return audit.Actor{ID: identity.ID, Email: identity.Email}, true
}

func auditRecent(reader *audit.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := reader.Recent(r.Context(), 100)
		if err != nil {
			http.Error(w, "failed to load audit entries", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(entries)
	}
}
