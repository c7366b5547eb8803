package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	"talent-match/internal/logger"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
	WS    *http.Server

	container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	a := &App{Fiber: f, container: c}
	if port := strings.TrimSpace(c.Config.WS.Port); port != "" {
		addr, _ := ListenAddr(port)
		a.WS = &http.Server{
			Addr:              addr,
			Handler:           ws.NewHandler(c.Hub, logger.Named(c.Logger, "ws")).Mux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return a
}

func Bootstrap(c *Container) (*App, func() error, error) {
	if c == nil {
		return nil, nil, errors.New("nil container")
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.Named(c.Logger, "http"), c.Metrics)
	errMw := middleware.NewErrorMiddleware(logger.Named(c.Logger, "http"))
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	uc := c.Usecases
	checks := map[string]handler.Pinger{"postgres": c.DB, "redis": c.Cache}

	routes.NewRegistry(routes.Handlers{
		Health:       handler.NewHealthHandler(checks),
		Auth:         handler.NewAuthHandler(uc.Auth),
		Users:        handler.NewUserHandler(uc.Users),
		Jobs:         handler.NewJobHandler(uc.Jobs),
		CVs:          handler.NewCVHandler(uc.CVs),
		Requirements: handler.NewRequirementHandler(uc.Requirements),
		Match:        handler.NewMatchHandler(uc.Matching, c.Config.Match.MinScore),
	}, middleware.NewAuthMiddleware(c.JWT).Middleware(), c.Metrics.Handler()).Register(app)
}

// Run serves HTTP and, when configured, the websocket listener until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	addr, err := ListenAddr(a.container.Config.App.HTTPPort)
	if err != nil {
		return err
	}
	log := a.container.Logger

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go a.container.Hub.Run(hubCtx)

	errCh := make(chan error, 2)
	go func() {
		log.Info("http listening", zap.String("addr", addr))
		errCh <- a.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	if a.WS != nil {
		go func() {
			log.Info("ws listening", zap.String("addr", a.WS.Addr))
			if err := a.WS.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("ws server: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var errs []error
	if a.WS != nil {
		errs = append(errs, a.WS.Shutdown(shutdownCtx))
	}
	errs = append(errs, a.Fiber.ShutdownWithContext(shutdownCtx))
	return errors.Join(errs...)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
