// Package api provides the HTTP REST API for HASP Designer.
//
// It exposes entity browsing, plate discovery, layout storage, validation,
// YAML generation, and publish endpoints to the layout editor frontend.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/hasp-designer/internal/deploy"
	"github.com/nerrad567/hasp-designer/internal/discovery"
	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/homeassistant"
	"github.com/nerrad567/hasp-designer/internal/importer"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/config"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/logging"
	"github.com/nerrad567/hasp-designer/internal/layout"
	"github.com/nerrad567/hasp-designer/internal/validation"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// EntityService provides Home Assistant entity queries and page reloads.
// Satisfied by *homeassistant.Client.
type EntityService interface {
	EnhancedEntities(ctx context.Context, domain, search string) ([]homeassistant.EnhancedEntity, error)
	Exists(ctx context.Context, entityID string) (bool, error)
	ReloadPages(ctx context.Context) error
}

// DeviceLister enumerates discovered openHASP plates.
// Satisfied by *discovery.Engine.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]discovery.Device, error)
}

// Validator runs the layout validation pipeline.
// Satisfied by *validation.Orchestrator.
type Validator interface {
	Validate(ctx context.Context, objects []hasp.Object, deviceID string, opts validation.Options) validation.Result
}

// Deployer lands layouts on plates. Satisfied by *deploy.Deployer.
type Deployer interface {
	Deploy(ctx context.Context, node string, objects []hasp.Object) (*deploy.Result, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	Logger    *logging.Logger
	Entities  EntityService
	Devices   DeviceLister
	Validator Validator
	Layouts   layout.Repository
	Importer  *importer.Importer // optional: nil disables import endpoints
	Deployer  Deployer           // optional: nil disables publishing
	Version   string
}

// Server is the HTTP API server for HASP Designer.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	logger    *logging.Logger
	entities  EntityService
	devices   DeviceLister
	validator Validator
	layouts   layout.Repository
	importer  *importer.Importer
	deployer  Deployer
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Entities == nil {
		return nil, fmt.Errorf("entity service is required")
	}
	if deps.Devices == nil {
		return nil, fmt.Errorf("device lister is required")
	}
	if deps.Validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	if deps.Layouts == nil {
		return nil, fmt.Errorf("layout repository is required")
	}
	// Importer and Deployer are optional; their endpoints return 503 when unset.

	return &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		entities:  deps.Entities,
		devices:   deps.Devices,
		validator: deps.Validator,
		layouts:   deps.Layouts,
		importer:  deps.Importer,
		deployer:  deps.Deployer,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server started", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck reports whether the server has been started.
func (s *Server) HealthCheck() error {
	if s.server == nil {
		return fmt.Errorf("api: server not started")
	}
	return nil
}
