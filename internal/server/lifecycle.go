// Package server supervises the long-running pieces of the game server
// (database health loop, telnet acceptor) and shuts them down in reverse
// order on signal, context cancellation, or the first service failure.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is one supervised component. Start blocks for the service's
// whole life; Stop asks it to wind down and return from Start.
type Service interface {
	Start() error
	Stop()
}

// FuncService lifts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

func (f *FuncService) Start() error { return f.StartFn() }

func (f *FuncService) Stop() { f.StopFn() }

type namedService struct {
	name string
	svc  Service
}

// Lifecycle starts services in registration order and stops them in
// reverse order, so later services may depend on earlier ones.
type Lifecycle struct {
	logger *zap.Logger

	mu       sync.Mutex
	services []namedService
}

// NewLifecycle creates an empty supervisor.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	if logger == nil {
		panic("server: NewLifecycle precondition violated: logger must be non-nil")
	}
	return &Lifecycle{logger: logger}
}

// Add registers a service under a name used in shutdown logging.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	if name == "" || svc == nil {
		panic("server: Add precondition violated: name and service must be set")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, svc: svc})
}

// Run launches every registered service and blocks until SIGINT/SIGTERM,
// context cancellation, or a service's Start returning an error. It then
// stops all services in reverse order.
//
// Postcondition: every service's Stop has been called when Run returns.
// Returns the error of the service that triggered shutdown, or nil for a
// clean signal- or context-driven exit.
func (l *Lifecycle) Run(ctx context.Context) error {
	started := time.Now()

	l.mu.Lock()
	services := make([]namedService, len(l.services))
	copy(services, l.services)
	l.mu.Unlock()

	failures := make(chan error, len(services))
	for _, ns := range services {
		ns := ns
		go func() {
			l.logger.Info("service starting", zap.String("service", ns.name))
			if err := ns.svc.Start(); err != nil {
				failures <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}
	l.logger.Info("supervisor running",
		zap.Int("services", len(services)),
		zap.Duration("startup", time.Since(started)),
	)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	var cause error
	select {
	case sig := <-signals:
		l.logger.Info("signal received, shutting down", zap.String("signal", sig.String()))
	case cause = <-failures:
		l.logger.Error("service failed, shutting down", zap.Error(cause))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		stopStart := time.Now()
		ns.svc.Stop()
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(stopStart)),
		)
	}
	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(started)))
	return cause
}
