package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

//go:generate mockgen -destination=./app_mock.go -package=app -source=app.go

// Dependency is the interface that wraps the basic methods of a dependency required for the application.
type Dependency interface {
	// Start acquires whatever the dependency needs before it can be used
	Start(ctx context.Context) error
	// Stop releases the dependency. It is called even when Start failed, so it must tolerate a
	// partial start.
	Stop() error
	// Name is the name of the dependency. It is used for logging and identification purposes, only.
	Name() string
}

// Job is the single unit of work an App runs once its dependencies have started.
type Job func(ctx context.Context) error

type App struct {
	serviceName string
	// deps are started in order and stopped in reverse order.
	deps []Dependency
	// stopCalled is an atomic bool. It allows stop to be called once
	stopCalled *atomic.Bool
	// runCalled allows Run to be called once
	runCalled *atomic.Bool
	// stopTimeout is the amount of time the application will wait for dependencies to stop before exiting.
	stopTimeout time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout == 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &App{
		serviceName: cfg.ServiceName,
		deps:        deps,
		stopTimeout: cfg.StopTimeout,
		stopCalled:  &atomic.Bool{},
		runCalled:   &atomic.Bool{},
	}, nil
}

// Run starts every dependency, runs job and stops the dependencies again. Dependencies are
// stopped on every exit path: a failed Start, a job error, a job panic (re-raised after the
// stop) and an OS signal, which cancels the job's context.
func (a *App) Run(ctx context.Context, job Job) (err error) {
	// Run is public: a consumer must not start the dependencies twice.
	if !a.runCalled.CompareAndSwap(false, true) {
		return errors.New("run has already been called")
	}

	ctxCancel, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	started := make([]Dependency, 0, len(a.deps))

	// defer funcs are always LIFO: this runs before cancel
	defer func() {
		recovered := recover()
		if stopErr := a.stop(started); stopErr != nil {
			log.Error().Err(stopErr).Msg("Error stopping " + a.serviceName)
			err = errors.Join(err, stopErr)
		}
		if recovered != nil {
			panic(recovered)
		}
	}()

	for _, dep := range a.deps {
		started = append(started, dep)
		log.Debug().Msg("Starting dependency: " + dep.Name())
		if err = dep.Start(ctxCancel); err != nil {
			return fmt.Errorf("failure in Start() for dependency %s: %w", dep.Name(), err)
		}
	}

	return job(ctxCancel)
}

// stop stops deps in reverse order, giving up after the stop timeout.
func (a *App) stop(deps []Dependency) error {
	if !a.stopCalled.CompareAndSwap(false, true) {
		return errors.New("stop has already been called")
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var errs []error
		for i := len(deps) - 1; i >= 0; i-- {
			dep := deps[i]
			log.Debug().Msg("Stopping dependency: " + dep.Name())
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %v",
					dep.Name(), err))
			}
		}
		done <- errors.Join(errs...)
	}()

	// we need all dependencies to stop before we can return: block until done or timeout
	select {
	case err := <-done:
		return err
	case <-ctxTo.Done():
		return fmt.Errorf("stopping dependencies: %w", ctxTo.Err())
	}
}
