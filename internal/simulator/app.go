// Copyright 2025 EURECOM
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Contributors:
//   Giulio CAROTA
//   Thomas DU
//   Adlen KSENTINI

package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/oam"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

/* Simulation Controller code */

type SimulationStatus string

const (
	CONFIGURED SimulationStatus = "CONFIGURED"
	STARTED    SimulationStatus = "STARTED"
	STOPPED    SimulationStatus = "STOPPED"
	ERROR      SimulationStatus = "ERROR"
)

var (
	ErrNotConfigured     = errors.New("simulation error: please configure the simulation via /configure")
	ErrAlreadyConfigured = errors.New("simulation error: a simulation instance already exists")
	ErrNotRunning        = errors.New("simulation error: no running instance")
)

type SimulationStatusResponse struct {
	SimulationID string           `json:"simulationId,omitempty"`
	Status       SimulationStatus `json:"status"`
	Cells        []CellStatus     `json:"cells,omitempty"`
}

type FapiSimulatorApp struct {
	currentInstance *NetworkInstance
	status          SimulationStatus
	instanceMutex   sync.RWMutex
	server          *http.Server
	metrics         *http.Server
	config          *AppConfig
	clock           clockwork.Clock
	logger          *slog.Logger
	notifier        *oam.Notifier
}

// NewFapiSimulatorApp returns an app for cfg and starts its OAM notifier. A nil clock means
// the wall clock.
func NewFapiSimulatorApp(cfg *AppConfig, clock clockwork.Clock, logger *slog.Logger) (*FapiSimulatorApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	notifier := oam.NewNotifier(oam.Config{Name: uuid.NewString(), Clock: clock, Logger: logger})
	if err := notifier.Start(defaultControlQueueSize); err != nil {
		return nil, err
	}
	return &FapiSimulatorApp{
		status:   STOPPED,
		config:   cfg,
		clock:    clock,
		logger:   logger,
		notifier: notifier,
	}, nil
}

// InitNewSimulation builds and initializes the cells of profiles.
func (app *FapiSimulatorApp) InitNewSimulation(profiles []CellProfile) error {
	if len(profiles) == 0 {
		return errors.New("no cell provided, could not initialize")
	}

	app.instanceMutex.Lock()
	defer app.instanceMutex.Unlock()

	if app.currentInstance != nil {
		return ErrAlreadyConfigured
	}

	instance, err := NewNetworkInstance(profiles, app.notifier, app.clock, app.logger)
	if err != nil {
		return fmt.Errorf("could not initialize the simulation instance: %w", err)
	}
	if err := instance.InitNetworkInstance(); err != nil {
		return fmt.Errorf("could not initialize the simulation instance: %w", err)
	}

	app.currentInstance = instance
	app.status = CONFIGURED
	return nil
}

func (app *FapiSimulatorApp) StartSimulation() error {
	app.instanceMutex.Lock()
	defer app.instanceMutex.Unlock()

	if app.currentInstance == nil {
		return ErrNotConfigured
	}

	// a restart stops the cells first, the requests are processed in order by each cell task
	if app.status == STARTED {
		if err := app.currentInstance.Stop(); err != nil {
			app.logger.Warn("error stopping instance for restart", "error", err)
		}
	}

	if err := app.currentInstance.Start(); err != nil {
		app.status = ERROR
		return fmt.Errorf("could not start the simulation instance: %w", err)
	}

	app.status = STARTED
	return nil
}

func (app *FapiSimulatorApp) StopSimulation() error {
	app.instanceMutex.Lock()
	defer app.instanceMutex.Unlock()

	if app.status == STOPPED || app.currentInstance == nil {
		return ErrNotRunning
	}

	if app.status == STARTED {
		if err := app.currentInstance.Stop(); err != nil {
			return fmt.Errorf("could not stop the simulation instance: %w", err)
		}
	}

	// the instance is kept so that it can be restarted
	app.status = STOPPED
	return nil
}

func (app *FapiSimulatorApp) GetCurrentSimulationStatus() SimulationStatusResponse {
	app.instanceMutex.RLock()
	defer app.instanceMutex.RUnlock()

	resp := SimulationStatusResponse{Status: app.status}
	if app.currentInstance != nil {
		resp.SimulationID = app.currentInstance.SimulationID()
		resp.Cells = app.currentInstance.CellStatuses()
	}
	return resp
}

func (app *FapiSimulatorApp) instance() (*NetworkInstance, error) {
	app.instanceMutex.RLock()
	defer app.instanceMutex.RUnlock()
	if app.currentInstance == nil {
		return nil, ErrNotConfigured
	}
	return app.currentInstance, nil
}

// Run serves the OAM and metrics APIs until ctx is done.
func (app *FapiSimulatorApp) Run(ctx context.Context) error {
	app.logger.Info("running config", "config", "\n"+app.config.Dumps())

	if app.config.InitOnStartup {
		app.logger.Info("bootstraping simulation instance")
		if err := app.InitNewSimulation(app.config.Cells); err != nil {
			return fmt.Errorf("could not initialize the simulator on startup: %w", err)
		}
	}

	errCh := app.startHttpServer()
	if app.config.MetricsPort != 0 {
		app.metrics = monitoring.StartMetricsServer(int(app.config.MetricsPort), app.logger)
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	app.logger.Info("terminating...")
	app.shutdown()
	return err
}

func (app *FapiSimulatorApp) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.stopHttpServer(shutdownCtx)
	if app.metrics != nil {
		if err := app.metrics.Shutdown(shutdownCtx); err != nil {
			app.logger.Warn("could not stop metrics server", "error", err)
		}
	}

	app.instanceMutex.Lock()
	defer app.instanceMutex.Unlock()
	if app.currentInstance != nil {
		app.currentInstance.Close()
	}
}
