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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

const apiPrefix = "/fapi-simulator/v1"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "could not encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownCell):
		status = http.StatusNotFound
	case errors.Is(err, ErrNotConfigured), errors.Is(err, ErrAlreadyConfigured), errors.Is(err, ErrNotRunning):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}

func (app *FapiSimulatorApp) handleInitSimulation(w http.ResponseWriter, r *http.Request) {
	profiles := app.config.Cells

	// the cells of the config file cannot be overridden by the request
	if len(profiles) == 0 {
		if err := json.NewDecoder(r.Body).Decode(&profiles); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validateCells(profiles); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := app.InitNewSimulation(profiles); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.GetCurrentSimulationStatus())
}

func (app *FapiSimulatorApp) handleStartSimulation(w http.ResponseWriter, r *http.Request) {
	if err := app.StartSimulation(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.GetCurrentSimulationStatus())
}

func (app *FapiSimulatorApp) handleStatusSimulation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.GetCurrentSimulationStatus())
}

func (app *FapiSimulatorApp) handleStopSimulation(w http.ResponseWriter, r *http.Request) {
	if err := app.StopSimulation(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.GetCurrentSimulationStatus())
}

func (app *FapiSimulatorApp) handleListCells(w http.ResponseWriter, r *http.Request) {
	instance, err := app.instance()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instance.CellStatuses())
}

func (app *FapiSimulatorApp) cellFromRequest(r *http.Request) (*CellInstance, error) {
	instance, err := app.instance()
	if err != nil {
		return nil, err
	}
	return instance.Cell(mux.Vars(r)["id"])
}

func (app *FapiSimulatorApp) handleCellStatus(w http.ResponseWriter, r *http.Request) {
	c, err := app.cellFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Status())
}

// handleCellRequest posts one control request to the cell task. The outcome is visible in the
// cell status or as an ERROR.indication notification.
func (app *FapiSimulatorApp) handleCellRequest(w http.ResponseWriter, r *http.Request) {
	c, err := app.cellFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch mux.Vars(r)["request"] {
	case "param":
		c.Control().ParamRequest(models.ParamRequest{})
	case "configure":
		cfg := c.profile.CellConfig
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "could not read request body", http.StatusBadRequest)
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &cfg); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
		}
		c.Control().ConfigRequest(models.ConfigRequest{Config: cfg})
	case "start":
		c.Control().StartRequest(models.StartRequest{})
	case "stop":
		c.Control().StopRequest(models.StopRequest{})
	default:
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusAccepted, c.Status())
}

// Router returns the OAM API.
func (app *FapiSimulatorApp) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix(apiPrefix).Subrouter()

	api.HandleFunc("/configure", app.handleInitSimulation).Methods(http.MethodPost)
	api.HandleFunc("/start", app.handleStartSimulation).Methods(http.MethodPost)
	api.HandleFunc("/status", app.handleStatusSimulation).Methods(http.MethodGet)
	api.HandleFunc("/stop", app.handleStopSimulation).Methods(http.MethodPost)
	api.HandleFunc("/cells", app.handleListCells).Methods(http.MethodGet)
	api.HandleFunc("/cells/{id}/status", app.handleCellStatus).Methods(http.MethodGet)
	api.HandleFunc("/cells/{id}/{request:param|configure|start|stop}", app.handleCellRequest).Methods(http.MethodPost)

	app.notifier.RegisterNorthboundAPIs(router)
	return router
}

// startHttpServer serves the OAM API, over h2c when httpVersion is 2. The returned channel
// receives the error that stopped the server, if any.
func (app *FapiSimulatorApp) startHttpServer() <-chan error {
	var handler http.Handler = app.Router()
	if app.config.HttpVersion == 2 {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}
	app.server = &http.Server{Addr: fmt.Sprintf(":%d", app.config.OamPort), Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("serving simulation api", "addr", app.server.Addr, "http_version", app.config.HttpVersion)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("oam server: %w", err)
		}
	}()
	return errCh
}

func (app *FapiSimulatorApp) stopHttpServer(ctx context.Context) {
	if app.server == nil {
		return
	}
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Warn("could not stop oam server", "error", err)
	}
}
