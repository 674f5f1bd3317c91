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

package cell

import (
	"log/slog"
	"sync"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/validators"
)

type Status uint8

const (
	StatusIdle Status = iota
	StatusConfigured
	StatusRunning
)

var statusNames = [...]string{"idle", "configured", "running"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

type Config struct {
	ID     string
	Logger *slog.Logger
}

// Cell owns the lifecycle of one radio cell and answers its PARAM/CONFIG/START/STOP requests.
// Requests must be delivered one at a time; Status and CellConfig may be read concurrently.
type Cell struct {
	id     string
	logger *slog.Logger

	mu     sync.RWMutex
	status Status
	config models.CellConfig

	configNotifier fapi.ConfigMessageNotifier
	errorNotifier  fapi.ErrorMessageNotifier
	operation      fapi.CellOperationRequestNotifier
}

func New(cfg Config) *Cell {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cell{
		id:             cfg.ID,
		logger:         logger.With("cell", cfg.ID, "component", "cell"),
		configNotifier: fapi.UnattachedConfigMessageNotifier,
		errorNotifier:  fapi.UnattachedErrorMessageNotifier,
		operation:      fapi.UnattachedCellOperationNotifier,
	}
	c.setStatus(StatusIdle)
	return c
}

func (c *Cell) SetConfigMessageNotifier(n fapi.ConfigMessageNotifier) { c.configNotifier = n }
func (c *Cell) SetErrorMessageNotifier(n fapi.ErrorMessageNotifier)   { c.errorNotifier = n }
func (c *Cell) SetCellOperationRequestNotifier(n fapi.CellOperationRequestNotifier) {
	c.operation = n
}

func (c *Cell) ID() string { return c.id }

func (c *Cell) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// CellConfig returns the configuration of the last accepted CONFIG.request.
// ok is false while the cell has never been configured.
func (c *Cell) CellConfig() (cfg models.CellConfig, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config, c.status != StatusIdle
}

func (c *Cell) setStatus(s Status) {
	c.mu.Lock()
	prev := c.status
	c.status = s
	c.mu.Unlock()

	monitoring.CellStatus.WithLabelValues(c.id, prev.String()).Set(0)
	monitoring.CellStatus.WithLabelValues(c.id, s.String()).Set(1)
	if prev != s {
		c.logger.Info("cell status changed", "from", prev, "to", s)
	}
}

func (c *Cell) ParamRequest(models.ParamRequest) {
	resp := models.ParamResponse{ErrorCode: models.ErrorCodeOK}
	if c.Status() == StatusRunning {
		resp.ErrorCode = models.ErrorCodeInvalidState
	}
	c.configNotifier.OnParamResponse(resp)
}

func (c *Cell) ConfigRequest(msg models.ConfigRequest) {
	status := c.Status()
	if status == StatusRunning {
		c.logger.Warn("CONFIG.request rejected while running")
		c.configNotifier.OnConfigResponse(models.ConfigResponse{ErrorCode: models.ErrorCodeInvalidConfig})
		return
	}

	if err := validators.ValidateConfigRequest(&msg); err != nil {
		resp := models.ConfigResponse{ErrorCode: models.ErrorCodeInvalidConfig}
		if r, ok := validators.AsReport(err); ok {
			validators.LogReport(c.logger, r)
			monitoring.ObserveReport(c.id, r)
			resp.NumInvalidTLVs = uint8(min(r.NofErrors(), 255))
		}
		c.configNotifier.OnConfigResponse(resp)
		return
	}

	c.mu.Lock()
	c.config = msg.Config
	c.mu.Unlock()
	if status == StatusIdle {
		c.setStatus(StatusConfigured)
	}
	c.configNotifier.OnConfigResponse(models.ConfigResponse{ErrorCode: models.ErrorCodeOK})
}

func (c *Cell) StartRequest(models.StartRequest) {
	if c.Status() != StatusConfigured {
		c.reportError(models.StartRequestType, models.ErrorCodeInvalidState)
		return
	}

	cfg, _ := c.CellConfig()
	if !c.operation.OnStartRequest(cfg) {
		c.reportError(models.StartRequestType, models.ErrorCodeInvalidConfig)
		return
	}
	c.setStatus(StatusRunning)
}

func (c *Cell) StopRequest(models.StopRequest) {
	if c.Status() != StatusRunning {
		c.reportError(models.StopRequestType, models.ErrorCodeInvalidState)
		return
	}

	c.operation.OnStopRequest()
	c.setStatus(StatusConfigured)
	c.configNotifier.OnStopIndication(models.StopIndication{})
}

func (c *Cell) reportError(msgID models.MessageType, code models.ErrorCode) {
	c.logger.Warn("request rejected", "msg_type", msgID, "error_code", code, "status", c.Status())
	monitoring.ErrorIndications.WithLabelValues(c.id, code.String()).Inc()
	c.errorNotifier.OnErrorIndication(models.ErrorIndication{MessageID: msgID, ErrorCode: code})
}

var _ fapi.ConfigMessageGateway = (*Cell)(nil)
