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

package utils

import (
	"errors"
	"log/slog"

	"github.com/alitto/pond/v2"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

// A TaskExecutor runs tasks without blocking the caller.
// Execute returns false when the task was dropped.
type TaskExecutor interface {
	Execute(task func()) bool
}

type PoolExecutorConfig struct {
	Name      string
	CellID    string
	QueueSize int
	Logger    *slog.Logger
}

// PoolExecutor runs tasks on a single worker, in submission order, with a bounded queue.
// A full queue drops the task instead of blocking.
type PoolExecutor struct {
	name   string
	cellID string
	pool   pond.Pool
	logger *slog.Logger
}

func NewPoolExecutor(cfg PoolExecutorConfig) *PoolExecutor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}
	return &PoolExecutor{
		name:   cfg.Name,
		cellID: cfg.CellID,
		pool:   pond.NewPool(1, pond.WithQueueSize(queueSize), pond.WithNonBlocking(true)),
		logger: logger.With("cell", cfg.CellID, "executor", cfg.Name),
	}
}

func (e *PoolExecutor) Execute(task func()) bool {
	err := e.pool.Go(task)
	if err == nil {
		return true
	}
	if errors.Is(err, pond.ErrQueueFull) {
		e.logger.Warn("executor queue full, task dropped", "waiting", e.pool.WaitingTasks())
	} else {
		e.logger.Warn("executor rejected task", "error", err)
	}
	monitoring.ExecutorDroppedTasks.WithLabelValues(e.cellID, e.name).Inc()
	return false
}

// Stop waits for the queued tasks and releases the worker.
func (e *PoolExecutor) Stop() {
	e.pool.StopAndWait()
}

// InlineExecutor runs tasks on the calling goroutine.
type InlineExecutor struct{}

func (InlineExecutor) Execute(task func()) bool {
	task()
	return true
}
