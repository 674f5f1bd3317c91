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
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/buffer"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/cell"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/oam"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/phy"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/ran"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/utils"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/trafficgen"
)

var ErrUnknownCell = errors.New("simulation error: unknown cell")

const (
	closeTimeout      = 2 * time.Second
	closePollInterval = 5 * time.Millisecond
)

/* Network Instance Code*/

// CellInstance is one cell wired between its emulated L2 and L1:
//
//	L2 emulator -> validating gateway -> buffered gateway -> message buffer -> L1
//	L1 -> validating notifier -> slot time notifier -> L2 emulator
//
// Control requests reach the cell through its gitc task. ERROR.indication messages from
// every stage go to the L2 emulator and to the OAM subscriptions.
type CellInstance struct {
	profile  CellProfile
	cell     *cell.Cell
	l1       *phy.Loopback
	l2       *ran.Emulator
	executor *utils.PoolExecutor
	control  *cell.ControlGateway
	reporter *oam.CellReporter
}

// CellStatus is the OAM view of a cell.
type CellStatus struct {
	ID       string         `json:"id"`
	Status   string         `json:"status"`
	Slot     string         `json:"currentSlot,omitempty"`
	L1       phy.Stats      `json:"l1"`
	L2       ran.Status     `json:"l2"`
	UeStates map[string]int `json:"ueStates"`
}

type NetworkInstance struct {
	simId    string
	clock    clockwork.Clock
	logger   *slog.Logger
	notifier *oam.Notifier

	cellsMutex sync.RWMutex
	cells      map[string]*CellInstance
	cellIDs    []string
}

// NewNetworkInstance wires the cells of profiles. Their errors are reported to notifier, which
// must be started by the caller.
func NewNetworkInstance(profiles []CellProfile, notifier *oam.Notifier, clock clockwork.Clock, logger *slog.Logger) (*NetworkInstance, error) {
	if err := validateCells(profiles); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	simId := uuid.NewString()
	n := &NetworkInstance{
		simId:    simId,
		clock:    clock,
		logger:   logger.With("simulation", simId),
		notifier: notifier,
		cells:    make(map[string]*CellInstance, len(profiles)),
	}
	for _, p := range profiles {
		c, err := n.newCellInstance(p)
		if err != nil {
			return nil, err
		}
		n.cells[p.ID] = c
		n.cellIDs = append(n.cellIDs, p.ID)
	}
	sort.Strings(n.cellIDs)
	return n, nil
}

func (n *NetworkInstance) newCellInstance(p CellProfile) (*CellInstance, error) {
	logger := n.logger
	profile := p.TrafficProfile
	if profile == "" {
		profile = trafficgen.ProfileWeb
	}

	l2, err := ran.New(ran.Config{
		CellID:         p.ID,
		CellConfig:     p.CellConfig,
		NumOfUE:        p.NumOfUe,
		TrafficProfile: profile,
		MaxUEsPerSlot:  p.MaxUesPerSlot,
		Seed:           p.Seed,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create the L2 emulator of cell %s: %w", p.ID, err)
	}
	l1 := phy.New(phy.Config{CellID: p.ID, Numerology: p.Numerology, Clock: n.clock, Logger: logger})
	reporter := n.notifier.ForCell(p.ID)
	errs := fapi.ErrorMessageNotifiers{l2, reporter}

	executor := utils.NewPoolExecutor(utils.PoolExecutorConfig{
		Name:      "slot",
		CellID:    p.ID,
		QueueSize: p.executorQueueSize(),
		Logger:    logger,
	})
	var buf *buffer.MessageBuffer
	if p.L2NofSlotsAhead > 0 {
		buf = buffer.NewMessageBuffer(buffer.MessageBufferConfig{
			CellID:        p.ID,
			Numerology:    p.Numerology,
			NofSlotsAhead: p.L2NofSlotsAhead,
			Gateway:       l1,
			ErrorNotifier: errs,
			Logger:        logger,
		})
	}
	buffered := buffer.NewBufferedGateway(p.ID, buf, executor, l1, logger)
	l2.SetSlotMessageGateway(buffer.NewValidatingGateway(p.ID, buffered, errs, logger))

	timeNotifier := buffer.NewSlotTimeNotifier(buffer.SlotTimeNotifierConfig{
		CellID:        p.ID,
		Numerology:    p.Numerology,
		NofSlotsAhead: p.L2NofSlotsAhead,
		Buffer:        buf,
		Executor:      executor,
		Logger:        logger,
	})
	timeNotifier.SetSlotTimeNotifier(l2)

	indications := buffer.NewValidatingIndicationNotifier(p.ID, logger)
	indications.SetSlotTimeMessageNotifier(timeNotifier)
	indications.SetSlotDataMessageNotifier(l2)
	indications.SetErrorMessageNotifier(errs)
	l1.SetSlotTimeMessageNotifier(indications)
	l1.SetSlotDataMessageNotifier(indications)
	l1.SetErrorMessageNotifier(indications)

	c := cell.New(cell.Config{ID: p.ID, Logger: logger})
	c.SetConfigMessageNotifier(l2)
	c.SetErrorMessageNotifier(errs)
	c.SetCellOperationRequestNotifier(l1)

	return &CellInstance{
		profile:  p,
		cell:     c,
		l1:       l1,
		l2:       l2,
		executor: executor,
		control:  cell.NewControlGateway(n.notifier.TaskName(), p.ID, logger),
		reporter: reporter,
	}, nil
}

// InitNetworkInstance starts the gitc task of every cell.
func (n *NetworkInstance) InitNetworkInstance() error {
	for _, id := range n.cellIDs {
		if err := n.cells[id].cell.StartControlTask(defaultControlQueueSize); err != nil {
			return err
		}
	}
	n.logger.Info("simulation initialized", "cells", len(n.cellIDs))
	return nil
}

// Start configures and starts every cell. Requests are queued on the cell tasks in order.
func (n *NetworkInstance) Start() error {
	n.logger.Info("starting simulation")
	for _, id := range n.cellIDs {
		c := n.cells[id]
		c.control.ConfigRequest(models.ConfigRequest{Config: c.profile.CellConfig})
		c.control.StartRequest(models.StartRequest{})
	}
	return nil
}

func (n *NetworkInstance) Stop() error {
	n.logger.Info("stopping simulation")
	for _, id := range n.cellIDs {
		if n.cells[id].cell.Status() == cell.StatusRunning {
			n.cells[id].control.StopRequest(models.StopRequest{})
		}
	}
	return nil
}

// Close stops the running cells through their control tasks, then halts the slot tickers and
// drains the executors. The instance cannot be restarted.
func (n *NetworkInstance) Close() {
	_ = n.Stop()
	deadline := time.Now().Add(closeTimeout)
	for _, id := range n.cellIDs {
		c := n.cells[id]
		for c.cell.Status() == cell.StatusRunning && time.Now().Before(deadline) {
			time.Sleep(closePollInterval)
		}
		if c.cell.Status() == cell.StatusRunning {
			n.logger.Warn("cell did not stop in time, halting L1", "cell", id)
		}
		c.l1.OnStopRequest()
		c.executor.Stop()
		c.reporter.Stop()
	}
}

func (n *NetworkInstance) SimulationID() string { return n.simId }

func (n *NetworkInstance) Cell(id string) (*CellInstance, error) {
	n.cellsMutex.RLock()
	defer n.cellsMutex.RUnlock()
	c, ok := n.cells[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCell, id)
	}
	return c, nil
}

// CellStatuses returns the status of every cell ordered by id.
func (n *NetworkInstance) CellStatuses() []CellStatus {
	out := make([]CellStatus, 0, len(n.cellIDs))
	for _, id := range n.cellIDs {
		out = append(out, n.cells[id].Status())
	}
	return out
}

func (c *CellInstance) ID() string { return c.profile.ID }

func (c *CellInstance) Status() CellStatus {
	st := CellStatus{
		ID:       c.profile.ID,
		Status:   c.cell.Status().String(),
		L1:       c.l1.Stats(),
		L2:       c.l2.Status(),
		UeStates: make(map[string]int),
	}
	if slot := c.l1.CurrentSlot(); slot.Valid() {
		st.Slot = slot.String()
	}
	for state, count := range c.l2.CountByState() {
		st.UeStates[state.String()] = count
	}
	return st
}

// Control returns the gateway posting control requests to the cell task.
func (c *CellInstance) Control() fapi.ConfigMessageGateway { return c.control }
