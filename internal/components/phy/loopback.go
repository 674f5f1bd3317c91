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

package phy

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

type Config struct {
	CellID     string
	Numerology uint8
	Clock      clockwork.Clock
	Logger     *slog.Logger
}

// Stats counts what the emulator received and produced since it was created.
type Stats struct {
	Slots       uint64
	DLTTI       uint64
	ULTTI       uint64
	ULDCI       uint64
	TxData      uint64
	Rejected    uint64
	Indications uint64
	Starts      uint64
}

// Loopback emulates an L1 for one cell. While running it ticks one SLOT.indication per slot
// duration, accepts the slot requests of the current slot and answers every UL_TTI.request
// with the indications a real PHY would decode on the next slot boundary.
type Loopback struct {
	cellID     string
	numerology uint8
	clock      clockwork.Clock
	logger     *slog.Logger

	mu        sync.Mutex
	running   bool
	cellCfg   models.CellConfig
	slot      models.SlotPoint
	pendingUL []*models.ULTTIRequest
	stats     Stats
	cancel    context.CancelFunc
	done      chan struct{}

	timeNotifier  fapi.SlotTimeMessageNotifier
	dataNotifier  fapi.SlotDataMessageNotifier
	errorNotifier fapi.ErrorMessageNotifier
}

func New(cfg Config) *Loopback {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Loopback{
		cellID:        cfg.CellID,
		numerology:    cfg.Numerology,
		clock:         clock,
		logger:        logger.With("cell", cfg.CellID, "component", "loopback-phy"),
		timeNotifier:  fapi.UnattachedSlotTimeMessageNotifier,
		dataNotifier:  fapi.UnattachedSlotDataMessageNotifier,
		errorNotifier: fapi.UnattachedErrorMessageNotifier,
	}
}

func (p *Loopback) SetSlotTimeMessageNotifier(n fapi.SlotTimeMessageNotifier) { p.timeNotifier = n }
func (p *Loopback) SetSlotDataMessageNotifier(n fapi.SlotDataMessageNotifier) { p.dataNotifier = n }
func (p *Loopback) SetErrorMessageNotifier(n fapi.ErrorMessageNotifier)       { p.errorNotifier = n }

func (p *Loopback) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Loopback) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// CurrentSlot returns the last slot announced, invalid before the first tick.
func (p *Loopback) CurrentSlot() models.SlotPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slot
}

// OnStartRequest starts the slot ticker. It refuses a configuration whose numerology differs
// from the one of the emulated radio or whose carrier has no resource grid for it.
func (p *Loopback) OnStartRequest(cfg models.CellConfig) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.logger.Warn("start requested while running")
		return false
	}
	num := cfg.Numerology()
	if num != p.numerology {
		p.logger.Warn("start refused, numerology mismatch", "configured", num, "supported", p.numerology)
		return false
	}
	if int(num) >= len(cfg.Carrier.DLGridSize) || cfg.Carrier.DLGridSize[num] == 0 {
		p.logger.Warn("start refused, empty carrier grid", "numerology", num)
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.running = true
	p.cellCfg = cfg
	p.slot = models.SlotPoint{}
	p.pendingUL = nil
	p.cancel = cancel
	p.done = make(chan struct{})
	p.stats.Starts++
	go p.run(ctx, p.done)

	p.logger.Info("slot ticker started", "slot_duration", models.SlotDuration(num))
	return true
}

// OnStopRequest stops the ticker and waits for the last tick to complete.
func (p *Loopback) OnStopRequest() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.pendingUL = nil
	p.mu.Unlock()

	cancel()
	<-done
	p.logger.Info("slot ticker stopped")
}

func (p *Loopback) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := p.clock.NewTicker(models.SlotDuration(p.numerology))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ts := <-ticker.Chan():
			p.tick(ts)
		}
	}
}

func (p *Loopback) tick(ts time.Time) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	if p.slot.Valid() {
		p.slot = p.slot.Add(1)
	} else {
		p.slot, _ = models.NewSlotPoint(p.numerology, 0, 0)
	}
	slot := p.slot
	pending := p.pendingUL
	p.pendingUL = nil
	p.stats.Slots++
	p.mu.Unlock()

	for _, req := range pending {
		p.emitUplink(req)
	}
	p.timeNotifier.OnSlotIndication(models.SlotIndication{SFN: slot.SFN(), Slot: slot.Slot(), TimeStamp: ts})
}

var _ fapi.CellOperationRequestNotifier = (*Loopback)(nil)
