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

package buffer

import (
	"log/slog"
	"time"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/utils"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

type SlotTimeNotifierConfig struct {
	CellID        string
	Numerology    uint8
	NofSlotsAhead int
	// Buffer is nil when messages are not delayed.
	Buffer   *MessageBuffer
	Executor utils.TaskExecutor
	Logger   *slog.Logger
}

// SlotTimeNotifier intercepts the SLOT.indication coming from L1. For every tick it moves the
// buffer to the new slot, tells L2 the slot NofSlotsAhead in the future, then releases the
// messages cached for the new slot.
type SlotTimeNotifier struct {
	cellID        string
	numerology    uint8
	nofSlotsAhead int
	buffer        *MessageBuffer
	executor      utils.TaskExecutor
	logger        *slog.Logger

	upper fapi.SlotTimeMessageNotifier
}

func NewSlotTimeNotifier(cfg SlotTimeNotifierConfig) *SlotTimeNotifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	executor := cfg.Executor
	if executor == nil {
		executor = utils.InlineExecutor{}
	}
	return &SlotTimeNotifier{
		cellID:        cfg.CellID,
		numerology:    cfg.Numerology,
		nofSlotsAhead: max(cfg.NofSlotsAhead, 0),
		buffer:        cfg.Buffer,
		executor:      executor,
		logger:        logger.With("cell", cfg.CellID, "component", "slot-time-notifier"),
		upper:         fapi.UnattachedSlotTimeMessageNotifier,
	}
}

func (n *SlotTimeNotifier) SetSlotTimeNotifier(upper fapi.SlotTimeMessageNotifier) {
	n.upper = upper
}

func (n *SlotTimeNotifier) OnSlotIndication(msg models.SlotIndication) {
	slot, err := models.NewSlotPoint(n.numerology, uint32(msg.SFN), uint32(msg.Slot))
	if err != nil {
		n.logger.Warn("slot indication ignored", "sfn", msg.SFN, "slot", msg.Slot, "error", err)
		return
	}
	monitoring.SlotIndications.WithLabelValues(n.cellID).Inc()

	if !n.executor.Execute(func() { n.tick(slot, msg.TimeStamp) }) {
		n.logger.Warn("slot indication dropped", "slot", slot)
	}
}

func (n *SlotTimeNotifier) tick(slot models.SlotPoint, ts time.Time) {
	if n.buffer != nil {
		n.buffer.UpdateCurrentSlot(slot)
	}

	ahead := slot.Add(n.nofSlotsAhead)
	n.upper.OnSlotIndication(models.SlotIndication{SFN: ahead.SFN(), Slot: ahead.Slot(), TimeStamp: ts})

	if n.buffer != nil {
		n.buffer.ForwardCachedMessages(slot)
	}
}

var _ fapi.SlotTimeMessageNotifier = (*SlotTimeNotifier)(nil)
