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

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

type MessageBufferConfig struct {
	CellID     string
	Numerology uint8
	// NofSlotsAhead is the largest distance between the current slot and the slot targeted by a message.
	NofSlotsAhead int
	// Gateway receives the messages once their slot is reached.
	Gateway       fapi.SlotMessageGateway
	ErrorNotifier fapi.ErrorMessageNotifier
	Logger        *slog.Logger
}

// slotEntry holds the messages cached for one slot, one FIFO per message kind.
type slotEntry struct {
	slot   models.SlotPoint
	dlTTI  []*models.DLTTIRequest
	ulTTI  []*models.ULTTIRequest
	ulDCI  []*models.ULDCIRequest
	txData []*models.TxDataRequest
}

func (e *slotEntry) size() int {
	return len(e.dlTTI) + len(e.ulTTI) + len(e.ulDCI) + len(e.txData)
}

func (e *slotEntry) reset(slot models.SlotPoint) {
	clear(e.dlTTI)
	clear(e.ulTTI)
	clear(e.ulDCI)
	clear(e.txData)
	e.slot = slot
	e.dlTTI = e.dlTTI[:0]
	e.ulTTI = e.ulTTI[:0]
	e.ulDCI = e.ulDCI[:0]
	e.txData = e.txData[:0]
}

// MessageBuffer delays slot messages until the slot they target becomes the current slot.
// It is not safe for concurrent use: a single execution context must own it.
type MessageBuffer struct {
	cellID        string
	numerology    uint8
	nofSlotsAhead int
	gateway       fapi.SlotMessageGateway
	errorNotifier fapi.ErrorMessageNotifier
	logger        *slog.Logger

	current models.SlotPoint
	// ring holds the window [current, current+nofSlotsAhead]; head is the position of current.
	ring []slotEntry
	head int
}

func NewMessageBuffer(cfg MessageBufferConfig) *MessageBuffer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errorNotifier := cfg.ErrorNotifier
	if errorNotifier == nil {
		errorNotifier = fapi.UnattachedErrorMessageNotifier
	}
	nofSlotsAhead := max(cfg.NofSlotsAhead, 0)
	return &MessageBuffer{
		cellID:        cfg.CellID,
		numerology:    cfg.Numerology,
		nofSlotsAhead: nofSlotsAhead,
		gateway:       cfg.Gateway,
		errorNotifier: errorNotifier,
		logger:        logger.With("cell", cfg.CellID, "component", "message-buffer"),
		ring:          make([]slotEntry, nofSlotsAhead+1),
	}
}

func (b *MessageBuffer) CurrentSlot() models.SlotPoint { return b.current }

// Pending returns the number of cached messages.
func (b *MessageBuffer) Pending() int {
	n := 0
	for i := range b.ring {
		n += b.ring[i].size()
	}
	return n
}

// entry returns the ring slot of a slot inside the window of the current slot.
func (b *MessageBuffer) entry(slot models.SlotPoint) *slotEntry {
	i := (b.head + slot.Sub(b.current)) % len(b.ring)
	if i < 0 {
		i += len(b.ring)
	}
	return &b.ring[i]
}

// UpdateCurrentSlot moves the cursor to slot. Messages left for slots that were skipped
// are dropped and reported out of sync.
func (b *MessageBuffer) UpdateCurrentSlot(slot models.SlotPoint) {
	prev := b.current
	if !prev.Valid() {
		b.current, b.head = slot, 0
		return
	}

	d := slot.Sub(prev)
	if d == 0 {
		return
	}
	if d < 0 {
		b.logger.Warn("slot indication went backwards", "previous", prev, "current", slot)
		b.current, b.head = slot, 0
		for i := range b.ring {
			b.dropStale(&b.ring[i])
		}
		return
	}

	var stale []*slotEntry
	for i := 1; i < min(d, len(b.ring)+1); i++ {
		if e := b.entry(prev.Add(i)); e.slot.Valid() && e.slot.Before(slot) {
			stale = append(stale, e)
		}
	}
	b.head = (b.head + d) % len(b.ring)
	b.current = slot
	for _, e := range stale {
		b.dropStale(e)
	}
}

func (b *MessageBuffer) dropStale(e *slotEntry) {
	if e.size() == 0 || !e.slot.Valid() {
		return
	}
	for _, m := range e.dlTTI {
		b.late(models.DLTTIRequestType, m.SFN, m.Slot)
	}
	for _, m := range e.ulTTI {
		b.late(models.ULTTIRequestType, m.SFN, m.Slot)
	}
	for _, m := range e.ulDCI {
		b.late(models.ULDCIRequestType, m.SFN, m.Slot)
	}
	for _, m := range e.txData {
		b.late(models.TxDataRequestType, m.SFN, m.Slot)
	}
	monitoring.BufferedMessages.WithLabelValues(b.cellID).Sub(float64(e.size()))
	e.reset(models.SlotPoint{})
}

// ForwardCachedMessages sends every message cached for slot, in submission order per kind.
func (b *MessageBuffer) ForwardCachedMessages(slot models.SlotPoint) {
	e := b.entry(slot)
	if e.size() == 0 || !e.slot.Equal(slot) {
		return
	}
	monitoring.BufferedMessages.WithLabelValues(b.cellID).Sub(float64(e.size()))
	for _, m := range e.dlTTI {
		b.gateway.DLTTIRequest(m)
	}
	for _, m := range e.ulTTI {
		b.gateway.ULTTIRequest(m)
	}
	for _, m := range e.ulDCI {
		b.gateway.ULDCIRequest(m)
	}
	for _, m := range e.txData {
		b.gateway.TxDataRequest(m)
	}
	e.reset(models.SlotPoint{})
}

func (b *MessageBuffer) DLTTIRequest(msg *models.DLTTIRequest) {
	e, now := b.admit(models.DLTTIRequestType, msg.SFN, msg.Slot)
	switch {
	case now:
		b.gateway.DLTTIRequest(msg)
	case e != nil:
		e.dlTTI = append(e.dlTTI, msg)
	}
}

func (b *MessageBuffer) ULTTIRequest(msg *models.ULTTIRequest) {
	e, now := b.admit(models.ULTTIRequestType, msg.SFN, msg.Slot)
	switch {
	case now:
		b.gateway.ULTTIRequest(msg)
	case e != nil:
		e.ulTTI = append(e.ulTTI, msg)
	}
}

func (b *MessageBuffer) ULDCIRequest(msg *models.ULDCIRequest) {
	e, now := b.admit(models.ULDCIRequestType, msg.SFN, msg.Slot)
	switch {
	case now:
		b.gateway.ULDCIRequest(msg)
	case e != nil:
		e.ulDCI = append(e.ulDCI, msg)
	}
}

func (b *MessageBuffer) TxDataRequest(msg *models.TxDataRequest) {
	e, now := b.admit(models.TxDataRequestType, msg.SFN, msg.Slot)
	switch {
	case now:
		b.gateway.TxDataRequest(msg)
	case e != nil:
		e.txData = append(e.txData, msg)
	}
}

// admit decides the fate of a message targeting (sfn, slot): forwarded now, cached in the
// returned entry, or dropped and reported when both results are zero.
func (b *MessageBuffer) admit(msgType models.MessageType, sfn, slot uint16) (e *slotEntry, now bool) {
	target, err := models.NewSlotPoint(b.numerology, uint32(sfn), uint32(slot))
	if err != nil {
		b.logger.Warn("message dropped", "msg_type", msgType, "sfn", sfn, "slot", slot, "error", err)
		b.reportError(msgType, models.ErrorCodeInvalidSfn, sfn, slot)
		return nil, false
	}
	if !b.current.Valid() {
		b.late(msgType, sfn, slot)
		return nil, false
	}

	d := target.Sub(b.current)
	switch {
	case d == 0:
		return nil, true
	case d < 0:
		b.late(msgType, sfn, slot)
		return nil, false
	case d > b.nofSlotsAhead:
		b.logger.Warn("message targets a slot beyond the buffer window",
			"msg_type", msgType, "target", target, "current", b.current, "slots_ahead", d)
		monitoring.EarlyMessages.WithLabelValues(b.cellID, msgType.String()).Inc()
		b.reportError(msgType, models.ErrorCodeSlotError, sfn, slot)
		return nil, false
	}

	e = b.entry(target)
	if !e.slot.Equal(target) {
		b.dropStale(e)
		e.reset(target)
	}
	monitoring.BufferedMessages.WithLabelValues(b.cellID).Inc()
	return e, false
}

// late reports a message whose slot has already been reached.
func (b *MessageBuffer) late(msgType models.MessageType, sfn, slot uint16) {
	b.logger.Warn("late message dropped", "msg_type", msgType, "sfn", sfn, "slot", slot, "current", b.current)
	monitoring.LateMessages.WithLabelValues(b.cellID, msgType.String()).Inc()

	ind := models.ErrorIndication{
		SFN:       sfn,
		Slot:      slot,
		MessageID: msgType,
		ErrorCode: models.ErrorCodeOutOfSync,
	}
	if b.current.Valid() {
		ind.ExpectedSFN = b.current.SFN()
		ind.ExpectedSlot = b.current.Slot()
	}
	monitoring.ErrorIndications.WithLabelValues(b.cellID, ind.ErrorCode.String()).Inc()
	b.errorNotifier.OnErrorIndication(ind)
}

func (b *MessageBuffer) reportError(msgType models.MessageType, code models.ErrorCode, sfn, slot uint16) {
	monitoring.ErrorIndications.WithLabelValues(b.cellID, code.String()).Inc()
	b.errorNotifier.OnErrorIndication(models.ErrorIndication{
		SFN:       sfn,
		Slot:      slot,
		MessageID: msgType,
		ErrorCode: code,
	})
}

var _ fapi.SlotMessageGateway = (*MessageBuffer)(nil)
