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

package buffer_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/buffer"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/utils"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models/fapitest"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

const numerology = fapitest.Numerology

func slotPoint(t *testing.T, sfn, slot uint32) models.SlotPoint {
	t.Helper()
	s, err := models.NewSlotPoint(numerology, sfn, slot)
	require.NoError(t, err)
	return s
}

// newBuffer returns a buffer forwarding to l1 and reporting to errs.
func newBuffer(t *testing.T, nofSlotsAhead int) (*buffer.MessageBuffer, *fapitest.Recorder, *fapitest.Recorder) {
	t.Helper()
	l1, errs := fapitest.NewRecorder(), fapitest.NewRecorder()
	b := buffer.NewMessageBuffer(buffer.MessageBufferConfig{
		CellID:        t.Name(),
		Numerology:    numerology,
		NofSlotsAhead: nofSlotsAhead,
		Gateway:       l1,
		ErrorNotifier: errs,
	})
	return b, l1, errs
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func tick(b *buffer.MessageBuffer, s models.SlotPoint) {
	b.UpdateCurrentSlot(s)
	b.ForwardCachedMessages(s)
}

func dlSlots(l1 *fapitest.Recorder) []uint16 {
	var out []uint16
	for _, m := range fapitest.Of[*models.DLTTIRequest](l1) {
		out = append(out, m.Slot)
	}
	return out
}

func TestMessageBuffer_ReleasesInSlotOrder(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 4)
	tick(b, slotPoint(t, 0, 0))

	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 3))
	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 2))
	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 1))
	require.Equal(t, 3, b.Pending())
	require.Zero(t, l1.Len())

	for s := uint32(1); s <= 3; s++ {
		tick(b, slotPoint(t, 0, s))
		require.Len(t, dlSlots(l1), int(s))
	}
	require.Equal(t, []uint16{1, 2, 3}, dlSlots(l1))
	require.Zero(t, b.Pending())
	require.Zero(t, errs.Len())
}

func TestMessageBuffer_KindOrderWithinSlot(t *testing.T) {
	t.Parallel()

	b, l1, _ := newBuffer(t, 2)
	tick(b, slotPoint(t, 0, 0))

	tx := fapitest.ValidTxDataRequest(0, 1)
	dci := fapitest.ValidULDCIRequest(0, 1)
	ul := fapitest.ValidULTTIRequest(0, 1)
	dl1 := fapitest.ValidDLTTIRequest(0, 1)
	dl2 := fapitest.ValidDLTTIRequest(0, 1)
	b.TxDataRequest(tx)
	b.ULDCIRequest(dci)
	b.ULTTIRequest(ul)
	b.DLTTIRequest(dl1)
	b.DLTTIRequest(dl2)

	tick(b, slotPoint(t, 0, 1))
	require.Equal(t, []any{dl1, dl2, ul, dci, tx}, l1.Events())
}

func TestMessageBuffer_CurrentSlotForwardedImmediately(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 2)
	tick(b, slotPoint(t, 5, 7))

	msg := fapitest.ValidULTTIRequest(5, 7)
	b.ULTTIRequest(msg)
	require.Equal(t, []any{msg}, l1.Events())
	require.Zero(t, b.Pending())
	require.Zero(t, errs.Len())
}

func TestMessageBuffer_PastSlotIsOutOfSync(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 2)
	tick(b, slotPoint(t, 0, 5))

	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 4))
	require.Zero(t, l1.Len())
	require.Equal(t, []models.ErrorIndication{{
		SFN:          0,
		Slot:         4,
		MessageID:    models.DLTTIRequestType,
		ErrorCode:    models.ErrorCodeOutOfSync,
		ExpectedSFN:  0,
		ExpectedSlot: 5,
	}}, fapitest.Of[models.ErrorIndication](errs))
}

func TestMessageBuffer_BeforeFirstSlotIsOutOfSync(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 2)
	b.TxDataRequest(fapitest.ValidTxDataRequest(0, 1))

	require.Zero(t, l1.Len())
	inds := fapitest.Of[models.ErrorIndication](errs)
	require.Len(t, inds, 1)
	require.Equal(t, models.ErrorCodeOutOfSync, inds[0].ErrorCode)
	require.Equal(t, models.TxDataRequestType, inds[0].MessageID)
}

func TestMessageBuffer_BeyondWindowIsSlotError(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 2)
	tick(b, slotPoint(t, 0, 0))

	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 2))
	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 3))
	require.Zero(t, l1.Len())
	require.Equal(t, 1, b.Pending())

	inds := fapitest.Of[models.ErrorIndication](errs)
	require.Len(t, inds, 1)
	require.Equal(t, models.ErrorCodeSlotError, inds[0].ErrorCode)
	require.Equal(t, uint16(3), inds[0].Slot)

	dl := models.DLTTIRequestType.String()
	require.Equal(t, 1.0, counterValue(t, monitoring.EarlyMessages.WithLabelValues(t.Name(), dl)))
	require.Zero(t, counterValue(t, monitoring.LateMessages.WithLabelValues(t.Name(), dl)))
}

func TestMessageBuffer_InvalidSlotIsInvalidSfn(t *testing.T) {
	t.Parallel()

	b, _, errs := newBuffer(t, 2)
	tick(b, slotPoint(t, 0, 0))

	// numerology 1 has 20 slots per frame.
	b.ULDCIRequest(fapitest.ValidULDCIRequest(0, 20))
	inds := fapitest.Of[models.ErrorIndication](errs)
	require.Len(t, inds, 1)
	require.Equal(t, models.ErrorCodeInvalidSfn, inds[0].ErrorCode)
	require.Zero(t, b.Pending())
}

func TestMessageBuffer_SkippedSlotsAreDropped(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 4)
	tick(b, slotPoint(t, 0, 0))

	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 1))
	b.ULTTIRequest(fapitest.ValidULTTIRequest(0, 2))
	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 3))

	tick(b, slotPoint(t, 0, 3))
	require.Equal(t, []uint16{3}, dlSlots(l1))
	require.Empty(t, fapitest.Of[*models.ULTTIRequest](l1))
	require.Zero(t, b.Pending())

	inds := fapitest.Of[models.ErrorIndication](errs)
	require.Len(t, inds, 2)
	for _, ind := range inds {
		require.Equal(t, models.ErrorCodeOutOfSync, ind.ErrorCode)
		require.Equal(t, uint16(3), ind.ExpectedSlot)
	}
}

func TestMessageBuffer_SFNWrap(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 3)
	last := models.NofSlotsPerFrame(numerology) - 1
	tick(b, slotPoint(t, 1023, last))

	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 1))
	b.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 0))
	require.Equal(t, 2, b.Pending())

	tick(b, slotPoint(t, 0, 0))
	tick(b, slotPoint(t, 0, 1))
	require.Equal(t, []uint16{0, 1}, dlSlots(l1))
	require.Zero(t, errs.Len())
}

func TestMessageBuffer_ReuseAfterWindowTurnsOver(t *testing.T) {
	t.Parallel()

	b, l1, errs := newBuffer(t, 1)
	cur := slotPoint(t, 10, 0)
	tick(b, cur)
	for range 50 {
		next := cur.Add(1)
		b.DLTTIRequest(fapitest.ValidDLTTIRequest(next.SFN(), next.Slot()))
		tick(b, next)
		cur = next
	}
	require.Len(t, fapitest.Of[*models.DLTTIRequest](l1), 50)
	require.Zero(t, errs.Len())
}

func TestSlotTimeNotifier_UpdateNotifyFlushOrder(t *testing.T) {
	t.Parallel()

	rec := fapitest.NewRecorder()
	b := buffer.NewMessageBuffer(buffer.MessageBufferConfig{
		CellID:        t.Name(),
		Numerology:    numerology,
		NofSlotsAhead: 2,
		Gateway:       rec,
		ErrorNotifier: rec,
	})
	n := buffer.NewSlotTimeNotifier(buffer.SlotTimeNotifierConfig{
		CellID:        t.Name(),
		Numerology:    numerology,
		NofSlotsAhead: 2,
		Buffer:        b,
		Executor:      utils.InlineExecutor{},
	})
	n.SetSlotTimeNotifier(rec)

	ts := time.Unix(1700000000, 0)
	n.OnSlotIndication(models.SlotIndication{SFN: 0, Slot: 0, TimeStamp: ts})
	require.Equal(t, []any{models.SlotIndication{SFN: 0, Slot: 2, TimeStamp: ts}}, rec.Events())

	msg := fapitest.ValidDLTTIRequest(0, 1)
	b.DLTTIRequest(msg)
	rec.Reset()

	n.OnSlotIndication(models.SlotIndication{SFN: 0, Slot: 1, TimeStamp: ts})
	require.Equal(t, []any{models.SlotIndication{SFN: 0, Slot: 3, TimeStamp: ts}, msg}, rec.Events())
}

func TestSlotTimeNotifier_AheadWrapsSFN(t *testing.T) {
	t.Parallel()

	rec := fapitest.NewRecorder()
	n := buffer.NewSlotTimeNotifier(buffer.SlotTimeNotifierConfig{
		CellID:        t.Name(),
		Numerology:    numerology,
		NofSlotsAhead: 3,
	})
	n.SetSlotTimeNotifier(rec)

	n.OnSlotIndication(models.SlotIndication{SFN: 1023, Slot: 19})
	require.Equal(t, []models.SlotIndication{{SFN: 0, Slot: 2}}, fapitest.Of[models.SlotIndication](rec))

	n.OnSlotIndication(models.SlotIndication{SFN: 3, Slot: 40})
	require.Equal(t, 1, rec.Len())
}

func TestBufferedGateway_BypassWithoutBuffer(t *testing.T) {
	t.Parallel()

	l1, upper := fapitest.NewRecorder(), fapitest.NewRecorder()
	g := buffer.NewBufferedGateway(t.Name(), nil, nil, l1, nil)
	n := buffer.NewSlotTimeNotifier(buffer.SlotTimeNotifierConfig{CellID: t.Name(), Numerology: numerology})
	n.SetSlotTimeNotifier(upper)

	n.OnSlotIndication(models.SlotIndication{SFN: 4, Slot: 4})
	require.Equal(t, []any{models.SlotIndication{SFN: 4, Slot: 4}}, upper.Events())

	// Without a buffer even a message for a past slot goes through.
	msg := fapitest.ValidDLTTIRequest(4, 1)
	g.DLTTIRequest(msg)
	tx := fapitest.ValidTxDataRequest(4, 1)
	g.TxDataRequest(tx)
	require.Equal(t, []any{msg, tx}, l1.Events())
}

func TestBufferedGateway_PoolExecutor(t *testing.T) {
	t.Parallel()

	l1, errs, upper := fapitest.NewRecorder(), fapitest.NewRecorder(), fapitest.NewRecorder()
	exec := utils.NewPoolExecutor(utils.PoolExecutorConfig{Name: "buffer", CellID: t.Name(), QueueSize: 64})
	defer exec.Stop()

	b := buffer.NewMessageBuffer(buffer.MessageBufferConfig{
		CellID:        t.Name(),
		Numerology:    numerology,
		NofSlotsAhead: 2,
		Gateway:       l1,
		ErrorNotifier: errs,
	})
	g := buffer.NewBufferedGateway(t.Name(), b, exec, l1, nil)
	n := buffer.NewSlotTimeNotifier(buffer.SlotTimeNotifierConfig{
		CellID:        t.Name(),
		Numerology:    numerology,
		NofSlotsAhead: 2,
		Buffer:        b,
		Executor:      exec,
	})
	n.SetSlotTimeNotifier(upper)

	n.OnSlotIndication(models.SlotIndication{SFN: 0, Slot: 0})
	g.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 2))
	g.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 1))
	n.OnSlotIndication(models.SlotIndication{SFN: 0, Slot: 1})
	n.OnSlotIndication(models.SlotIndication{SFN: 0, Slot: 2})

	require.Eventually(t, func() bool {
		return len(fapitest.Of[*models.DLTTIRequest](l1)) == 2
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, []uint16{1, 2}, dlSlots(l1))
	require.Len(t, fapitest.Of[models.SlotIndication](upper), 3)
	require.Zero(t, errs.Len())
}
