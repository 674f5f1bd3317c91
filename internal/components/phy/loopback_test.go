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

package phy_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/phy"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models/fapitest"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/validators"
)

var slotDuration = models.SlotDuration(fapitest.Numerology)

func newLoopback(t *testing.T) (*phy.Loopback, *clockwork.FakeClock, *fapitest.Recorder) {
	t.Helper()
	clk := clockwork.NewFakeClockAt(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	rec := fapitest.NewRecorder()
	p := phy.New(phy.Config{CellID: t.Name(), Numerology: fapitest.Numerology, Clock: clk})
	p.SetSlotTimeMessageNotifier(rec)
	p.SetSlotDataMessageNotifier(rec)
	p.SetErrorMessageNotifier(rec)
	t.Cleanup(p.OnStopRequest)
	return p, clk, rec
}

// step delivers one tick and waits for its SLOT.indication.
func step(t *testing.T, clk *clockwork.FakeClock, rec *fapitest.Recorder) models.SlotIndication {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, 1))

	before := len(fapitest.Of[models.SlotIndication](rec))
	clk.Advance(slotDuration)
	require.Eventually(t, func() bool {
		return len(fapitest.Of[models.SlotIndication](rec)) == before+1
	}, time.Second, time.Millisecond)
	inds := fapitest.Of[models.SlotIndication](rec)
	return inds[len(inds)-1]
}

func TestLoopback_RefusesIncompatibleConfig(t *testing.T) {
	t.Parallel()

	p, _, _ := newLoopback(t)

	cfg := fapitest.ValidCellConfig()
	cfg.SSB.SCSCommon = 0
	require.False(t, p.OnStartRequest(cfg))

	cfg = fapitest.ValidCellConfig()
	cfg.Carrier.DLGridSize[fapitest.Numerology] = 0
	require.False(t, p.OnStartRequest(cfg))
	require.False(t, p.Running())

	require.True(t, p.OnStartRequest(fapitest.ValidCellConfig()))
	require.False(t, p.OnStartRequest(fapitest.ValidCellConfig()))
	require.Equal(t, uint64(1), p.Stats().Starts)
}

func TestLoopback_TicksSlotIndications(t *testing.T) {
	t.Parallel()

	p, clk, rec := newLoopback(t)
	require.True(t, p.OnStartRequest(fapitest.ValidCellConfig()))

	first := step(t, clk, rec)
	require.Equal(t, uint16(0), first.SFN)
	require.Equal(t, uint16(0), first.Slot)
	require.Equal(t, clk.Now(), first.TimeStamp)

	for want := uint16(1); want < 25; want++ {
		ind := step(t, clk, rec)
		n := uint16(models.NofSlotsPerFrame(fapitest.Numerology))
		require.Equal(t, want/n, ind.SFN)
		require.Equal(t, want%n, ind.Slot)
	}
	require.Equal(t, uint64(25), p.Stats().Slots)
}

func TestLoopback_StopHaltsTicker(t *testing.T) {
	t.Parallel()

	p, clk, rec := newLoopback(t)
	require.True(t, p.OnStartRequest(fapitest.ValidCellConfig()))
	step(t, clk, rec)

	p.OnStopRequest()
	require.False(t, p.Running())
	clk.Advance(10 * slotDuration)
	require.Len(t, fapitest.Of[models.SlotIndication](rec), 1)

	// A restart begins again at 0.0.
	require.True(t, p.OnStartRequest(fapitest.ValidCellConfig()))
	ind := step(t, clk, rec)
	require.Equal(t, models.SlotIndication{SFN: 0, Slot: 0, TimeStamp: clk.Now()}, ind)
}

func TestLoopback_RejectsOffSlotRequests(t *testing.T) {
	t.Parallel()

	p, clk, rec := newLoopback(t)
	p.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 0))
	inds := fapitest.Of[models.ErrorIndication](rec)
	require.Len(t, inds, 1)
	require.Equal(t, models.ErrorCodeInvalidState, inds[0].ErrorCode)

	require.True(t, p.OnStartRequest(fapitest.ValidCellConfig()))
	step(t, clk, rec)
	rec.Reset()

	p.TxDataRequest(fapitest.ValidTxDataRequest(0, 3))
	require.Equal(t, []models.ErrorIndication{{
		SFN:       0,
		Slot:      3,
		MessageID: models.TxDataRequestType,
		ErrorCode: models.ErrorCodeOutOfSync,
	}}, fapitest.Of[models.ErrorIndication](rec))

	p.DLTTIRequest(fapitest.ValidDLTTIRequest(0, 0))
	p.ULDCIRequest(fapitest.ValidULDCIRequest(0, 0))
	stats := p.Stats()
	require.Equal(t, uint64(1), stats.DLTTI)
	require.Equal(t, uint64(1), stats.ULDCI)
	require.Equal(t, uint64(2), stats.Rejected)
}

func TestLoopback_AnswersUplinkOnNextSlot(t *testing.T) {
	t.Parallel()

	p, clk, rec := newLoopback(t)
	require.True(t, p.OnStartRequest(fapitest.ValidCellConfig()))
	step(t, clk, rec)
	rec.Reset()

	p.ULTTIRequest(fapitest.ValidULTTIRequest(0, 0))
	require.Zero(t, rec.Len())
	step(t, clk, rec)

	events := rec.Events()
	require.Len(t, events, 6)
	require.IsType(t, models.SlotIndication{}, events[len(events)-1])

	crc := fapitest.Of[*models.CRCIndication](rec)
	require.Len(t, crc, 1)
	require.NoError(t, validators.ValidateCRCIndication(crc[0]))
	require.Equal(t, uint16(fapitest.RNTI), crc[0].PDUs[0].RNTI)

	rx := fapitest.Of[*models.RxDataIndication](rec)
	require.Len(t, rx, 1)
	require.NoError(t, validators.ValidateRxDataIndication(rx[0]))
	require.Equal(t, uint32(fapitest.TBSize), rx[0].PDUs[0].PDULength)

	uci := fapitest.Of[*models.UCIIndication](rec)
	require.Len(t, uci, 1)
	require.NoError(t, validators.ValidateUCIIndication(uci[0]))
	require.Len(t, uci[0].PDUs, 2)
	require.IsType(t, &models.UCIPUCCHFormat01PDU{}, uci[0].PDUs[0])
	require.IsType(t, &models.UCIPUCCHFormat234PDU{}, uci[0].PDUs[1])

	rach := fapitest.Of[*models.RACHIndication](rec)
	require.Len(t, rach, 1)
	require.NoError(t, validators.ValidateRACHIndication(rach[0]))

	srs := fapitest.Of[*models.SRSIndication](rec)
	require.Len(t, srs, 1)
	require.NoError(t, validators.ValidateSRSIndication(srs[0]))

	require.Equal(t, uint64(5), p.Stats().Indications)
}
