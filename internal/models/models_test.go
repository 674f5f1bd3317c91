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

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestModels_SlotPoint_NewSlotPoint(t *testing.T) {
	t.Parallel()

	sp, err := NewSlotPoint(1, 1023, 19)
	require.NoError(t, err)
	require.True(t, sp.Valid())
	require.Equal(t, uint16(1023), sp.SFN())
	require.Equal(t, uint16(19), sp.Slot())
	require.Equal(t, uint32(1023*20+19), sp.Count())
	require.Equal(t, "1023.19", sp.String())

	_, err = NewSlotPoint(1, 1024, 0)
	require.True(t, errors.Is(err, ErrInvalidSlotPoint))
	_, err = NewSlotPoint(1, 0, 20)
	require.True(t, errors.Is(err, ErrInvalidSlotPoint))
	_, err = NewSlotPoint(5, 0, 0)
	require.True(t, errors.Is(err, ErrInvalidNumerology))

	sp, err = NewSlotPoint(4, 0, MaxSlotIndex)
	require.NoError(t, err)
	require.Equal(t, uint16(MaxSlotIndex), sp.Slot())

	require.False(t, SlotPoint{}.Valid())
	require.Equal(t, "invalid", SlotPoint{}.String())
}

func TestModels_SlotPoint_AddWrapsAroundSFNPeriod(t *testing.T) {
	t.Parallel()

	last, err := NewSlotPoint(0, 1023, 9)
	require.NoError(t, err)

	next := last.Add(1)
	require.Equal(t, uint16(0), next.SFN())
	require.Equal(t, uint16(0), next.Slot())
	require.True(t, next.Add(-1).Equal(last))
	require.True(t, last.Add(10240).Equal(last))
}

func TestModels_SlotPoint_SubIsSignedAcrossWrap(t *testing.T) {
	t.Parallel()

	a, err := NewSlotPoint(1, 1023, 18)
	require.NoError(t, err)
	b := a.Add(4)

	require.Equal(t, 4, b.Sub(a))
	require.Equal(t, -4, a.Sub(b))
	require.True(t, a.Before(b))
	require.True(t, b.After(a))
	require.False(t, a.After(a))
}

func TestModels_SlotDuration(t *testing.T) {
	t.Parallel()

	require.Equal(t, time.Millisecond, SlotDuration(0))
	require.Equal(t, 500*time.Microsecond, SlotDuration(1))
	require.Equal(t, 62500*time.Nanosecond, SlotDuration(4))
	require.Equal(t, uint32(80), NofSlotsPerFrame(3))
}

func TestModels_MessageTypeCatalog(t *testing.T) {
	t.Parallel()

	mt, err := ToMessageType(0x80)
	require.NoError(t, err)
	require.Equal(t, DLTTIRequestType, mt)
	require.Equal(t, "DL_TTI.request", mt.String())

	_, err = ToMessageType(0x10)
	require.True(t, errors.Is(err, ErrUnknownMessageType))
	require.Equal(t, "UNKNOWN(0x10)", MessageType(0x10).String())

	code, err := ToErrorCode(3)
	require.NoError(t, err)
	require.Equal(t, ErrorCodeOutOfSync, code)
	require.Equal(t, "OUT_OF_SYNC", code.String())
	_, err = ToErrorCode(13)
	require.True(t, errors.Is(err, ErrUnknownErrorCode))
}

func TestModels_PDUCounters(t *testing.T) {
	t.Parallel()

	pdcch := &DLPDCCHPDU{DCIs: make([]DLDCI, 3)}
	dl := NewDLTTIRequest(0, 0, pdcch, &DLPDSCHPDU{}, &DLPDSCHPDU{}, &DLSSBPDU{})
	require.Equal(t, [NumDLPDUTypes + 1]uint16{1, 2, 0, 1, 0, 3}, dl.NumPDUsOfEachType)

	ul := NewULTTIRequest(0, 0,
		&ULPRACHPDU{},
		&ULPUCCHPDU{FormatType: PUCCHFormat0},
		&ULPUCCHPDU{FormatType: PUCCHFormat3},
		&ULPUSCHPDU{},
	)
	require.Equal(t, [NumULCounters]uint16{1, 1, 1, 1, 0, 0}, ul.NumPDUsOfEachType)

	dci := NewULDCIRequest(0, 0, pdcch, nil)
	require.Equal(t, [2]uint16{1, 3}, dci.NumDLTypes)
}

func TestModels_CellConfigNumerology(t *testing.T) {
	t.Parallel()

	cfg := CellConfig{SSB: SSBConfig{SCSCommon: 2}}
	require.Equal(t, uint8(2), cfg.Numerology())
	require.Equal(t, uint32(16), SSBTableConfig{SSBPeriod: 5}.SSBPeriodFrames())
	require.Equal(t, uint32(1), SSBTableConfig{SSBPeriod: 0}.SSBPeriodFrames())
}

func TestModels_UEStateText(t *testing.T) {
	t.Parallel()

	for _, s := range UEStates() {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back UEState
		require.NoError(t, back.UnmarshalText(text))
		require.Equal(t, s, back)
	}
	require.Equal(t, "UEState(42)", UEState(42).String())

	var s UEState
	require.ErrorContains(t, s.UnmarshalText([]byte("roaming")), "roaming")
	require.False(t, UEDeregistered.HasRNTI())
	require.True(t, UEIdle.HasRNTI())
}

func TestModels_UpStatsReport(t *testing.T) {
	t.Parallel()

	since := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewUpStats(0x4601, since)
	s.NewTransportBlock(false, 1000, since.Add(time.Second))
	s.NewTransportBlock(false, 1500, since.Add(2*time.Second))
	s.NewTransportBlock(true, 500, since.Add(3*time.Second))

	r := s.GenerateReport(since.Add(4 * time.Second))
	require.EqualValues(t, 2, r.NumDLTBs)
	require.EqualValues(t, 2500, r.DLBytes)
	require.InDelta(t, 5000.0, r.DLBitrate, 1e-9)
	require.InDelta(t, 1000.0, r.ULBitrate, 1e-9)
	require.Equal(t, since.Add(3*time.Second), r.LastULTTI)
	require.Contains(t, r.Dumps(), "RNTI:       0x4601")

	require.Zero(t, s.GenerateReport(since).DLBitrate)
}
