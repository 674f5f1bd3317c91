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

package validators_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models/fapitest"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/validators"
)

func report(t *testing.T, err error) *validators.ValidatorReport {
	t.Helper()
	require.Error(t, err)
	var r *validators.ValidatorReport
	require.True(t, errors.As(err, &r))
	return r
}

func TestValidators_ReferenceMessagesAreValid(t *testing.T) {
	t.Parallel()

	cfg := fapitest.ValidCellConfig()
	tdd := fapitest.ValidTDDCellConfig()

	require.NoError(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.NoError(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: tdd}))
	require.NoError(t, validators.ValidateDLTTIRequest(fapitest.ValidDLTTIRequest(512, 10)))
	require.NoError(t, validators.ValidateULTTIRequest(fapitest.ValidULTTIRequest(512, 10)))
	require.NoError(t, validators.ValidateULDCIRequest(fapitest.ValidULDCIRequest(512, 10)))
	require.NoError(t, validators.ValidateTxDataRequest(fapitest.ValidTxDataRequest(512, 10)))
	require.NoError(t, validators.ValidateSlotIndication(&models.SlotIndication{SFN: 512, Slot: 10}))
	require.NoError(t, validators.ValidateCRCIndication(fapitest.ValidCRCIndication(512, 10)))
	require.NoError(t, validators.ValidateRACHIndication(fapitest.ValidRACHIndication(512, 10)))
	require.NoError(t, validators.ValidateRxDataIndication(fapitest.ValidRxDataIndication(512, 10)))
	require.NoError(t, validators.ValidateUCIIndication(fapitest.ValidUCIIndication(512, 10)))
	require.NoError(t, validators.ValidateSRSIndication(fapitest.ValidSRSIndication(512, 10)))
	require.NoError(t, validators.ValidateParamResponse(&models.ParamResponse{ErrorCode: models.ErrorCodeOK}))
	require.NoError(t, validators.ValidateConfigResponse(&models.ConfigResponse{ErrorCode: models.ErrorCodeInvalidConfig}))
	require.NoError(t, validators.ValidateErrorIndication(&models.ErrorIndication{
		SFN: 1, Slot: 2, MessageID: models.DLTTIRequestType, ErrorCode: models.ErrorCodeOutOfSync,
		ExpectedSFN: 1, ExpectedSlot: 3,
	}))
}

func TestValidators_SlotHeaderBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sfn, slot uint16
		invalid   []string
	}{
		{name: "lowest", sfn: 0, slot: 0},
		{name: "highest", sfn: 1023, slot: 159},
		{name: "sfn past range", sfn: 1024, slot: 0, invalid: []string{"sfn"}},
		{name: "slot past range", sfn: 0, slot: 160, invalid: []string{"slot"}},
		{name: "both past range", sfn: 1024, slot: 160, invalid: []string{"sfn", "slot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validators.ValidateSlotIndication(&models.SlotIndication{SFN: tt.sfn, Slot: tt.slot})
			if len(tt.invalid) == 0 {
				require.NoError(t, err)
				return
			}
			r := report(t, err)
			require.Equal(t, len(tt.invalid), r.NofErrors())
			require.True(t, r.HasHeaderErrors())
			for _, p := range tt.invalid {
				require.True(t, r.HasProperty(p), p)
			}
		})
	}
}

func TestValidators_Idempotent(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidDLTTIRequest(2000, 200)
	msg.PDUs[1].(*models.DLPDSCHPDU).NumLayers = 9

	first := report(t, validators.ValidateDLTTIRequest(msg))
	second := report(t, validators.ValidateDLTTIRequest(msg))
	require.Equal(t, first.Errors, second.Errors)
	require.Equal(t, 3, first.NofErrors())
}

func TestValidators_ReportsEveryViolation(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidULTTIRequest(1, 1)
	pusch := msg.PDUs[1].(*models.ULPUSCHPDU)
	pusch.RNTI = 0
	pusch.NumLayers = 5
	pusch.MCSIndex = 32
	pusch.StartSymbolIndex = 14
	pucch := msg.PDUs[2].(*models.ULPUCCHPDU)
	pucch.InitialCyclicShift = 12

	r := report(t, validators.ValidateULTTIRequest(msg))
	require.Equal(t, 5, r.NofErrors())
	for _, e := range r.Errors {
		require.Equal(t, models.ULTTIRequestType, e.MessageType)
	}
	require.Equal(t, models.ULPDUTypePUSCH, r.Errors[0].PDUType)
	require.Equal(t, "RNTI", r.Errors[0].Property)
	require.Equal(t, int64(0), r.Errors[0].Value)
	require.Equal(t, models.ULPDUTypePUCCH, r.Errors[4].PDUType)
}

func TestValidators_PDUCountMismatch(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidDLTTIRequest(1, 1)
	msg.NumPDUsOfEachType[models.DLPDUTypeSSB] = 2
	msg.NumPDUsOfEachType[models.DLDCICountIndex] = 0

	r := report(t, validators.ValidateDLTTIRequest(msg))
	require.Equal(t, 2, r.NofErrors())
	require.True(t, r.HasProperty("Number of SSB PDUs"))
	require.True(t, r.HasProperty("Number of DL DCIs"))
	require.False(t, r.HasHeaderErrors())
}

func TestValidators_UnknownPDUVariant(t *testing.T) {
	t.Parallel()

	var pdsch *models.DLPDSCHPDU
	msg := models.NewDLTTIRequest(1, 1, nil, pdsch)
	r := report(t, validators.ValidateDLTTIRequest(msg))
	require.True(t, r.HasProperty("PDU type"))

	ul := models.NewULTTIRequest(1, 1, (*models.ULSRSPDU)(nil))
	r = report(t, validators.ValidateULTTIRequest(ul))
	require.True(t, r.HasProperty("PDU type"))
}

func TestValidators_PDULevelEntryPoints(t *testing.T) {
	t.Parallel()

	pdcch := fapitest.ValidPDCCHPDU(fapitest.RNTI)
	require.Zero(t, validators.ValidateDLTTIPDU(pdcch, models.ULDCIRequestType).NofErrors())

	pdcch.DCIs[0].AggregationLevel = 3
	r := validators.ValidateDLTTIPDU(pdcch, models.ULDCIRequestType)
	require.Equal(t, 1, r.NofErrors())
	require.Equal(t, models.ULDCIRequestType, r.Errors[0].MessageType)

	srs := fapitest.ValidSRSPDU(fapitest.RNTI)
	srs.TSRS = 3
	r = validators.ValidateULTTIPDU(srs, models.ULTTIRequestType)
	require.Equal(t, 1, r.NofErrors())
	require.True(t, r.HasProperty("T SRS"))
}

func TestValidators_CRCRapidBoundaries(t *testing.T) {
	t.Parallel()

	for _, rapid := range []uint8{0, 63, models.RAPIDUnset} {
		msg := fapitest.ValidCRCIndication(1, 1)
		msg.PDUs[0].RAPID = rapid
		require.NoError(t, validators.ValidateCRCIndication(msg), "rapid %d", rapid)
	}
	for _, rapid := range []uint8{64, 128, 254} {
		msg := fapitest.ValidCRCIndication(1, 1)
		msg.PDUs[0].RAPID = rapid
		r := report(t, validators.ValidateCRCIndication(msg))
		require.True(t, r.HasProperty("RAPID"), "rapid %d", rapid)
	}
}

func TestValidators_CRCCodeBlockStatusLength(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidCRCIndication(1, 1)
	msg.PDUs[0].NumCB = 17
	r := report(t, validators.ValidateCRCIndication(msg))
	require.True(t, r.HasProperty("CB CRC status length"))

	msg.PDUs[0].CBCRCStatus = make([]uint8, 3)
	require.NoError(t, validators.ValidateCRCIndication(msg))
}

func TestValidators_SRSCombOffsetDependsOnCombSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		comb, offset uint8
		valid        bool
	}{
		{comb: 2, offset: 0, valid: true},
		{comb: 2, offset: 1, valid: true},
		{comb: 2, offset: 2, valid: false},
		{comb: 4, offset: 3, valid: true},
		{comb: 4, offset: 4, valid: false},
	}
	for _, tt := range tests {
		srs := fapitest.ValidSRSPDU(fapitest.RNTI)
		srs.CombSize = tt.comb
		srs.CombOffset = tt.offset
		r := validators.ValidateULTTIPDU(srs, models.ULTTIRequestType)
		require.Equal(t, !tt.valid, r.HasProperty("Comb offset"), "comb %d offset %d", tt.comb, tt.offset)
	}
}

func TestValidators_InvalidControllingFieldSkipsDependentCheck(t *testing.T) {
	t.Parallel()

	prs := fapitest.ValidPRSPDU()
	prs.CombSize = 3
	prs.CombOffset = 200
	r := validators.ValidateDLTTIPDU(prs, models.DLTTIRequestType)
	require.Equal(t, 1, r.NofErrors())
	require.True(t, r.HasProperty("Comb size"))

	prs.CombSize = 12
	prs.CombOffset = 11
	require.Zero(t, validators.ValidateDLTTIPDU(prs, models.DLTTIRequestType).NofErrors())
}

func TestValidators_PDCCHInterleaving(t *testing.T) {
	t.Parallel()

	pdcch := fapitest.ValidPDCCHPDU(fapitest.RNTI)
	pdcch.InterleaverSize = 200
	require.Zero(t, validators.ValidateDLTTIPDU(pdcch, models.DLTTIRequestType).NofErrors())

	pdcch.CCERegMappingType = models.CCERegMappingInterleaved
	pdcch.DurationSymbols = 3
	pdcch.RegBundleSize = 2
	r := validators.ValidateDLTTIPDU(pdcch, models.DLTTIRequestType)
	require.True(t, r.HasProperty("REG bundle size"))
	require.True(t, r.HasProperty("Interleaver size"))

	pdcch.RegBundleSize = 3
	pdcch.InterleaverSize = 6
	require.Zero(t, validators.ValidateDLTTIPDU(pdcch, models.DLTTIRequestType).NofErrors())
}

func TestValidators_PUSCHPi2BPSKRequiresTransformPrecoding(t *testing.T) {
	t.Parallel()

	pusch := fapitest.ValidPUSCHPDU(fapitest.RNTI, fapitest.TBSize)
	pusch.QamModOrder = models.QamModOrderPi2BPSK
	r := validators.ValidateULTTIPDU(pusch, models.ULTTIRequestType)
	require.True(t, r.HasProperty("QAM modulation order"))

	pusch.TransformPrecoding = models.TransformPrecodingEnabled
	require.Zero(t, validators.ValidateULTTIPDU(pusch, models.ULTTIRequestType).NofErrors())
}

func TestValidators_PDSCHMaintenanceDependsOnTransType(t *testing.T) {
	t.Parallel()

	pdsch := fapitest.ValidPDSCHPDU(fapitest.RNTI, fapitest.TBSize)
	pdsch.Maintenance.InitialDLBWPSize = 48
	r := validators.ValidateDLTTIPDU(pdsch, models.DLTTIRequestType)
	require.True(t, r.HasProperty("Initial DL BWP size"))

	pdsch.Maintenance.TransType = models.PDSCHTransTypeNonInterleavedCommonType0
	pdsch.Maintenance.CoresetStartPoint = 10
	require.Zero(t, validators.ValidateDLTTIPDU(pdsch, models.DLTTIRequestType).NofErrors())
}

func TestValidators_PUCCHFormatDependentFields(t *testing.T) {
	t.Parallel()

	f2 := fapitest.ValidPUCCHPDU(fapitest.RNTI, models.PUCCHFormat2)
	f2.NrOfSymbols = 4
	r := validators.ValidateULTTIPDU(f2, models.ULTTIRequestType)
	require.Equal(t, 1, r.NofErrors())
	require.True(t, r.HasProperty("Number of symbols"))

	f4 := fapitest.ValidPUCCHPDU(fapitest.RNTI, models.PUCCHFormat1)
	f4.FormatType = models.PUCCHFormat4
	f4.PreDFTOCCLen = 2
	f4.PreDFTOCCIdx = 2
	r = validators.ValidateULTTIPDU(f4, models.ULTTIRequestType)
	require.Equal(t, 1, r.NofErrors())
	require.True(t, r.HasProperty("Pre DFT OCC index"))
}

func TestValidators_ULDCIRequest(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidULDCIRequest(1, 1)
	msg.NumDLTypes[1] = 4
	msg.PDUs[0].DCIs[0].Payload = nil

	r := report(t, validators.ValidateULDCIRequest(msg))
	require.Equal(t, 2, r.NofErrors())
	require.True(t, r.HasProperty("Number of DL DCIs"))
	require.True(t, r.HasProperty("DCI payload length"))
}

func TestValidators_TxDataRequest(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidTxDataRequest(1, 1)
	msg.PDUs[0].PDULength++
	msg.PDUs[0].CWIndex = 2
	r := report(t, validators.ValidateTxDataRequest(msg))
	require.True(t, r.HasProperty("PDU length"))
	require.True(t, r.HasProperty("CW index"))

	msg.PDUs[0].TLVs = nil
	r = report(t, validators.ValidateTxDataRequest(msg))
	require.True(t, r.HasProperty("Number of TLVs"))
	require.False(t, r.HasProperty("PDU length"))
}

func TestValidators_ErrorIndication(t *testing.T) {
	t.Parallel()

	msg := &models.ErrorIndication{
		MessageID:   models.MessageType(0x7f),
		ErrorCode:   models.ErrorCodeOutOfSync,
		ExpectedSFN: 1024,
	}
	r := report(t, validators.ValidateErrorIndication(msg))
	require.Equal(t, 2, r.NofErrors())
	require.True(t, r.HasProperty("Message ID"))
	require.True(t, r.HasProperty("Expected SFN"))

	msg.MessageID = models.ULTTIRequestType
	msg.ErrorCode = models.ErrorCodeSlotError
	require.NoError(t, validators.ValidateErrorIndication(msg))
}

func TestValidators_UCIIndication(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidUCIIndication(1, 1)
	f01 := msg.PDUs[1].(*models.UCIPUCCHFormat01PDU)
	f01.HARQ.Values = []uint8{1, 2, 0}
	f234 := msg.PDUs[2].(*models.UCIPUCCHFormat234PDU)
	f234.CSIPart1.DetectionStatus = 0
	msg.PDUs = append(msg.PDUs, nil)

	r := report(t, validators.ValidateUCIIndication(msg))
	require.Equal(t, 3, r.NofErrors())
	require.True(t, r.HasProperty("Number of HARQ"))
	require.True(t, r.HasProperty("CSI part 1 detection status"))
	require.True(t, r.HasProperty("PDU type"))
}

func TestValidators_RACHIndication(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidRACHIndication(1, 1)
	msg.PDUs[0].AvgSNR = models.RACHSNRUnset
	msg.PDUs[0].AvgRSSI = models.RACHRSSIUnset
	require.NoError(t, validators.ValidateRACHIndication(msg))

	msg.PDUs[0].Preambles = nil
	r := report(t, validators.ValidateRACHIndication(msg))
	require.True(t, r.HasProperty("Number of preambles"))
}

func TestValidators_MeasurementSentinels(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidCRCIndication(1, 1)
	msg.PDUs[0].ULMeasurements = models.UnsetULMeasurements()
	require.NoError(t, validators.ValidateCRCIndication(msg))

	msg.PDUs[0].RSSI = 1281
	msg.PDUs[0].TimingAdvanceOffset = 64
	r := report(t, validators.ValidateCRCIndication(msg))
	require.Equal(t, 2, r.NofErrors())
}

func TestValidators_ConfigRequest(t *testing.T) {
	t.Parallel()

	cfg := fapitest.ValidCellConfig()
	cfg.Cell.PhyCellID = 2000
	r := report(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.Equal(t, 1, r.NofErrors())
	require.Equal(t, "Physical cell ID", r.Errors[0].Property)
	require.Equal(t, int64(2000), r.Errors[0].Value)

	cfg = fapitest.ValidCellConfig()
	cfg.Carrier.DLBandwidth = 35
	cfg.PRACH.NumPRACHFdOccasions = 2
	cfg.SSBTable.SSBMask = [2]uint32{}
	r = report(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.Equal(t, 3, r.NofErrors())

	cfg = fapitest.ValidCellConfig()
	cfg.Cell.FrameDuplexType = models.FrameDuplexTDD
	r = report(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.True(t, r.HasProperty("TDD period"))

	cfg = fapitest.ValidTDDCellConfig()
	cfg.TDDTable.SlotConfig[3][5] = 3
	r = report(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.True(t, r.HasProperty("TDD slot config"))

	cfg.Cell.FrameDuplexType = models.FrameDuplexFDD
	r = report(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.True(t, r.HasProperty("TDD period"))

	cfg = fapitest.ValidCellConfig()
	cfg.SSB.SCSCommon = 3
	require.NoError(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	cfg.SSB.SCSCommon = 4
	r = report(t, validators.ValidateConfigRequest(&models.ConfigRequest{Config: cfg}))
	require.Equal(t, 1, r.NofErrors())
	require.Equal(t, "Subcarrier spacing common", r.Errors[0].Property)
	require.Equal(t, int64(4), r.Errors[0].Value)
}

func TestValidators_ReportFormatting(t *testing.T) {
	t.Parallel()

	msg := fapitest.ValidDLTTIRequest(3, 4)
	msg.PDUs[3].(*models.DLSSBPDU).PhysCellID = 1008
	err := validators.ValidateDLTTIRequest(msg)
	require.EqualError(t, err, "DL_TTI.request at 3.4: 1 invalid properties; SSB Physical cell ID=1008")

	merged := validators.NewValidatorReport(models.ULDCIRequestType, 3, 4)
	merged.Merge(report(t, err))
	merged.Merge(nil)
	require.Equal(t, 1, merged.NofErrors())
	require.Equal(t, models.ULDCIRequestType, merged.Errors[0].MessageType)
	require.Equal(t, "UL_DCI.request/SSB: Physical cell ID=1008", merged.Errors[0].String())
}
