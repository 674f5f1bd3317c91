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

package ran

import (
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

const (
	coresetSize      = 48
	aggregationLevel = 4
	// DCI format 1_1 and 0_1 sizes for a plain single-codeword configuration.
	dciPayloadBits = 39
	defaultBWPSize = 273
)

// pduFactory builds PDUs consistent with the configuration of one cell.
type pduFactory struct {
	pci        uint16
	numerology uint8
	dlBWP      uint16
	ulBWP      uint16
	// rbsPerUE is the frequency allocation of one scheduled UE.
	rbsPerUE uint16
}

func newPDUFactory(cfg *models.CellConfig, maxUEsPerSlot int) pduFactory {
	num := cfg.Numerology()
	f := pduFactory{pci: cfg.Cell.PhyCellID, numerology: num, dlBWP: defaultBWPSize, ulBWP: defaultBWPSize}
	if int(num) < len(cfg.Carrier.DLGridSize) {
		if g := cfg.Carrier.DLGridSize[num]; g > 0 {
			f.dlBWP = g
		}
		if g := cfg.Carrier.ULGridSize[num]; g > 0 {
			f.ulBWP = g
		}
	}
	f.rbsPerUE = max(min(f.dlBWP, f.ulBWP)/uint16(max(maxUEsPerSlot, 1)), 1)
	return f
}

func (f pduFactory) pdcch(rntis []uint16) *models.DLPDCCHPDU {
	pdu := &models.DLPDCCHPDU{
		CoresetBWPSize:     min(coresetSize, f.dlBWP),
		SubcarrierSpacing:  f.numerology,
		DurationSymbols:    1,
		FreqDomainResource: [6]uint8{0xff},
		CCERegMappingType:  models.CCERegMappingNonInterleaved,
		RegBundleSize:      6,
		ShiftIndex:         f.pci,
	}
	for i, rnti := range rntis {
		pdu.DCIs = append(pdu.DCIs, models.DLDCI{
			RNTI:             rnti,
			NIDPDCCHData:     f.pci,
			CCEIndex:         uint16(i * aggregationLevel),
			AggregationLevel: aggregationLevel,
			PayloadBits:      dciPayloadBits,
			Payload:          make([]byte, (dciPayloadBits+7)/8),
		})
	}
	return pdu
}

func (f pduFactory) pdsch(rnti, pduIndex uint16, slotIdx int, tbSize uint32) *models.DLPDSCHPDU {
	return &models.DLPDSCHPDU{
		RNTI:              rnti,
		PDUIndex:          pduIndex,
		BWPSize:           f.dlBWP,
		SubcarrierSpacing: f.numerology,
		Codewords: []models.PDSCHCodeword{{
			TargetCodeRate: 4490,
			QamModOrder:    6,
			MCSIndex:       15,
			MCSTable:       1,
			TBSize:         tbSize,
		}},
		NIDPDSCH:                      f.pci,
		NumLayers:                     1,
		DLDMRSSymbPos:                 0x0004,
		DMRSScramblingID:              f.pci,
		NumDMRSCDMGrpsNoData:          2,
		DMRSPorts:                     1,
		ResourceAlloc:                 1,
		RBStart:                       uint16(slotIdx) * f.rbsPerUE,
		RBSize:                        f.rbsPerUE,
		StartSymbolIndex:              1,
		NrOfSymbols:                   13,
		PowerControlOffsetSSProfileNR: 1,
		LDPCBaseGraph:                 1,
	}
}

func (f pduFactory) ssb() *models.DLSSBPDU {
	return &models.DLSSBPDU{
		PhysCellID:        f.pci,
		BCHPayloadFlag:    1,
		Case:              2,
		SubcarrierSpacing: f.numerology,
		LMax:              4,
		MIB:               models.SSBMIB{DMRSTypeAPosition: 1},
	}
}

func (f pduFactory) prach() *models.ULPRACHPDU {
	return &models.ULPRACHPDU{PhysCellID: f.pci, NumPRACHOcas: 1, NumCS: 13}
}

func (f pduFactory) pusch(rnti uint16, handle uint32, slotIdx int, harqID uint8, tbSize uint32) *models.ULPUSCHPDU {
	return &models.ULPUSCHPDU{
		RNTI:                 rnti,
		Handle:               handle,
		BWPSize:              f.ulBWP,
		SubcarrierSpacing:    f.numerology,
		TargetCodeRate:       1930,
		QamModOrder:          2,
		MCSIndex:             5,
		TransformPrecoding:   models.TransformPrecodingDisabled,
		NIDPUSCH:             f.pci,
		NumLayers:            1,
		ULDMRSSymbPos:        0x0004,
		DMRSScramblingID:     f.pci,
		PUSCHDMRSIdentity:    f.pci,
		NumDMRSCDMGrpsNoData: 2,
		DMRSPorts:            1,
		ResourceAlloc:        1,
		RBStart:              uint16(slotIdx) * f.rbsPerUE,
		RBSize:               f.rbsPerUE,
		NrOfSymbols:          14,
		Data: &models.PUSCHData{
			HARQProcessID: harqID,
			NewData:       1,
			TBSize:        tbSize,
			// LDPC base graph 1 code blocks carry at most 8448 bits.
			NumCB: uint16((tbSize*8 + 8447) / 8448),
		},
	}
}

// pucch returns a format 1 PDU carrying one HARQ bit and, when sr is set, a scheduling request.
func (f pduFactory) pucch(rnti uint16, handle uint32, prb uint16, harq, sr bool) *models.ULPUCCHPDU {
	pdu := &models.ULPUCCHPDU{
		RNTI:               rnti,
		Handle:             handle,
		BWPSize:            f.ulBWP,
		SubcarrierSpacing:  f.numerology,
		FormatType:         models.PUCCHFormat1,
		PRBStart:           prb % f.ulBWP,
		PRBSize:            1,
		NrOfSymbols:        14,
		NIDPUCCHHopping:    f.pci,
		NIDPUCCHScrambling: f.pci,
	}
	if harq {
		pdu.BitLenHARQ = 1
	}
	if sr {
		pdu.SRBitLen = 1
	}
	return pdu
}

func (f pduFactory) srs(rnti uint16, handle uint32) *models.ULSRSPDU {
	return &models.ULSRSPDU{
		RNTI:              rnti,
		Handle:            handle,
		BWPSize:           f.ulBWP,
		SubcarrierSpacing: f.numerology,
		NumAntPorts:       1,
		NumSymbols:        1,
		NumRepetitions:    1,
		TimeStartPosition: 13,
		SequenceID:        f.pci,
		CombSize:          2,
		ResourceType:      2,
		TSRS:              srsPeriodSlots,
		TOffset:           uint16(rnti) % srsPeriodSlots,
	}
}
