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

// Package fapitest builds FAPI messages that pass validation, as starting points for tests
// that corrupt a single field.
package fapitest

import (
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

const (
	Numerology = 1
	PhyCellID  = 1
	RNTI       = 0x4601
	BWPSize    = 273
	TBSize     = 1024
)

// ValidCellConfig is an FDD 20 MHz carrier on 30 kHz subcarrier spacing.
func ValidCellConfig() models.CellConfig {
	var grid [models.NumNumerologies]uint16
	grid[Numerology] = 51
	return models.CellConfig{
		Carrier: models.CarrierConfig{
			DLBandwidth: 20,
			DLFrequency: 3500000,
			DLGridSize:  grid,
			NumTxAnt:    1,
			ULBandwidth: 20,
			ULFrequency: 3500000,
			ULGridSize:  grid,
			NumRxAnt:    1,
		},
		Cell: models.CellParameters{PhyCellID: PhyCellID, FrameDuplexType: models.FrameDuplexFDD},
		SSB:  models.SSBConfig{SSPBCHPower: -25000, BCHPayload: 1, SCSCommon: Numerology},
		PRACH: models.PRACHConfig{
			PRACHSequenceLength: 1,
			PRACHSubCSpacing:    1,
			NumPRACHFdOccasions: 1,
			PRACHConfigIndex:    159,
			FdOccasions: []models.PRACHFdOccasion{
				{RootSequenceIndex: 1, NumRootSequences: 1, ZeroCorrConf: 12},
			},
			SSBPerRACH: 3,
		},
		SSBTable: models.SSBTableConfig{
			SSBPeriod: 2,
			SSBMask:   [2]uint32{0x80000000, 0},
		},
	}
}

// ValidTDDCellConfig is ValidCellConfig with a DDDDDDDSUU pattern.
func ValidTDDCellConfig() models.CellConfig {
	cfg := ValidCellConfig()
	cfg.Cell.FrameDuplexType = models.FrameDuplexTDD
	table := &models.TDDTableConfig{TDDPeriod: 6}
	for slot := 0; slot < 10; slot++ {
		symbols := make([]uint8, 14)
		for i := range symbols {
			switch {
			case slot < 7:
				symbols[i] = models.TDDSymbolDL
			case slot == 7:
				symbols[i] = models.TDDSymbolFlexible
			default:
				symbols[i] = models.TDDSymbolUL
			}
		}
		table.SlotConfig = append(table.SlotConfig, symbols)
	}
	cfg.TDDTable = table
	return cfg
}

func ValidPDCCHPDU(rnti uint16) *models.DLPDCCHPDU {
	return &models.DLPDCCHPDU{
		CoresetBWPSize:     48,
		SubcarrierSpacing:  Numerology,
		DurationSymbols:    1,
		FreqDomainResource: [6]uint8{0xff},
		CCERegMappingType:  models.CCERegMappingNonInterleaved,
		RegBundleSize:      6,
		DCIs: []models.DLDCI{{
			RNTI:             rnti,
			NIDPDCCHData:     PhyCellID,
			AggregationLevel: 4,
			PayloadBits:      39,
			Payload:          make([]byte, 5),
		}},
	}
}

func ValidPDSCHPDU(rnti uint16, tbSize uint32) *models.DLPDSCHPDU {
	return &models.DLPDSCHPDU{
		RNTI:              rnti,
		BWPSize:           BWPSize,
		SubcarrierSpacing: Numerology,
		Codewords: []models.PDSCHCodeword{{
			TargetCodeRate: 4490,
			QamModOrder:    6,
			MCSIndex:       15,
			MCSTable:       1,
			TBSize:         tbSize,
		}},
		NIDPDSCH:                      PhyCellID,
		NumLayers:                     1,
		DLDMRSSymbPos:                 0x0004,
		DMRSScramblingID:              PhyCellID,
		NumDMRSCDMGrpsNoData:          2,
		DMRSPorts:                     1,
		ResourceAlloc:                 1,
		RBSize:                        52,
		StartSymbolIndex:              1,
		NrOfSymbols:                   13,
		PowerControlOffsetSSProfileNR: 1,
		LDPCBaseGraph:                 1,
	}
}

func ValidCSIRSPDU() *models.DLCSIRSPDU {
	return &models.DLCSIRSPDU{
		SubcarrierSpacing:             Numerology,
		NumRBs:                        52,
		Type:                          1,
		Row:                           2,
		FreqDomain:                    0x001,
		SymbL0:                        4,
		SymbL1:                        8,
		FreqDensity:                   3,
		ScrambID:                      PhyCellID,
		PowerControlOffsetSSProfileNR: 1,
	}
}

func ValidSSBPDU(pci uint16) *models.DLSSBPDU {
	return &models.DLSSBPDU{
		PhysCellID:        pci,
		BCHPayloadFlag:    1,
		Case:              2,
		SubcarrierSpacing: Numerology,
		LMax:              4,
		MIB:               models.SSBMIB{DMRSTypeAPosition: 1, CellBarred: 1},
	}
}

func ValidPRSPDU() *models.DLPRSPDU {
	return &models.DLPRSPDU{
		SubcarrierSpacing: Numerology,
		CombSize:          2,
		CombOffset:        1,
		NumSymbols:        2,
		NumRBs:            24,
	}
}

// ValidDLTTIRequest carries one PDU of every DL type.
func ValidDLTTIRequest(sfn, slot uint16) *models.DLTTIRequest {
	return models.NewDLTTIRequest(sfn, slot,
		ValidPDCCHPDU(RNTI),
		ValidPDSCHPDU(RNTI, TBSize),
		ValidCSIRSPDU(),
		ValidSSBPDU(PhyCellID),
		ValidPRSPDU(),
	)
}

func ValidPRACHPDU(pci uint16) *models.ULPRACHPDU {
	return &models.ULPRACHPDU{PhysCellID: pci, NumPRACHOcas: 1, NumCS: 13}
}

func ValidPUSCHPDU(rnti uint16, tbSize uint32) *models.ULPUSCHPDU {
	return &models.ULPUSCHPDU{
		RNTI:                 rnti,
		BWPSize:              BWPSize,
		SubcarrierSpacing:    Numerology,
		TargetCodeRate:       1930,
		QamModOrder:          2,
		MCSIndex:             5,
		TransformPrecoding:   models.TransformPrecodingDisabled,
		NIDPUSCH:             PhyCellID,
		NumLayers:            1,
		ULDMRSSymbPos:        0x0004,
		DMRSScramblingID:     PhyCellID,
		PUSCHDMRSIdentity:    PhyCellID,
		NumDMRSCDMGrpsNoData: 2,
		DMRSPorts:            1,
		ResourceAlloc:        1,
		RBSize:               20,
		NrOfSymbols:          14,
		Data:                 &models.PUSCHData{NewData: 1, TBSize: tbSize, NumCB: 1},
	}
}

// ValidPUCCHPDU returns a format 1 PDU for format <= 1, a format 2 PDU otherwise.
func ValidPUCCHPDU(rnti uint16, format uint8) *models.ULPUCCHPDU {
	pdu := &models.ULPUCCHPDU{
		RNTI:               rnti,
		BWPSize:            BWPSize,
		SubcarrierSpacing:  Numerology,
		FormatType:         models.PUCCHFormat1,
		PRBSize:            1,
		NrOfSymbols:        14,
		NIDPUCCHHopping:    PhyCellID,
		NIDPUCCHScrambling: PhyCellID,
		SRBitLen:           1,
		BitLenHARQ:         1,
	}
	if format > models.PUCCHFormat1 {
		pdu.FormatType = models.PUCCHFormat2
		pdu.PRBSize = 4
		pdu.StartSymbolIndex = 12
		pdu.NrOfSymbols = 2
		pdu.CSIPart1BitLength = 11
	}
	return pdu
}

func ValidSRSPDU(rnti uint16) *models.ULSRSPDU {
	return &models.ULSRSPDU{
		RNTI:              rnti,
		BWPSize:           BWPSize,
		SubcarrierSpacing: Numerology,
		NumAntPorts:       1,
		NumSymbols:        1,
		NumRepetitions:    1,
		TimeStartPosition: 13,
		SequenceID:        PhyCellID,
		CombSize:          2,
		TSRS:              40,
		TOffset:           3,
	}
}

func ValidMsgAPUSCHPDU() *models.ULMsgAPUSCHPDU {
	return &models.ULMsgAPUSCHPDU{
		RARNTI:             1,
		BWPSize:            BWPSize,
		SubcarrierSpacing:  Numerology,
		TransformPrecoding: models.TransformPrecodingDisabled,
		NIDMsgAPUSCH:       PhyCellID,
		RBSize:             2,
		NrOfSymbols:        14,
		TBSize:             56,
	}
}

// ValidULTTIRequest carries one PDU of every UL type, PUCCH in both format families.
func ValidULTTIRequest(sfn, slot uint16) *models.ULTTIRequest {
	return models.NewULTTIRequest(sfn, slot,
		ValidPRACHPDU(PhyCellID),
		ValidPUSCHPDU(RNTI, TBSize),
		ValidPUCCHPDU(RNTI, models.PUCCHFormat1),
		ValidPUCCHPDU(RNTI, models.PUCCHFormat2),
		ValidSRSPDU(RNTI),
		ValidMsgAPUSCHPDU(),
	)
}

func ValidULDCIRequest(sfn, slot uint16) *models.ULDCIRequest {
	return models.NewULDCIRequest(sfn, slot, ValidPDCCHPDU(RNTI))
}

func ValidTxDataRequest(sfn, slot uint16) *models.TxDataRequest {
	return &models.TxDataRequest{
		SFN:  sfn,
		Slot: slot,
		PDUs: []models.TxDataPDU{models.NewTxDataPDU(0, 0, make([]byte, TBSize))},
	}
}

// ValidULMeasurements reports a good link.
func ValidULMeasurements() models.ULMeasurements {
	return models.ULMeasurements{
		ULSINRMetric:        200,
		TimingAdvanceOffset: 31,
		RSSI:                1000,
		RSRP:                900,
	}
}

func ValidCRCIndication(sfn, slot uint16) *models.CRCIndication {
	return &models.CRCIndication{
		SFN:  sfn,
		Slot: slot,
		PDUs: []models.CRCPDU{{
			RNTI:           RNTI,
			RAPID:          models.RAPIDUnset,
			TBCRCStatusOK:  1,
			NumCB:          9,
			CBCRCStatus:    make([]uint8, 2),
			ULMeasurements: ValidULMeasurements(),
		}},
	}
}

func ValidRACHIndication(sfn, slot uint16) *models.RACHIndication {
	return &models.RACHIndication{
		SFN:  sfn,
		Slot: slot,
		PDUs: []models.RACHPDU{{
			AvgRSSI: 100000,
			RSRP:    models.RSRPUnset,
			AvgSNR:  100,
			Preambles: []models.RACHPreamble{{
				PreambleIndex:         7,
				TimingAdvanceOffset:   10,
				TimingAdvanceOffsetNs: 5000,
				PreamblePower:         100000,
				PreambleSNR:           100,
			}},
		}},
	}
}

func ValidRxDataIndication(sfn, slot uint16) *models.RxDataIndication {
	data := make([]byte, TBSize)
	return &models.RxDataIndication{
		SFN:  sfn,
		Slot: slot,
		PDUs: []models.RxDataPDU{{
			RNTI:      RNTI,
			RAPID:     models.RAPIDUnset,
			PDULength: uint32(len(data)),
			Data:      data,
		}},
	}
}

// ValidUCIIndication carries one PDU of every UCI variant.
func ValidUCIIndication(sfn, slot uint16) *models.UCIIndication {
	harq := &models.UCIPayload{DetectionStatus: 1, ExpectedBitLength: 2, Payload: []byte{0x3}}
	return &models.UCIIndication{
		SFN:  sfn,
		Slot: slot,
		PDUs: []models.UCIPDU{
			&models.UCIPUSCHPDU{RNTI: RNTI, ULMeasurements: ValidULMeasurements(), HARQ: harq},
			&models.UCIPUCCHFormat01PDU{
				RNTI:           RNTI,
				ULMeasurements: ValidULMeasurements(),
				PUCCHFormat:    models.PUCCHFormat1,
				SR:             &models.UCISRFormat01{Indication: 1, Confidence: models.UCIConfidenceUnset},
				HARQ:           &models.UCIHARQFormat01{Confidence: 0, Values: []uint8{1}},
			},
			&models.UCIPUCCHFormat234PDU{
				RNTI:           RNTI,
				ULMeasurements: models.UnsetULMeasurements(),
				PUCCHFormat:    0,
				SR:             &models.UCISRFormat234{BitLength: 1, Payload: []byte{1}},
				HARQ:           harq,
				CSIPart1:       &models.UCIPayload{DetectionStatus: 1, ExpectedBitLength: 11, Payload: make([]byte, 2)},
			},
		},
	}
}

func ValidSRSIndication(sfn, slot uint16) *models.SRSIndication {
	return &models.SRSIndication{
		SFN:  sfn,
		Slot: slot,
		PDUs: []models.SRSIndicationPDU{{
			RNTI:                RNTI,
			TimingAdvanceOffset: 31,
		}},
	}
}
