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

type ParamRequest struct{}

type ParamResponse struct {
	ErrorCode ErrorCode
	NumTLVs   uint8
}

type ConfigRequest struct {
	Config CellConfig
}

// ConfigResponse carries optional diagnostic counters next to the error code.
type ConfigResponse struct {
	ErrorCode          ErrorCode
	NumInvalidTLVs     uint8
	NumIdleOnlyTLVs    uint8
	NumRunningOnlyTLVs uint8
	NumMissingTLVs     uint8
}

type StartRequest struct{}

type StopRequest struct{}

type StopIndication struct{}

const (
	FrameDuplexFDD uint8 = 0
	FrameDuplexTDD uint8 = 1
)

// NumNumerologies is the size of the per-numerology carrier arrays (k0, grid size).
const NumNumerologies = MaxNumerology + 1

// CellConfig is the accumulated TLV state written by CONFIG.request.
type CellConfig struct {
	Carrier     CarrierConfig     `yaml:"carrier" json:"carrier"`
	Cell        CellParameters    `yaml:"cell" json:"cell"`
	SSB         SSBConfig         `yaml:"ssb" json:"ssb"`
	PRACH       PRACHConfig       `yaml:"prach" json:"prach"`
	SSBTable    SSBTableConfig    `yaml:"ssbTable" json:"ssbTable"`
	TDDTable    *TDDTableConfig   `yaml:"tddTable,omitempty" json:"tddTable,omitempty"`
	Measurement MeasurementConfig `yaml:"measurement" json:"measurement"`
}

// Numerology is the common subcarrier spacing of the cell, used to address its slots.
func (c *CellConfig) Numerology() uint8 {
	return c.SSB.SCSCommon
}

type CarrierConfig struct {
	DLBandwidth          uint16                  `yaml:"dlBandwidth" json:"dlBandwidth"`
	DLFrequency          uint32                  `yaml:"dlFrequency" json:"dlFrequency"`
	DLK0                 [NumNumerologies]uint16 `yaml:"dlK0" json:"dlK0"`
	DLGridSize           [NumNumerologies]uint16 `yaml:"dlGridSize" json:"dlGridSize"`
	NumTxAnt             uint16                  `yaml:"numTxAnt" json:"numTxAnt"`
	ULBandwidth          uint16                  `yaml:"ulBandwidth" json:"ulBandwidth"`
	ULFrequency          uint32                  `yaml:"ulFrequency" json:"ulFrequency"`
	ULK0                 [NumNumerologies]uint16 `yaml:"ulK0" json:"ulK0"`
	ULGridSize           [NumNumerologies]uint16 `yaml:"ulGridSize" json:"ulGridSize"`
	NumRxAnt             uint16                  `yaml:"numRxAnt" json:"numRxAnt"`
	FrequencyShift7p5kHz uint8                   `yaml:"frequencyShift7p5khz" json:"frequencyShift7p5khz"`
}

type CellParameters struct {
	PhyCellID       uint16 `yaml:"phyCellId" json:"phyCellId"`
	FrameDuplexType uint8  `yaml:"frameDuplexType" json:"frameDuplexType"`
}

type SSBConfig struct {
	// SSPBCHPower is expressed in mdBm.
	SSPBCHPower int32 `yaml:"ssPbchPower" json:"ssPbchPower"`
	BCHPayload  uint8 `yaml:"bchPayload" json:"bchPayload"`
	SCSCommon   uint8 `yaml:"scsCommon" json:"scsCommon"`
}

type PRACHConfig struct {
	PRACHSequenceLength uint8             `yaml:"prachSequenceLength" json:"prachSequenceLength"`
	PRACHSubCSpacing    uint8             `yaml:"prachSubCSpacing" json:"prachSubCSpacing"`
	RestrictedSetConfig uint8             `yaml:"restrictedSetConfig" json:"restrictedSetConfig"`
	NumPRACHFdOccasions uint8             `yaml:"numPrachFdOccasions" json:"numPrachFdOccasions"`
	PRACHConfigIndex    uint8             `yaml:"prachConfigIndex" json:"prachConfigIndex"`
	FdOccasions         []PRACHFdOccasion `yaml:"fdOccasions" json:"fdOccasions"`
	SSBPerRACH          uint8             `yaml:"ssbPerRach" json:"ssbPerRach"`
}

type PRACHFdOccasion struct {
	RootSequenceIndex      uint16 `yaml:"rootSequenceIndex" json:"rootSequenceIndex"`
	NumRootSequences       uint8  `yaml:"numRootSequences" json:"numRootSequences"`
	K1                     int16  `yaml:"k1" json:"k1"`
	ZeroCorrConf           uint8  `yaml:"zeroCorrConf" json:"zeroCorrConf"`
	NumUnusedRootSequences uint8  `yaml:"numUnusedRootSequences" json:"numUnusedRootSequences"`
}

type SSBTableConfig struct {
	SSBOffsetPointA     uint16    `yaml:"ssbOffsetPointA" json:"ssbOffsetPointA"`
	SSBPeriod           uint8     `yaml:"ssbPeriod" json:"ssbPeriod"`
	SSBSubcarrierOffset uint8     `yaml:"ssbSubcarrierOffset" json:"ssbSubcarrierOffset"`
	MIB                 uint32    `yaml:"mib" json:"mib"`
	SSBMask             [2]uint32 `yaml:"ssbMask" json:"ssbMask"`
}

// SSBPeriodFrames maps the ssb_period code to a periodicity in frames (5 ms is rounded up).
func (s SSBTableConfig) SSBPeriodFrames() uint32 {
	switch s.SSBPeriod {
	case 0, 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	case 4:
		return 8
	default:
		return 16
	}
}

// TDD symbol types in TDDTableConfig.SlotConfig.
const (
	TDDSymbolDL uint8 = iota
	TDDSymbolUL
	TDDSymbolFlexible
)

type TDDTableConfig struct {
	TDDPeriod uint8 `yaml:"tddPeriod" json:"tddPeriod"`
	// SlotConfig holds one row of 14 symbol types per slot of the TDD period.
	SlotConfig [][]uint8 `yaml:"slotConfig" json:"slotConfig"`
}

type MeasurementConfig struct {
	RSSIMeasurement uint8 `yaml:"rssiMeasurement" json:"rssiMeasurement"`
}
