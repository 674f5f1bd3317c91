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

package validators

import (
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

var (
	carrierBandwidthRule = oneOf{5, 10, 15, 20, 25, 30, 40, 50, 60, 70, 80, 90, 100, 200, 400}
	carrierFrequencyRule = bounded{450000, 52600000}
	carrierK0Rule        = bounded{0, 23699}
	carrierGridSizeRule  = bounded{0, 275}
	numAntRule           = bounded{1, 65535}

	frameDuplexRule     = bounded{0, 1}
	ssPBCHPowerRule     = bounded{-60000, 50000}
	bchPayloadRule      = bounded{0, 2}
	prachSeqLengthRule  = bounded{0, 1}
	prachSubCSpacing    = bounded{0, 4}
	restrictedSetRule   = bounded{0, 3}
	numFdOccasionsRule  = bounded{1, 8}
	rootSequenceIdxRule = bounded{0, 837}
	numRootSeqRule      = bounded{1, 138}
	k1Rule              = bounded{-272, 272}
	zeroCorrConfRule    = bounded{0, 15}
	numUnusedRootRule   = bounded{0, 137}
	ssbPeriodRule       = bounded{0, 5}
	tddPeriodRule       = bounded{0, 9}
	tddSymbolRule       = bounded{0, 2}
	rssiMeasurementRule = bounded{0, 2}
)

// ValidateConfigRequest returns nil when the configuration is valid, a *ValidatorReport otherwise.
func ValidateConfigRequest(msg *models.ConfigRequest) error {
	r := NewValidatorReport(models.ConfigRequestType, 0, 0)
	validateCellConfig(r, &msg.Config)
	return r.Err()
}

func validateCellConfig(r *ValidatorReport, c *models.CellConfig) {
	validateCarrierConfig(r, &c.Carrier)

	check(r, nil, "Physical cell ID", int64(c.Cell.PhyCellID), physCellIDRule)
	check(r, nil, "Frame duplex type", int64(c.Cell.FrameDuplexType), frameDuplexRule)

	check(r, nil, "SS PBCH power", int64(c.SSB.SSPBCHPower), ssPBCHPowerRule)
	check(r, nil, "BCH payload", int64(c.SSB.BCHPayload), bchPayloadRule)
	check(r, nil, "Subcarrier spacing common", int64(c.SSB.SCSCommon), scsCommonRule)

	validatePRACHConfig(r, &c.PRACH)

	check(r, nil, "SSB offset point A", int64(c.SSBTable.SSBOffsetPointA), ssbOffsetPointARule)
	check(r, nil, "SSB period", int64(c.SSBTable.SSBPeriod), ssbPeriodRule)
	check(r, nil, "SSB subcarrier offset", int64(c.SSBTable.SSBSubcarrierOffset), ssbSubcarrierOffsetRule)
	if c.SSBTable.SSBMask[0] == 0 && c.SSBTable.SSBMask[1] == 0 {
		r.Append(0, "SSB mask", nil)
	}

	switch c.Cell.FrameDuplexType {
	case models.FrameDuplexTDD:
		validateTDDTable(r, c.TDDTable)
	case models.FrameDuplexFDD:
		if c.TDDTable != nil {
			r.Append(int64(c.TDDTable.TDDPeriod), "TDD period", nil)
		}
	}

	check(r, nil, "RSSI measurement", int64(c.Measurement.RSSIMeasurement), rssiMeasurementRule)
}

func validateCarrierConfig(r *ValidatorReport, c *models.CarrierConfig) {
	check(r, nil, "DL bandwidth", int64(c.DLBandwidth), carrierBandwidthRule)
	check(r, nil, "DL frequency", int64(c.DLFrequency), carrierFrequencyRule)
	for i := range c.DLK0 {
		check(r, nil, "DL k0", int64(c.DLK0[i]), carrierK0Rule)
		check(r, nil, "DL grid size", int64(c.DLGridSize[i]), carrierGridSizeRule)
	}
	check(r, nil, "Number of TX antennas", int64(c.NumTxAnt), numAntRule)

	check(r, nil, "UL bandwidth", int64(c.ULBandwidth), carrierBandwidthRule)
	check(r, nil, "UL frequency", int64(c.ULFrequency), carrierFrequencyRule)
	for i := range c.ULK0 {
		check(r, nil, "UL k0", int64(c.ULK0[i]), carrierK0Rule)
		check(r, nil, "UL grid size", int64(c.ULGridSize[i]), carrierGridSizeRule)
	}
	check(r, nil, "Number of RX antennas", int64(c.NumRxAnt), numAntRule)
	check(r, nil, "Frequency shift 7p5 kHz", int64(c.FrequencyShift7p5kHz), flag)
}

func validatePRACHConfig(r *ValidatorReport, c *models.PRACHConfig) {
	check(r, nil, "PRACH sequence length", int64(c.PRACHSequenceLength), prachSeqLengthRule)
	check(r, nil, "PRACH subcarrier spacing", int64(c.PRACHSubCSpacing), prachSubCSpacing)
	check(r, nil, "Restricted set config", int64(c.RestrictedSetConfig), restrictedSetRule)
	if check(r, nil, "Number of PRACH FD occasions", int64(c.NumPRACHFdOccasions), numFdOccasionsRule) {
		validatePDUCount(r, "Number of PRACH FD occasions", uint16(c.NumPRACHFdOccasions), uint16(len(c.FdOccasions)))
	}
	check(r, nil, "PRACH config index", int64(c.PRACHConfigIndex), exempt)
	for i := range c.FdOccasions {
		o := &c.FdOccasions[i]
		check(r, nil, "PRACH root sequence index", int64(o.RootSequenceIndex), rootSequenceIdxRule)
		check(r, nil, "Number of root sequences", int64(o.NumRootSequences), numRootSeqRule)
		check(r, nil, "K1", int64(o.K1), k1Rule)
		check(r, nil, "PRACH zero corr conf", int64(o.ZeroCorrConf), zeroCorrConfRule)
		check(r, nil, "Number of unused root sequences", int64(o.NumUnusedRootSequences), numUnusedRootRule)
	}
}

func validateTDDTable(r *ValidatorReport, t *models.TDDTableConfig) {
	if t == nil {
		r.Append(-1, "TDD period", nil)
		return
	}
	check(r, nil, "TDD period", int64(t.TDDPeriod), tddPeriodRule)
	for _, slot := range t.SlotConfig {
		check(r, nil, "Number of TDD symbols", int64(len(slot)), bounded{14, 14})
		for _, sym := range slot {
			check(r, nil, "TDD slot config", int64(sym), tddSymbolRule)
		}
	}
}

// ValidateParamResponse returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateParamResponse(msg *models.ParamResponse) error {
	r := NewValidatorReport(models.ParamResponseType, 0, 0)
	validateResponseCode(r, msg.ErrorCode)
	return r.Err()
}

// ValidateConfigResponse returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateConfigResponse(msg *models.ConfigResponse) error {
	r := NewValidatorReport(models.ConfigResponseType, 0, 0)
	validateResponseCode(r, msg.ErrorCode)
	return r.Err()
}

func validateResponseCode(r *ValidatorReport, code models.ErrorCode) {
	if !code.Valid() {
		r.Append(int64(code), "Error code", nil)
	}
}
