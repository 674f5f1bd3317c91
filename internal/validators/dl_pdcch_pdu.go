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

func regBundleKey(mapping, duration uint8) int64 {
	return int64(mapping)<<8 | int64(duration)
}

var (
	coresetDurationRule = bounded{1, 3}
	cceRegMappingRule   = bounded{0, 1}
	coresetShiftRule    = bounded{0, 275}
	cceIndexRule        = bounded{0, 135}
	aggregationRule     = oneOf{1, 2, 4, 8, 16}
	betaPDCCH10Rule     = bounded{0, 17}
	pdcchSSOffsetRule   = bounded{-8, 8}
	dciPayloadBitsRule  = bounded{1, 140}

	// REG bundle size keyed on (CCE-to-REG mapping type, CORESET duration).
	regBundleSizeRules = dispatch{
		regBundleKey(models.CCERegMappingNonInterleaved, 1): oneOf{6},
		regBundleKey(models.CCERegMappingNonInterleaved, 2): oneOf{6},
		regBundleKey(models.CCERegMappingNonInterleaved, 3): oneOf{6},
		regBundleKey(models.CCERegMappingInterleaved, 1):    oneOf{2, 6},
		regBundleKey(models.CCERegMappingInterleaved, 2):    oneOf{2, 6},
		regBundleKey(models.CCERegMappingInterleaved, 3):    oneOf{3, 6},
	}

	// The interleaver size is ignored by L1 for non-interleaved CORESETs.
	interleaverSizeRules = dispatch{
		int64(models.CCERegMappingNonInterleaved): exempt,
		int64(models.CCERegMappingInterleaved):    oneOf{2, 3, 6},
	}
)

func validateDLPDCCHPDU(r *ValidatorReport, pdu *models.DLPDCCHPDU) {
	t := models.DLPDUTypePDCCH

	check(r, t, "CORESET BWP size", int64(pdu.CoresetBWPSize), bwpSizeRule)
	check(r, t, "CORESET BWP start", int64(pdu.CoresetBWPStart), bwpStartRule)
	check(r, t, "Subcarrier spacing", int64(pdu.SubcarrierSpacing), scsRule)
	check(r, t, "Cyclic prefix", int64(pdu.CyclicPrefix), cyclicPrefixRule)
	check(r, t, "Start symbol index", int64(pdu.StartSymbolIndex), startSymbolRule)
	check(r, t, "Duration symbols", int64(pdu.DurationSymbols), coresetDurationRule)
	check(r, t, "CCE to REG mapping type", int64(pdu.CCERegMappingType), cceRegMappingRule)
	checkConditional(r, t, "REG bundle size", int64(pdu.RegBundleSize), regBundleSizeRules,
		regBundleKey(pdu.CCERegMappingType, pdu.DurationSymbols))
	checkConditional(r, t, "Interleaver size", int64(pdu.InterleaverSize), interleaverSizeRules,
		int64(pdu.CCERegMappingType))
	check(r, t, "CORESET type", int64(pdu.CoresetType), flag)
	check(r, t, "Shift index", int64(pdu.ShiftIndex), coresetShiftRule)
	check(r, t, "Precoder granularity", int64(pdu.PrecoderGranularity), flag)

	for i := range pdu.DCIs {
		validateDLDCI(r, &pdu.DCIs[i])
	}
}

func validateDLDCI(r *ValidatorReport, dci *models.DLDCI) {
	t := models.DLPDUTypePDCCH

	check(r, t, "RNTI", int64(dci.RNTI), rntiRule)
	check(r, t, "NID PDCCH data", int64(dci.NIDPDCCHData), exempt)
	check(r, t, "NRNTI PDCCH data", int64(dci.NRNTIPDCCHData), exempt)
	check(r, t, "CCE index", int64(dci.CCEIndex), cceIndexRule)
	check(r, t, "Aggregation level", int64(dci.AggregationLevel), aggregationRule)
	check(r, t, "Beta PDCCH 1_0", int64(dci.BetaPDCCH10), betaPDCCH10Rule)
	if dci.PowerControlOffsetSS != nil {
		check(r, t, "Power control offset SS", int64(*dci.PowerControlOffsetSS), pdcchSSOffsetRule)
	}
	if check(r, t, "DCI payload size in bits", int64(dci.PayloadBits), dciPayloadBitsRule) {
		if want := (int(dci.PayloadBits) + 7) / 8; len(dci.Payload) != want {
			r.Append(int64(len(dci.Payload)), "DCI payload length", t)
		}
	}
}
