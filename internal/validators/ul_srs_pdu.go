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
	srsAntPortsRule       = oneOf{1, 2, 4}
	srsNumSymbolsRule     = oneOf{1, 2, 4}
	srsRepetitionsRule    = oneOf{1, 2, 4}
	srsConfigIndexRule    = bounded{0, 63}
	srsBandwidthIndexRule = bounded{0, 3}
	srsCombSizeRule       = oneOf{2, 4}
	srsFreqPositionRule   = bounded{0, 67}
	srsFreqShiftRule      = bounded{0, 268}
	srsFreqHoppingRule    = bounded{0, 3}
	srsSeqHoppingRule     = bounded{0, 2}
	srsResourceTypeRule   = bounded{0, 2}

	// SRS periodicity in slots, TS 38.331 SRS-PeriodicityAndOffset.
	srsPeriodicities   = []int64{1, 2, 4, 5, 8, 10, 16, 20, 32, 40, 64, 80, 160, 320, 640, 1280, 2560}
	srsPeriodicityRule = oneOf(srsPeriodicities)

	srsCombOffsetRules = dispatch{
		2: bounded{0, 1},
		4: bounded{0, 3},
	}
	srsCyclicShiftRules = dispatch{
		2: bounded{0, 7},
		4: bounded{0, 11},
	}

	// The slot offset must fall inside one periodicity.
	srsOffsetRules = func() dispatch {
		d := make(dispatch, len(srsPeriodicities))
		for _, p := range srsPeriodicities {
			d[p] = bounded{0, p - 1}
		}
		return d
	}()
)

func validateULSRSPDU(r *ValidatorReport, pdu *models.ULSRSPDU) {
	t := models.ULPDUTypeSRS

	check(r, t, "RNTI", int64(pdu.RNTI), rntiRule)
	check(r, t, "Handle", int64(pdu.Handle), exempt)
	validateBWP(r, t, pdu.BWPSize, pdu.BWPStart, pdu.SubcarrierSpacing, pdu.CyclicPrefix)
	check(r, t, "Number of antenna ports", int64(pdu.NumAntPorts), srsAntPortsRule)
	check(r, t, "Number of symbols", int64(pdu.NumSymbols), srsNumSymbolsRule)
	check(r, t, "Number of repetitions", int64(pdu.NumRepetitions), srsRepetitionsRule)
	check(r, t, "Time start position", int64(pdu.TimeStartPosition), startSymbolRule)
	check(r, t, "Config index", int64(pdu.ConfigIndex), srsConfigIndexRule)
	check(r, t, "Sequence ID", int64(pdu.SequenceID), nid1023Rule)
	check(r, t, "Bandwidth index", int64(pdu.BandwidthIndex), srsBandwidthIndexRule)
	check(r, t, "Comb size", int64(pdu.CombSize), srsCombSizeRule)
	checkConditional(r, t, "Comb offset", int64(pdu.CombOffset), srsCombOffsetRules, int64(pdu.CombSize))
	checkConditional(r, t, "Cyclic shift", int64(pdu.CyclicShift), srsCyclicShiftRules, int64(pdu.CombSize))
	check(r, t, "Frequency position", int64(pdu.FrequencyPosition), srsFreqPositionRule)
	check(r, t, "Frequency shift", int64(pdu.FrequencyShift), srsFreqShiftRule)
	check(r, t, "Frequency hopping", int64(pdu.FrequencyHopping), srsFreqHoppingRule)
	check(r, t, "Group or sequence hopping", int64(pdu.GroupOrSequenceHopping), srsSeqHoppingRule)
	check(r, t, "Resource type", int64(pdu.ResourceType), srsResourceTypeRule)
	check(r, t, "T SRS", int64(pdu.TSRS), srsPeriodicityRule)
	checkConditional(r, t, "T offset", int64(pdu.TOffset), srsOffsetRules, int64(pdu.TSRS))
}
