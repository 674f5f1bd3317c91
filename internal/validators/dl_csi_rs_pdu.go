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
	csiStartRBRule     = bounded{0, 274}
	csiNumRBsRule      = bounded{24, 276}
	csiTypeRule        = bounded{0, 2}
	csiRowRule         = bounded{1, 18}
	csiSymbL0Rule      = bounded{0, 13}
	csiSymbL1Rule      = bounded{2, 12}
	csiCDMTypeRule     = bounded{0, 3}
	csiFreqDensityRule = bounded{0, 3}

	// Size of the frequency domain allocation bitmap per CSI-RS location table row (TS 38.211 7.4.1.5.3).
	csiFreqDomainRules = func() dispatch {
		d := dispatch{1: bitmap(4), 2: bitmap(12), 4: bitmap(3)}
		for row := int64(3); row <= 18; row++ {
			if row != 4 {
				d[row] = bitmap(6)
			}
		}
		return d
	}()
)

func validateDLCSIRSPDU(r *ValidatorReport, pdu *models.DLCSIRSPDU) {
	t := models.DLPDUTypeCSIRS

	check(r, t, "Subcarrier spacing", int64(pdu.SubcarrierSpacing), scsRule)
	check(r, t, "Cyclic prefix", int64(pdu.CyclicPrefix), cyclicPrefixRule)
	check(r, t, "Start RB", int64(pdu.StartRB), csiStartRBRule)
	check(r, t, "Number of RBs", int64(pdu.NumRBs), csiNumRBsRule)
	check(r, t, "CSI type", int64(pdu.Type), csiTypeRule)
	check(r, t, "Row", int64(pdu.Row), csiRowRule)
	checkConditional(r, t, "Frequency domain", int64(pdu.FreqDomain), csiFreqDomainRules, int64(pdu.Row))
	check(r, t, "Symbol L0", int64(pdu.SymbL0), csiSymbL0Rule)
	check(r, t, "Symbol L1", int64(pdu.SymbL1), csiSymbL1Rule)
	check(r, t, "CDM type", int64(pdu.CDMType), csiCDMTypeRule)
	check(r, t, "Frequency density", int64(pdu.FreqDensity), csiFreqDensityRule)
	check(r, t, "Scrambling ID", int64(pdu.ScrambID), nid1023Rule)
	check(r, t, "Power control offset profile NR", int64(pdu.PowerControlOffsetProfileNR), powerOffsetProfileRule)
	check(r, t, "Power control offset SS profile NR", int64(pdu.PowerControlOffsetSSProfileNR), powerOffsetSSRule)
}
