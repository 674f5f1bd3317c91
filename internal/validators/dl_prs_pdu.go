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
	nidPRSRule         = bounded{0, 4095}
	prsCombSizeRule    = oneOf{2, 4, 6, 12}
	prsNumSymbolsRule  = oneOf{2, 4, 6, 12}
	prsFirstSymbolRule = bounded{0, 12}
	prsNumRBsRule      = bounded{24, 272}
	prsStartRBRule     = bounded{0, 2176}
	prsPowerOffsetRule = bounded{-60, 50}

	// The comb offset must address a subcarrier inside the comb.
	prsCombOffsetRules = dispatch{
		2:  bounded{0, 1},
		4:  bounded{0, 3},
		6:  bounded{0, 5},
		12: bounded{0, 11},
	}
)

func validateDLPRSPDU(r *ValidatorReport, pdu *models.DLPRSPDU) {
	t := models.DLPDUTypePRS

	check(r, t, "Subcarrier spacing", int64(pdu.SubcarrierSpacing), scsRule)
	check(r, t, "Cyclic prefix", int64(pdu.CyclicPrefix), cyclicPrefixRule)
	check(r, t, "NID PRS", int64(pdu.NIDPRS), nidPRSRule)
	check(r, t, "Comb size", int64(pdu.CombSize), prsCombSizeRule)
	checkConditional(r, t, "Comb offset", int64(pdu.CombOffset), prsCombOffsetRules, int64(pdu.CombSize))
	check(r, t, "Number of symbols", int64(pdu.NumSymbols), prsNumSymbolsRule)
	check(r, t, "First symbol", int64(pdu.FirstSymbol), prsFirstSymbolRule)
	check(r, t, "Number of RBs", int64(pdu.NumRBs), prsNumRBsRule)
	check(r, t, "Start RB", int64(pdu.StartRB), prsStartRBRule)
	if pdu.PowerOffset != nil {
		check(r, t, "PRS power offset", int64(*pdu.PowerOffset), prsPowerOffsetRule)
	}
}
