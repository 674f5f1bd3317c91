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
	betaPSSRule             = oneOf{0, 1, int64(models.BetaPSSUseSSSProfile)}
	ssbBlockIndexRule       = bounded{0, 63}
	ssbSubcarrierOffsetRule = bounded{0, 31}
	ssbOffsetPointARule     = bounded{0, 2199}
	bchPayloadFlagRule      = bounded{0, 2}
	ssbCaseRule             = bounded{0, 4}
	lMaxRule                = oneOf{4, 8, 64}
)

func validateDLSSBPDU(r *ValidatorReport, pdu *models.DLSSBPDU) {
	t := models.DLPDUTypeSSB

	check(r, t, "Physical cell ID", int64(pdu.PhysCellID), physCellIDRule)
	check(r, t, "Beta PSS profile NR", int64(pdu.BetaPSSProfileNR), betaPSSRule)
	check(r, t, "SSB block index", int64(pdu.SSBBlockIndex), ssbBlockIndexRule)
	check(r, t, "SSB subcarrier offset", int64(pdu.SSBSubcarrierOffset), ssbSubcarrierOffsetRule)
	check(r, t, "SSB offset point A", int64(pdu.SSBOffsetPointA), ssbOffsetPointARule)
	check(r, t, "BCH payload flag", int64(pdu.BCHPayloadFlag), bchPayloadFlagRule)
	check(r, t, "SSB case", int64(pdu.Case), ssbCaseRule)
	check(r, t, "Subcarrier spacing", int64(pdu.SubcarrierSpacing), scsRule)
	check(r, t, "L max", int64(pdu.LMax), lMaxRule)

	check(r, t, "DMRS type A position", int64(pdu.MIB.DMRSTypeAPosition), flag)
	check(r, t, "PDCCH config SIB1", int64(pdu.MIB.PDCCHConfigSIB1), exempt)
	check(r, t, "Cell barred", int64(pdu.MIB.CellBarred), flag)
	check(r, t, "Intra frequency reselection", int64(pdu.MIB.IntraFreqReselection), flag)
}
