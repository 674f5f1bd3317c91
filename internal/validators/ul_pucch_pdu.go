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
	pucchFormatRule        = bounded{0, 4}
	multiSlotTxRule        = bounded{0, 3}
	pucchPRBStartRule      = bounded{0, 274}
	groupHopFlagRule       = bounded{0, 2}
	initialCyclicShiftRule = bounded{0, 11}
	timeDomainOCCRule      = bounded{0, 6}
	m0CyclicShiftRule      = bounded{0, 9}
	srBitLenRule           = bounded{0, 4}

	pucchPRBSizeRules = dispatch{
		int64(models.PUCCHFormat0): oneOf{1},
		int64(models.PUCCHFormat1): oneOf{1},
		int64(models.PUCCHFormat2): bounded{1, 16},
		int64(models.PUCCHFormat3): oneOf{1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 15, 16},
		int64(models.PUCCHFormat4): oneOf{1},
	}

	// Short formats span one or two symbols, long formats four to fourteen.
	pucchNrOfSymbolsRules = dispatch{
		int64(models.PUCCHFormat0): bounded{1, 2},
		int64(models.PUCCHFormat1): bounded{4, 14},
		int64(models.PUCCHFormat2): bounded{1, 2},
		int64(models.PUCCHFormat3): bounded{4, 14},
		int64(models.PUCCHFormat4): bounded{4, 14},
	}

	// Pre-DFT OCC only applies to format 4.
	preDFTOCCLenRules = dispatch{
		int64(models.PUCCHFormat0): exempt,
		int64(models.PUCCHFormat1): exempt,
		int64(models.PUCCHFormat2): exempt,
		int64(models.PUCCHFormat3): exempt,
		int64(models.PUCCHFormat4): oneOf{2, 4},
	}
	preDFTOCCIdxRules = dispatch{
		2: bounded{0, 1},
		4: bounded{0, 3},
	}
)

func validateULPUCCHPDU(r *ValidatorReport, pdu *models.ULPUCCHPDU) {
	t := models.ULPDUTypePUCCH

	check(r, t, "RNTI", int64(pdu.RNTI), rntiRule)
	check(r, t, "Handle", int64(pdu.Handle), exempt)
	validateBWP(r, t, pdu.BWPSize, pdu.BWPStart, pdu.SubcarrierSpacing, pdu.CyclicPrefix)
	check(r, t, "Format type", int64(pdu.FormatType), pucchFormatRule)
	check(r, t, "Multi slot tx indicator", int64(pdu.MultiSlotTxIndicator), multiSlotTxRule)
	check(r, t, "Pi/2 BPSK", int64(pdu.Pi2BPSK), flag)
	check(r, t, "PRB start", int64(pdu.PRBStart), pucchPRBStartRule)
	checkConditional(r, t, "PRB size", int64(pdu.PRBSize), pucchPRBSizeRules, int64(pdu.FormatType))
	check(r, t, "Start symbol index", int64(pdu.StartSymbolIndex), startSymbolRule)
	checkConditional(r, t, "Number of symbols", int64(pdu.NrOfSymbols), pucchNrOfSymbolsRules, int64(pdu.FormatType))
	check(r, t, "Frequency hopping flag", int64(pdu.FreqHopFlag), flag)
	check(r, t, "Second hop PRB", int64(pdu.SecondHopPRB), pucchPRBStartRule)
	check(r, t, "Group hopping flag", int64(pdu.GroupHopFlag), groupHopFlagRule)
	check(r, t, "NID PUCCH hopping", int64(pdu.NIDPUCCHHopping), nid1023Rule)
	check(r, t, "Initial cyclic shift", int64(pdu.InitialCyclicShift), initialCyclicShiftRule)
	check(r, t, "NID PUCCH scrambling", int64(pdu.NIDPUCCHScrambling), nid1023Rule)
	check(r, t, "Time domain OCC index", int64(pdu.TimeDomainOCCIndex), timeDomainOCCRule)
	if checkConditional(r, t, "Pre DFT OCC length", int64(pdu.PreDFTOCCLen), preDFTOCCLenRules, int64(pdu.FormatType)) &&
		pdu.FormatType == models.PUCCHFormat4 {
		checkConditional(r, t, "Pre DFT OCC index", int64(pdu.PreDFTOCCIdx), preDFTOCCIdxRules, int64(pdu.PreDFTOCCLen))
	}
	check(r, t, "Additional DMRS flag", int64(pdu.AddDMRSFlag), flag)
	check(r, t, "NID0 PUCCH DMRS scrambling", int64(pdu.NID0PUCCHDMRSScrambling), exempt)
	check(r, t, "M0 PUCCH DMRS cyclic shift", int64(pdu.M0PUCCHDMRSCyclicShift), m0CyclicShiftRule)
	check(r, t, "SR bit length", int64(pdu.SRBitLen), srBitLenRule)
	check(r, t, "HARQ bit length", int64(pdu.BitLenHARQ), uciBitLenRule)
	check(r, t, "CSI part1 bit length", int64(pdu.CSIPart1BitLength), uciBitLenRule)
}
