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
	nofCodewordsRule       = bounded{1, 2}
	targetCodeRateRule     = bounded{1, 9480}
	pdschQamModOrderRule   = oneOf{2, 4, 6, 8}
	mcsIndexRule           = bounded{0, 31}
	pdschMCSTableRule      = bounded{0, 2}
	rvIndexRule            = bounded{0, 3}
	pdschNumLayersRule     = bounded{1, 8}
	transmissionSchemeRule = oneOf{0}
	dmrsCDMGroupsRule      = bounded{1, 3}
	pdschVRBToPRBRule      = bounded{0, 2}
	powerOffsetProfileRule = bounded{-8, 15}
	powerOffsetSSRule      = bounded{0, 3}
	ldpcBaseGraphRule      = bounded{1, 2}
	pdschTransTypeRule     = bounded{0, 5}
	ptrsPortRule           = bitmap(6)
	ptrsTimeDensityRule    = bounded{0, 2}
	ptrsREOffsetRule       = bounded{0, 3}
	ptrsEPRERatioRule      = bounded{0, 3}

	// The CORESET start point is only signalled for PDSCH scheduled from a common search space.
	coresetStartPointRules = dispatch{
		int64(models.PDSCHTransTypeNonInterleavedOther):       oneOf{0},
		int64(models.PDSCHTransTypeNonInterleavedCommonSS):    bounded{0, 274},
		int64(models.PDSCHTransTypeNonInterleavedCommonType0): bounded{0, 274},
		int64(models.PDSCHTransTypeInterleavedOther):          bounded{0, 274},
		int64(models.PDSCHTransTypeInterleavedCommonAny):      bounded{0, 274},
		int64(models.PDSCHTransTypeInterleavedCommonType0):    bounded{0, 274},
	}

	// The initial DL BWP size is only used with a type 0 common search space CORESET.
	initialDLBWPSizeRules = dispatch{
		int64(models.PDSCHTransTypeNonInterleavedOther):       oneOf{0},
		int64(models.PDSCHTransTypeNonInterleavedCommonSS):    oneOf{0},
		int64(models.PDSCHTransTypeNonInterleavedCommonType0): bounded{0, 275},
		int64(models.PDSCHTransTypeInterleavedOther):          oneOf{0},
		int64(models.PDSCHTransTypeInterleavedCommonAny):      oneOf{0},
		int64(models.PDSCHTransTypeInterleavedCommonType0):    bounded{0, 275},
	}
)

func validateDLPDSCHPDU(r *ValidatorReport, pdu *models.DLPDSCHPDU) {
	t := models.DLPDUTypePDSCH

	check(r, t, "RNTI", int64(pdu.RNTI), rntiRule)
	check(r, t, "PDU index", int64(pdu.PDUIndex), exempt)
	validateBWP(r, t, pdu.BWPSize, pdu.BWPStart, pdu.SubcarrierSpacing, pdu.CyclicPrefix)

	check(r, t, "Number of codewords", int64(len(pdu.Codewords)), nofCodewordsRule)
	for i := range pdu.Codewords {
		cw := &pdu.Codewords[i]
		check(r, t, "Target code rate", int64(cw.TargetCodeRate), targetCodeRateRule)
		check(r, t, "QAM modulation order", int64(cw.QamModOrder), pdschQamModOrderRule)
		check(r, t, "MCS index", int64(cw.MCSIndex), mcsIndexRule)
		check(r, t, "MCS table", int64(cw.MCSTable), pdschMCSTableRule)
		check(r, t, "RV index", int64(cw.RVIndex), rvIndexRule)
		check(r, t, "TB size", int64(cw.TBSize), tbSizeRule)
	}

	check(r, t, "NID PDSCH", int64(pdu.NIDPDSCH), nid1023Rule)
	check(r, t, "Number of layers", int64(pdu.NumLayers), pdschNumLayersRule)
	check(r, t, "Transmission scheme", int64(pdu.TransmissionScheme), transmissionSchemeRule)
	check(r, t, "Reference point", int64(pdu.RefPoint), flag)
	check(r, t, "DL DMRS symbol position", int64(pdu.DLDMRSSymbPos), dmrsSymbPosRule)
	check(r, t, "DMRS type", int64(pdu.DMRSType), flag)
	check(r, t, "DMRS scrambling ID", int64(pdu.DMRSScramblingID), exempt)
	check(r, t, "NSCID", int64(pdu.NSCID), flag)
	check(r, t, "Number of DMRS CDM groups without data", int64(pdu.NumDMRSCDMGrpsNoData), dmrsCDMGroupsRule)
	check(r, t, "Resource allocation type", int64(pdu.ResourceAlloc), flag)
	check(r, t, "RB start", int64(pdu.RBStart), rbStartRule)
	check(r, t, "RB size", int64(pdu.RBSize), rbSizeRule)
	check(r, t, "VRB to PRB mapping", int64(pdu.VRBToPRBMapping), pdschVRBToPRBRule)
	check(r, t, "Start symbol index", int64(pdu.StartSymbolIndex), startSymbolRule)
	check(r, t, "Number of symbols", int64(pdu.NrOfSymbols), nrOfSymbolsRule)
	check(r, t, "Power control offset profile NR", int64(pdu.PowerControlOffsetProfileNR), powerOffsetProfileRule)
	check(r, t, "Power control offset SS profile NR", int64(pdu.PowerControlOffsetSSProfileNR), powerOffsetSSRule)
	check(r, t, "LDPC base graph", int64(pdu.LDPCBaseGraph), ldpcBaseGraphRule)
	check(r, t, "TB size LBRM bytes", int64(pdu.TBSizeLBRMBytes), exempt)

	m := &pdu.Maintenance
	check(r, t, "Transmission type", int64(m.TransType), pdschTransTypeRule)
	checkConditional(r, t, "CORESET start point", int64(m.CoresetStartPoint), coresetStartPointRules, int64(m.TransType))
	checkConditional(r, t, "Initial DL BWP size", int64(m.InitialDLBWPSize), initialDLBWPSizeRules, int64(m.TransType))

	if pdu.PTRS != nil {
		check(r, t, "PTRS port index", int64(pdu.PTRS.PortIndex), ptrsPortRule)
		check(r, t, "PTRS time density", int64(pdu.PTRS.TimeDensity), ptrsTimeDensityRule)
		check(r, t, "PTRS frequency density", int64(pdu.PTRS.FreqDensity), flag)
		check(r, t, "PTRS RE offset", int64(pdu.PTRS.REOffset), ptrsREOffsetRule)
		check(r, t, "PTRS EPRE ratio", int64(pdu.PTRS.EPRERatio), ptrsEPRERatioRule)
	}
}
