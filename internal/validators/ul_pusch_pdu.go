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
	puschMCSTableRule     = bounded{0, 4}
	puschNumLayersRule    = bounded{1, 4}
	puschDMRSIdentityRule = bounded{0, 1007}
	puschVRBToPRBRule     = oneOf{0}
	txDirectCurrentRule   = bounded{0, 4095}
	alphaScalingRule      = bounded{0, 3}
	betaOffsetHARQAckRule = bounded{0, 15}
	betaOffsetCSIRule     = bounded{0, 18}

	// pi/2 BPSK is only available with transform precoding.
	puschQamModOrderRules = dispatch{
		int64(models.TransformPrecodingEnabled):  oneOf{int64(models.QamModOrderPi2BPSK), 2, 4, 6, 8},
		int64(models.TransformPrecodingDisabled): oneOf{2, 4, 6, 8},
	}
)

func validateULPUSCHPDU(r *ValidatorReport, pdu *models.ULPUSCHPDU) {
	t := models.ULPDUTypePUSCH

	check(r, t, "RNTI", int64(pdu.RNTI), rntiRule)
	check(r, t, "Handle", int64(pdu.Handle), exempt)
	validateBWP(r, t, pdu.BWPSize, pdu.BWPStart, pdu.SubcarrierSpacing, pdu.CyclicPrefix)
	check(r, t, "Target code rate", int64(pdu.TargetCodeRate), targetCodeRateRule)
	check(r, t, "Transform precoding", int64(pdu.TransformPrecoding), flag)
	checkConditional(r, t, "QAM modulation order", int64(pdu.QamModOrder), puschQamModOrderRules, int64(pdu.TransformPrecoding))
	check(r, t, "MCS index", int64(pdu.MCSIndex), mcsIndexRule)
	check(r, t, "MCS table", int64(pdu.MCSTable), puschMCSTableRule)
	check(r, t, "NID PUSCH", int64(pdu.NIDPUSCH), nid1023Rule)
	check(r, t, "Number of layers", int64(pdu.NumLayers), puschNumLayersRule)
	check(r, t, "UL DMRS symbol position", int64(pdu.ULDMRSSymbPos), dmrsSymbPosRule)
	check(r, t, "DMRS type", int64(pdu.DMRSType), flag)
	check(r, t, "DMRS scrambling ID", int64(pdu.DMRSScramblingID), exempt)
	check(r, t, "PUSCH DMRS identity", int64(pdu.PUSCHDMRSIdentity), puschDMRSIdentityRule)
	check(r, t, "NSCID", int64(pdu.NSCID), flag)
	check(r, t, "Number of DMRS CDM groups without data", int64(pdu.NumDMRSCDMGrpsNoData), dmrsCDMGroupsRule)
	check(r, t, "Resource allocation type", int64(pdu.ResourceAlloc), flag)
	check(r, t, "RB start", int64(pdu.RBStart), rbStartRule)
	check(r, t, "RB size", int64(pdu.RBSize), rbSizeRule)
	check(r, t, "VRB to PRB mapping", int64(pdu.VRBToPRBMapping), puschVRBToPRBRule)
	check(r, t, "Intra slot frequency hopping", int64(pdu.IntraSlotFrequencyHopping), flag)
	check(r, t, "Tx direct current location", int64(pdu.TxDirectCurrentLocation), txDirectCurrentRule)
	check(r, t, "UL frequency shift 7p5kHz", int64(pdu.ULFrequencyShift7p5kHz), flag)
	check(r, t, "Start symbol index", int64(pdu.StartSymbolIndex), startSymbolRule)
	check(r, t, "Number of symbols", int64(pdu.NrOfSymbols), nrOfSymbolsRule)

	if d := pdu.Data; d != nil {
		check(r, t, "RV index", int64(d.RVIndex), rvIndexRule)
		check(r, t, "HARQ process ID", int64(d.HARQProcessID), harqIDRule)
		check(r, t, "New data", int64(d.NewData), flag)
		check(r, t, "TB size", int64(d.TBSize), tbSizeRule)
		check(r, t, "Number of CB", int64(d.NumCB), exempt)
	}

	if u := pdu.UCI; u != nil {
		check(r, t, "HARQ ACK bit length", int64(u.HARQAckBitLength), uciBitLenRule)
		check(r, t, "CSI part1 bit length", int64(u.CSIPart1BitLength), uciBitLenRule)
		check(r, t, "Flag CSI part2", int64(u.FlagCSIPart2), exempt)
		check(r, t, "Alpha scaling", int64(u.AlphaScaling), alphaScalingRule)
		check(r, t, "Beta offset HARQ ACK", int64(u.BetaOffsetHARQAck), betaOffsetHARQAckRule)
		check(r, t, "Beta offset CSI1", int64(u.BetaOffsetCSI1), betaOffsetCSIRule)
		check(r, t, "Beta offset CSI2", int64(u.BetaOffsetCSI2), betaOffsetCSIRule)
	}

	if p := pdu.PTRS; p != nil {
		check(r, t, "PTRS port index", int64(p.PortIndex), ptrsPortRule)
		check(r, t, "PTRS time density", int64(p.TimeDensity), ptrsTimeDensityRule)
		check(r, t, "PTRS frequency density", int64(p.FreqDensity), flag)
		check(r, t, "PTRS RE offset", int64(p.REOffset), ptrsREOffsetRule)
	}
}
