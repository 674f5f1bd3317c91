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
	msgAMCSRule       = bounded{0, 15}
	msgADMRSPortsRule = bounded{0, 11}
	preambleIndexRule = bounded{0, 63}
)

func validateULMsgAPUSCHPDU(r *ValidatorReport, pdu *models.ULMsgAPUSCHPDU) {
	t := models.ULPDUTypeMsgAPUSCH

	check(r, t, "RA-RNTI", int64(pdu.RARNTI), rntiRule)
	check(r, t, "Handle", int64(pdu.Handle), exempt)
	validateBWP(r, t, pdu.BWPSize, pdu.BWPStart, pdu.SubcarrierSpacing, pdu.CyclicPrefix)
	check(r, t, "MCS index", int64(pdu.MCSIndex), msgAMCSRule)
	check(r, t, "Transform precoding", int64(pdu.TransformPrecoding), flag)
	check(r, t, "NID MsgA PUSCH", int64(pdu.NIDMsgAPUSCH), nid1023Rule)
	check(r, t, "DMRS ports", int64(pdu.DMRSPorts), msgADMRSPortsRule)
	check(r, t, "Preamble index", int64(pdu.PreambleIndex), preambleIndexRule)
	check(r, t, "RB start", int64(pdu.RBStart), rbStartRule)
	check(r, t, "RB size", int64(pdu.RBSize), rbSizeRule)
	check(r, t, "Start symbol index", int64(pdu.StartSymbolIndex), startSymbolRule)
	check(r, t, "Number of symbols", int64(pdu.NrOfSymbols), nrOfSymbolsRule)
	check(r, t, "TB size", int64(pdu.TBSize), tbSizeRule)
}
