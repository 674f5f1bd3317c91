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
	ulNumGroupsRule = bounded{0, 8}

	ulCountProperties = [models.NumULCounters]string{
		"Number of PRACH PDUs",
		"Number of PUSCH PDUs",
		"Number of PUCCH format 0/1 PDUs",
		"Number of PUCCH format 2/3/4 PDUs",
		"Number of SRS PDUs",
		"Number of MsgA-PUSCH PDUs",
	}
)

// ValidateULTTIRequest returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateULTTIRequest(msg *models.ULTTIRequest) error {
	r := NewValidatorReport(models.ULTTIRequestType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	counts := msg.CountPDUs()
	for i, declared := range msg.NumPDUsOfEachType {
		validatePDUCount(r, ulCountProperties[i], declared, counts[i])
	}
	check(r, nil, "Number of groups", int64(msg.NumGroups), ulNumGroupsRule)

	for _, pdu := range msg.PDUs {
		validateULTTIPDU(r, pdu)
	}
	return r.Err()
}

// ValidateULTTIPDU validates one UL_TTI PDU. The returned report is empty when the PDU is valid.
func ValidateULTTIPDU(pdu models.ULTTIPDU, msgType models.MessageType) *ValidatorReport {
	r := NewValidatorReport(msgType, 0, 0)
	validateULTTIPDU(r, pdu)
	return r
}

func validateULTTIPDU(r *ValidatorReport, pdu models.ULTTIPDU) {
	switch p := pdu.(type) {
	case *models.ULPRACHPDU:
		if p != nil {
			validateULPRACHPDU(r, p)
			return
		}
	case *models.ULPUSCHPDU:
		if p != nil {
			validateULPUSCHPDU(r, p)
			return
		}
	case *models.ULPUCCHPDU:
		if p != nil {
			validateULPUCCHPDU(r, p)
			return
		}
	case *models.ULSRSPDU:
		if p != nil {
			validateULSRSPDU(r, p)
			return
		}
	case *models.ULMsgAPUSCHPDU:
		if p != nil {
			validateULMsgAPUSCHPDU(r, p)
			return
		}
	}
	r.Append(-1, propPDUType, nil)
}
