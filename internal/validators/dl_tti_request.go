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
	dlNumGroupsRule = bounded{0, 3300}

	dlCountProperties = [models.NumDLPDUTypes + 1]string{
		"Number of PDCCH PDUs",
		"Number of PDSCH PDUs",
		"Number of CSI-RS PDUs",
		"Number of SSB PDUs",
		"Number of PRS PDUs",
		"Number of DL DCIs",
	}
)

// ValidateDLTTIRequest returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateDLTTIRequest(msg *models.DLTTIRequest) error {
	r := NewValidatorReport(models.DLTTIRequestType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	counts := msg.CountPDUs()
	for i, declared := range msg.NumPDUsOfEachType {
		validatePDUCount(r, dlCountProperties[i], declared, counts[i])
	}
	check(r, nil, "Number of groups", int64(msg.NumGroups), dlNumGroupsRule)

	for _, pdu := range msg.PDUs {
		validateDLTTIPDU(r, pdu)
	}
	return r.Err()
}

// ValidateDLTTIPDU validates one DL_TTI PDU in the context of its enclosing message type.
// The returned report is empty when the PDU is valid.
func ValidateDLTTIPDU(pdu models.DLTTIPDU, msgType models.MessageType) *ValidatorReport {
	r := NewValidatorReport(msgType, 0, 0)
	validateDLTTIPDU(r, pdu)
	return r
}

func validateDLTTIPDU(r *ValidatorReport, pdu models.DLTTIPDU) {
	switch p := pdu.(type) {
	case *models.DLPDCCHPDU:
		if p != nil {
			validateDLPDCCHPDU(r, p)
			return
		}
	case *models.DLPDSCHPDU:
		if p != nil {
			validateDLPDSCHPDU(r, p)
			return
		}
	case *models.DLCSIRSPDU:
		if p != nil {
			validateDLCSIRSPDU(r, p)
			return
		}
	case *models.DLSSBPDU:
		if p != nil {
			validateDLSSBPDU(r, p)
			return
		}
	case *models.DLPRSPDU:
		if p != nil {
			validateDLPRSPDU(r, p)
			return
		}
	}
	r.Append(-1, propPDUType, nil)
}
