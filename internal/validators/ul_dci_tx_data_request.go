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

var cwIndexRule = bounded{0, 1}

// ValidateULDCIRequest returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateULDCIRequest(msg *models.ULDCIRequest) error {
	r := NewValidatorReport(models.ULDCIRequestType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	counts := msg.CountPDUs()
	validatePDUCount(r, "Number of PDCCH PDUs", msg.NumDLTypes[0], counts[0])
	validatePDUCount(r, "Number of DL DCIs", msg.NumDLTypes[1], counts[1])

	for _, pdu := range msg.PDUs {
		if pdu == nil {
			r.Append(-1, propPDUType, nil)
			continue
		}
		validateDLPDCCHPDU(r, pdu)
	}
	return r.Err()
}

// ValidateTxDataRequest returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateTxDataRequest(msg *models.TxDataRequest) error {
	r := NewValidatorReport(models.TxDataRequestType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	for i := range msg.PDUs {
		pdu := &msg.PDUs[i]
		check(r, nil, "PDU index", int64(pdu.PDUIndex), exempt)
		check(r, nil, "CW index", int64(pdu.CWIndex), cwIndexRule)
		if !check(r, nil, "Number of TLVs", int64(len(pdu.TLVs)), atLeast(1)) {
			continue
		}
		var length uint32
		for _, tlv := range pdu.TLVs {
			length += uint32(len(tlv.Value))
		}
		if length != pdu.PDULength {
			r.Append(int64(pdu.PDULength), "PDU length", nil)
		}
	}
	return r.Err()
}
