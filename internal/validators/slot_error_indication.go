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

// ValidateSlotIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateSlotIndication(msg *models.SlotIndication) error {
	r := NewValidatorReport(models.SlotIndicationType, msg.SFN, msg.Slot)
	validateSlotHeader(r, msg.SFN, msg.Slot)
	return r.Err()
}

// ValidateErrorIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateErrorIndication(msg *models.ErrorIndication) error {
	r := NewValidatorReport(models.ErrorIndicationType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	if !msg.MessageID.Valid() {
		r.Append(int64(msg.MessageID), "Message ID", nil)
	}
	if !msg.ErrorCode.Valid() {
		r.Append(int64(msg.ErrorCode), "Error code", nil)
	}
	if msg.ErrorCode == models.ErrorCodeOutOfSync {
		check(r, nil, "Expected SFN", int64(msg.ExpectedSFN), sfnRule)
		check(r, nil, "Expected slot", int64(msg.ExpectedSlot), slotRule)
	}
	return r.Err()
}
