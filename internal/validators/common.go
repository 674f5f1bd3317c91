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

const (
	propSFN     = "sfn"
	propSlot    = "slot"
	propPDUType = "PDU type"
)

var (
	ulSINRRule   = orUnset{bounded{-32767, 32767}, int64(models.ULSINRMetricUnset)}
	taOffsetRule = orUnset{bounded{0, 63}, int64(models.TimingAdvanceOffsetUnset)}
	taNsRule     = orUnset{bounded{-16800, 16800}, int64(models.TimingAdvanceOffsetNsUnset)}
	rssiRule     = orUnset{bounded{0, 1280}, int64(models.RSSIUnset)}
	rsrpRule     = orUnset{bounded{0, 1280}, int64(models.RSRPUnset)}
)

// validateSlotHeader checks the (sfn, slot) header of every slot-carrying message.
func validateSlotHeader(r *ValidatorReport, sfn, slot uint16) {
	check(r, nil, propSFN, int64(sfn), sfnRule)
	check(r, nil, propSlot, int64(slot), slotRule)
}

// HasHeaderErrors reports whether the sfn/slot header of the message was rejected.
func (r *ValidatorReport) HasHeaderErrors() bool {
	for _, e := range r.Errors {
		if e.PDUType == nil && (e.Property == propSFN || e.Property == propSlot) {
			return true
		}
	}
	return false
}

// HasMessageErrors reports whether a field of the message itself was rejected, such as a
// declared PDU counter or the number of groups. An unknown or empty PDU record does not count.
func (r *ValidatorReport) HasMessageErrors() bool {
	for _, e := range r.Errors {
		if e.PDUType == nil && e.Property != propPDUType {
			return true
		}
	}
	return false
}

// validateBWP checks the bandwidth part fields shared by most PDUs.
func validateBWP(r *ValidatorReport, t models.PDUType, size, start uint16, scs, cp uint8) {
	check(r, t, "BWP size", int64(size), bwpSizeRule)
	check(r, t, "BWP start", int64(start), bwpStartRule)
	check(r, t, "Subcarrier spacing", int64(scs), scsRule)
	check(r, t, "Cyclic prefix", int64(cp), cyclicPrefixRule)
}

func validateULMeasurements(r *ValidatorReport, t models.PDUType, m models.ULMeasurements) {
	check(r, t, "UL SINR metric", int64(m.ULSINRMetric), ulSINRRule)
	check(r, t, "Timing advance offset", int64(m.TimingAdvanceOffset), taOffsetRule)
	check(r, t, "Timing advance offset in ns", int64(m.TimingAdvanceOffsetNs), taNsRule)
	check(r, t, "RSSI", int64(m.RSSI), rssiRule)
	check(r, t, "RSRP", int64(m.RSRP), rsrpRule)
}

// validatePDUCount checks a declared PDU counter against the records present.
func validatePDUCount(r *ValidatorReport, property string, declared, present uint16) {
	if declared != present {
		r.Append(int64(declared), property, nil)
	}
}
