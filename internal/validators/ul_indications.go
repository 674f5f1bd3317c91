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

// ValidateCRCIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateCRCIndication(msg *models.CRCIndication) error {
	r := NewValidatorReport(models.CRCIndicationType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	for i := range msg.PDUs {
		pdu := &msg.PDUs[i]
		check(r, nil, "Handle", int64(pdu.Handle), exempt)
		check(r, nil, "RNTI", int64(pdu.RNTI), rntiRule)
		check(r, nil, "RAPID", int64(pdu.RAPID), rapidRule)
		check(r, nil, "HARQ ID", int64(pdu.HARQID), harqIDRule)
		check(r, nil, "TB CRC status", int64(pdu.TBCRCStatusOK), flag)
		if want := (int(pdu.NumCB) + 7) / 8; len(pdu.CBCRCStatus) != want {
			r.Append(int64(len(pdu.CBCRCStatus)), "CB CRC status length", nil)
		}
		validateULMeasurements(r, nil, pdu.ULMeasurements)
	}
	return r.Err()
}

var (
	rachSlotIndexRule = bounded{0, 79}
	rachRAIndexRule   = bounded{0, 7}
	rachRSSIRule      = orUnset{bounded{0, 170000}, int64(models.RACHRSSIUnset)}
	rachSNRRule       = orUnset{bounded{0, 254}, int64(models.RACHSNRUnset)}
	nofPreamblesRule  = bounded{1, 64}
	preambleTARule    = orUnset{bounded{0, 3846}, int64(models.TimingAdvanceOffsetUnset)}
	preambleTANsRule  = orUnset{bounded{0, 2005000}, int64(models.PreambleTAOffsetNsUnset)}
	preamblePowerRule = orUnset{bounded{0, 170000}, int64(models.PreamblePowerUnset)}
)

// ValidateRACHIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateRACHIndication(msg *models.RACHIndication) error {
	r := NewValidatorReport(models.RACHIndicationType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	for i := range msg.PDUs {
		pdu := &msg.PDUs[i]
		check(r, nil, "Handle", int64(pdu.Handle), exempt)
		check(r, nil, "Symbol index", int64(pdu.SymbolIndex), startSymbolRule)
		check(r, nil, "Slot index", int64(pdu.SlotIndex), rachSlotIndexRule)
		check(r, nil, "RA index", int64(pdu.RAIndex), rachRAIndexRule)
		check(r, nil, "AVG RSSI", int64(pdu.AvgRSSI), rachRSSIRule)
		check(r, nil, "RSRP", int64(pdu.RSRP), rsrpRule)
		check(r, nil, "AVG SNR", int64(pdu.AvgSNR), rachSNRRule)
		check(r, nil, "Number of preambles", int64(len(pdu.Preambles)), nofPreamblesRule)
		for j := range pdu.Preambles {
			p := &pdu.Preambles[j]
			check(r, nil, "Preamble index", int64(p.PreambleIndex), preambleIndexRule)
			check(r, nil, "Timing advance offset", int64(p.TimingAdvanceOffset), preambleTARule)
			check(r, nil, "Timing advance offset in ns", int64(p.TimingAdvanceOffsetNs), preambleTANsRule)
			check(r, nil, "Preamble power", int64(p.PreamblePower), preamblePowerRule)
			check(r, nil, "Preamble SNR", int64(p.PreambleSNR), rachSNRRule)
		}
	}
	return r.Err()
}

// ValidateRxDataIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateRxDataIndication(msg *models.RxDataIndication) error {
	r := NewValidatorReport(models.RxDataIndicationType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	check(r, nil, "Control length", int64(msg.ControlLength), exempt)
	for i := range msg.PDUs {
		pdu := &msg.PDUs[i]
		check(r, nil, "Handle", int64(pdu.Handle), exempt)
		check(r, nil, "RNTI", int64(pdu.RNTI), rntiRule)
		check(r, nil, "RAPID", int64(pdu.RAPID), rapidRule)
		check(r, nil, "HARQ ID", int64(pdu.HARQID), harqIDRule)
		if int(pdu.PDULength) != len(pdu.Data) {
			r.Append(int64(pdu.PDULength), "PDU length", nil)
		}
	}
	return r.Err()
}

var (
	srsUsageRule      = bounded{0, 3}
	srsReportTypeRule = bounded{0, 1}
)

// ValidateSRSIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateSRSIndication(msg *models.SRSIndication) error {
	r := NewValidatorReport(models.SRSIndicationType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	check(r, nil, "Control length", int64(msg.ControlLength), exempt)
	for i := range msg.PDUs {
		pdu := &msg.PDUs[i]
		check(r, nil, "Handle", int64(pdu.Handle), exempt)
		check(r, nil, "RNTI", int64(pdu.RNTI), rntiRule)
		check(r, nil, "Timing advance offset", int64(pdu.TimingAdvanceOffset), taOffsetRule)
		check(r, nil, "Timing advance offset in ns", int64(pdu.TimingAdvanceOffsetNs), taNsRule)
		check(r, nil, "SRS usage", int64(pdu.SRSUsage), srsUsageRule)
		check(r, nil, "Report type", int64(pdu.ReportType), srsReportTypeRule)
	}
	return r.Err()
}
