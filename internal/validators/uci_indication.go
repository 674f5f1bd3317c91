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
	uciConfidenceRule     = orUnset{bounded{0, 1}, int64(models.UCIConfidenceUnset)}
	pucchFormat01Rule     = bounded{0, 1}
	pucchFormat234Rule    = bounded{0, 2}
	harqFormat01CountRule = bounded{1, 2}
	harqFormat01ValueRule = bounded{0, 2}
	uciSRBitLenRule       = bounded{1, 8}
	detectionStatusRule   = bounded{1, 5}
	expectedBitLengthRule = bounded{1, 1706}
)

// ValidateUCIIndication returns nil when the message is valid, a *ValidatorReport otherwise.
func ValidateUCIIndication(msg *models.UCIIndication) error {
	r := NewValidatorReport(models.UCIIndicationType, msg.SFN, msg.Slot)

	validateSlotHeader(r, msg.SFN, msg.Slot)
	for _, pdu := range msg.PDUs {
		switch p := pdu.(type) {
		case *models.UCIPUSCHPDU:
			if p == nil {
				break
			}
			t := p.UCIPDUType()
			validateUCICommon(r, t, p.Handle, p.RNTI, p.ULMeasurements)
			validateUCIPayload(r, t, "HARQ", p.HARQ)
			validateUCIPayload(r, t, "CSI part 1", p.CSIPart1)
			validateUCIPayload(r, t, "CSI part 2", p.CSIPart2)
			continue
		case *models.UCIPUCCHFormat01PDU:
			if p == nil {
				break
			}
			validateUCIPUCCHFormat01(r, p)
			continue
		case *models.UCIPUCCHFormat234PDU:
			if p == nil {
				break
			}
			validateUCIPUCCHFormat234(r, p)
			continue
		}
		r.Append(-1, propPDUType, nil)
	}
	return r.Err()
}

func validateUCICommon(r *ValidatorReport, t models.PDUType, handle uint32, rnti uint16, m models.ULMeasurements) {
	check(r, t, "Handle", int64(handle), exempt)
	check(r, t, "RNTI", int64(rnti), rntiRule)
	validateULMeasurements(r, t, m)
}

func validateUCIPayload(r *ValidatorReport, t models.PDUType, part string, p *models.UCIPayload) {
	if p == nil {
		return
	}
	check(r, t, part+" detection status", int64(p.DetectionStatus), detectionStatusRule)
	check(r, t, part+" expected bit length", int64(p.ExpectedBitLength), expectedBitLengthRule)
}

func validateUCIPUCCHFormat01(r *ValidatorReport, p *models.UCIPUCCHFormat01PDU) {
	t := p.UCIPDUType()
	validateUCICommon(r, t, p.Handle, p.RNTI, p.ULMeasurements)
	check(r, t, "PUCCH format", int64(p.PUCCHFormat), pucchFormat01Rule)
	if p.SR != nil {
		check(r, t, "SR indication", int64(p.SR.Indication), flag)
		check(r, t, "SR confidence level", int64(p.SR.Confidence), uciConfidenceRule)
	}
	if p.HARQ != nil {
		check(r, t, "HARQ confidence level", int64(p.HARQ.Confidence), uciConfidenceRule)
		if check(r, t, "Number of HARQ", int64(len(p.HARQ.Values)), harqFormat01CountRule) {
			for _, v := range p.HARQ.Values {
				check(r, t, "HARQ value", int64(v), harqFormat01ValueRule)
			}
		}
	}
}

func validateUCIPUCCHFormat234(r *ValidatorReport, p *models.UCIPUCCHFormat234PDU) {
	t := p.UCIPDUType()
	validateUCICommon(r, t, p.Handle, p.RNTI, p.ULMeasurements)
	check(r, t, "PUCCH format", int64(p.PUCCHFormat), pucchFormat234Rule)
	if p.SR != nil {
		check(r, t, "SR bit length", int64(p.SR.BitLength), uciSRBitLenRule)
	}
	validateUCIPayload(r, t, "HARQ", p.HARQ)
	validateUCIPayload(r, t, "CSI part 1", p.CSIPart1)
	validateUCIPayload(r, t, "CSI part 2", p.CSIPart2)
}
