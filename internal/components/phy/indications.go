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

package phy

import (
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

const (
	loopbackSINR  = 200
	loopbackTA    = 31
	loopbackRSSI  = 1000
	loopbackRSRP  = 900
	loopbackSNR   = 100
	loopbackPower = 100000
	nofPreambles  = 64
)

func measurements() models.ULMeasurements {
	return models.ULMeasurements{
		ULSINRMetric:          loopbackSINR,
		TimingAdvanceOffset:   loopbackTA,
		TimingAdvanceOffsetNs: 0,
		RSSI:                  loopbackRSSI,
		RSRP:                  loopbackRSRP,
	}
}

func uciPayload(bits uint16) *models.UCIPayload {
	if bits == 0 {
		return nil
	}
	return &models.UCIPayload{
		DetectionStatus:   1,
		ExpectedBitLength: bits,
		Payload:           make([]byte, (int(bits)+7)/8),
	}
}

// emitUplink decodes every PDU of req as if all transmissions were received correctly.
func (p *Loopback) emitUplink(req *models.ULTTIRequest) {
	crc := &models.CRCIndication{SFN: req.SFN, Slot: req.Slot}
	rx := &models.RxDataIndication{SFN: req.SFN, Slot: req.Slot}
	uci := &models.UCIIndication{SFN: req.SFN, Slot: req.Slot}
	rach := &models.RACHIndication{SFN: req.SFN, Slot: req.Slot}
	srs := &models.SRSIndication{SFN: req.SFN, Slot: req.Slot}

	for _, pdu := range req.PDUs {
		switch u := pdu.(type) {
		case *models.ULPUSCHPDU:
			if u == nil {
				continue
			}
			if u.Data != nil {
				crc.PDUs = append(crc.PDUs, models.CRCPDU{
					Handle:         u.Handle,
					RNTI:           u.RNTI,
					RAPID:          models.RAPIDUnset,
					HARQID:         u.Data.HARQProcessID,
					TBCRCStatusOK:  1,
					NumCB:          u.Data.NumCB,
					CBCRCStatus:    make([]uint8, (int(u.Data.NumCB)+7)/8),
					ULMeasurements: measurements(),
				})
				rx.PDUs = append(rx.PDUs, models.RxDataPDU{
					Handle:    u.Handle,
					RNTI:      u.RNTI,
					RAPID:     models.RAPIDUnset,
					HARQID:    u.Data.HARQProcessID,
					PDULength: u.Data.TBSize,
					Data:      make([]byte, u.Data.TBSize),
				})
			}
			if u.UCI != nil {
				uci.PDUs = append(uci.PDUs, &models.UCIPUSCHPDU{
					Handle:         u.Handle,
					RNTI:           u.RNTI,
					ULMeasurements: measurements(),
					HARQ:           uciPayload(u.UCI.HARQAckBitLength),
					CSIPart1:       uciPayload(u.UCI.CSIPart1BitLength),
				})
			}
		case *models.ULPUCCHPDU:
			if u == nil {
				continue
			}
			uci.PDUs = append(uci.PDUs, pucchUCI(u))
		case *models.ULPRACHPDU:
			if u == nil {
				continue
			}
			rach.PDUs = append(rach.PDUs, models.RACHPDU{
				Handle:      u.Handle,
				SymbolIndex: u.PRACHStartSymbol,
				RAIndex:     u.IndexFdRA,
				AvgRSSI:     loopbackPower,
				RSRP:        models.RSRPUnset,
				AvgSNR:      loopbackSNR,
				Preambles: []models.RACHPreamble{{
					PreambleIndex:         uint8((uint32(req.SFN)*models.NofSlotsPerFrame(p.numerology) + uint32(req.Slot)) % nofPreambles),
					TimingAdvanceOffset:   loopbackTA,
					TimingAdvanceOffsetNs: 0,
					PreamblePower:         loopbackPower,
					PreambleSNR:           loopbackSNR,
				}},
			})
		case *models.ULSRSPDU:
			if u == nil {
				continue
			}
			srs.PDUs = append(srs.PDUs, models.SRSIndicationPDU{
				Handle:              u.Handle,
				RNTI:                u.RNTI,
				TimingAdvanceOffset: loopbackTA,
			})
		}
	}

	n := uint64(0)
	if len(crc.PDUs) > 0 {
		p.dataNotifier.OnCRCIndication(crc)
		p.dataNotifier.OnRxDataIndication(rx)
		n += 2
	}
	if len(uci.PDUs) > 0 {
		p.dataNotifier.OnUCIIndication(uci)
		n++
	}
	if len(rach.PDUs) > 0 {
		p.dataNotifier.OnRACHIndication(rach)
		n++
	}
	if len(srs.PDUs) > 0 {
		p.dataNotifier.OnSRSIndication(srs)
		n++
	}
	if n > 0 {
		p.mu.Lock()
		p.stats.Indications += n
		p.mu.Unlock()
	}
}

func pucchUCI(u *models.ULPUCCHPDU) models.UCIPDU {
	if u.FormatType <= models.PUCCHFormat1 {
		pdu := &models.UCIPUCCHFormat01PDU{
			Handle:         u.Handle,
			RNTI:           u.RNTI,
			ULMeasurements: measurements(),
			PUCCHFormat:    u.FormatType,
		}
		if u.SRBitLen > 0 {
			pdu.SR = &models.UCISRFormat01{Indication: 0, Confidence: 0}
		}
		if u.BitLenHARQ > 0 {
			// ACK for every bit, at most two in formats 0 and 1.
			values := make([]uint8, min(int(u.BitLenHARQ), 2))
			for i := range values {
				values[i] = 1
			}
			pdu.HARQ = &models.UCIHARQFormat01{Confidence: 0, Values: values}
		}
		return pdu
	}

	pdu := &models.UCIPUCCHFormat234PDU{
		Handle:         u.Handle,
		RNTI:           u.RNTI,
		ULMeasurements: measurements(),
		PUCCHFormat:    u.FormatType - models.PUCCHFormat2,
		HARQ:           uciPayload(u.BitLenHARQ),
		CSIPart1:       uciPayload(u.CSIPart1BitLength),
	}
	if u.SRBitLen > 0 {
		pdu.SR = &models.UCISRFormat234{BitLength: uint16(u.SRBitLen), Payload: make([]byte, 1)}
	}
	return pdu
}
