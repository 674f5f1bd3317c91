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

package ran

import (
	"time"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

// slotMessages holds the requests built for one slot. Nil messages are not sent.
type slotMessages struct {
	dlTTI  *models.DLTTIRequest
	ulTTI  *models.ULTTIRequest
	ulDCI  *models.ULDCIRequest
	txData *models.TxDataRequest
}

func (m slotMessages) send(g fapi.SlotMessageGateway) {
	if m.dlTTI != nil {
		g.DLTTIRequest(m.dlTTI)
	}
	if m.ulTTI != nil {
		g.ULTTIRequest(m.ulTTI)
	}
	if m.ulDCI != nil {
		g.ULDCIRequest(m.ulDCI)
	}
	if m.txData != nil {
		g.TxDataRequest(m.txData)
	}
}

// OnSlotIndication schedules the slot announced by L1. UE state transitions are drawn once
// per frame, on slot 0.
func (e *Emulator) OnSlotIndication(ind models.SlotIndication) {
	slot, err := models.NewSlotPoint(e.numerology, uint32(ind.SFN), uint32(ind.Slot))
	if err != nil {
		e.logger.Warn("slot indication ignored", "sfn", ind.SFN, "slot", ind.Slot, "error", err)
		return
	}

	e.mu.Lock()
	e.stats.Slots++
	e.lastTS = ind.TimeStamp
	if slot.Slot() == 0 {
		for _, ue := range e.ues {
			to, proc := NextState(e.rng, ue.state)
			e.transition(ue, to, proc, ind.TimeStamp)
		}
	}
	msgs := e.schedule(slot, ind.TimeStamp)
	gateway := e.gateway
	e.mu.Unlock()

	msgs.send(gateway)
}

func (e *Emulator) nextHandle() uint32 {
	e.handle++
	return e.handle
}

// schedule builds the requests of slot. UEs are served round robin, at most maxUEsPerSlot
// of them per slot.
func (e *Emulator) schedule(slot models.SlotPoint, now time.Time) slotMessages {
	sfn, idx := slot.SFN(), slot.Slot()
	dlOK, ulOK := e.directions(int(idx))
	f := e.factory

	var (
		dlPDUs  []models.DLTTIPDU
		ulPDUs  []models.ULTTIPDU
		dlRNTIs []uint16
		ulRNTIs []uint16
		txPDUs  []models.TxDataPDU
	)
	if dlOK && idx == 0 && uint32(sfn)%e.cellCfg.SSBTable.SSBPeriodFrames() == 0 {
		dlPDUs = append(dlPDUs, f.ssb())
	}
	if ulOK && int(idx) == e.prachSlot {
		ulPDUs = append(ulPDUs, f.prach())
	}

	scheduled := 0
	n := len(e.ues)
	for i := range n {
		ue := e.ues[(e.rr+i)%n]
		if ue.state == models.UEIdle || ue.state == models.UEConnected {
			ue.dl.Poll(now)
			ue.ul.Poll(now)
		}
		switch {
		case ue.state == models.UEIdle && ue.hasData():
			e.transition(ue, models.UEConnected, models.ServiceRequest, now)
		case ue.state == models.UEConnected && !ue.hasData() && now.Sub(ue.lastActivity) > e.inactivityTimer:
			e.transition(ue, models.UEIdle, models.Inactivity, now)
		}

		switch ue.state {
		case models.UEAttached:
			if ulOK && slot.Count()%srPeriodSlots == uint32(ue.rnti)%srPeriodSlots {
				ulPDUs = append(ulPDUs, f.pucch(ue.rnti, e.nextHandle(), ue.rnti, false, true))
			}
			continue
		case models.UEConnected:
		default:
			continue
		}

		if ulOK && slot.Count()%srsPeriodSlots == uint32(ue.rnti)%srsPeriodSlots {
			ulPDUs = append(ulPDUs, f.srs(ue.rnti, e.nextHandle()))
		}
		if scheduled >= e.maxUEsPerSlot {
			continue
		}

		served := false
		if dlOK {
			if tb := ue.dl.Take(maxTBBytes); tb > 0 {
				pduIndex := uint16(len(txPDUs))
				dlRNTIs = append(dlRNTIs, ue.rnti)
				dlPDUs = append(dlPDUs, f.pdsch(ue.rnti, pduIndex, scheduled, uint32(tb)))
				txPDUs = append(txPDUs, models.NewTxDataPDU(pduIndex, 0, make([]byte, tb)))
				e.account(ue, false, tb, now)
				served = true
				if ulOK {
					ulPDUs = append(ulPDUs, f.pucch(ue.rnti, e.nextHandle(), ue.rnti, true, false))
				}
			}
		}
		if ulOK {
			if tb := ue.ul.Take(maxTBBytes); tb > 0 {
				ulRNTIs = append(ulRNTIs, ue.rnti)
				ulPDUs = append(ulPDUs, f.pusch(ue.rnti, e.nextHandle(), scheduled, ue.nextHARQ(), uint32(tb)))
				e.account(ue, true, tb, now)
				served = true
			}
		}
		if served {
			scheduled++
		}
	}
	if n > 0 {
		e.rr = (e.rr + 1) % n
	}

	var msgs slotMessages
	if dlOK {
		if len(dlRNTIs) > 0 {
			dlPDUs = append([]models.DLTTIPDU{f.pdcch(dlRNTIs)}, dlPDUs...)
		}
		msgs.dlTTI = models.NewDLTTIRequest(sfn, idx, dlPDUs...)
		e.stats.DLTTI++
	}
	if len(ulPDUs) > 0 {
		msgs.ulTTI = models.NewULTTIRequest(sfn, idx, ulPDUs...)
		e.stats.ULTTI++
	}
	if len(ulRNTIs) > 0 {
		msgs.ulDCI = models.NewULDCIRequest(sfn, idx, f.pdcch(ulRNTIs))
		e.stats.ULDCI++
	}
	if len(txPDUs) > 0 {
		msgs.txData = &models.TxDataRequest{SFN: sfn, Slot: idx, PDUs: txPDUs}
		e.stats.TxData++
	}
	return msgs
}

func (e *Emulator) account(ue *UE, ul bool, tb int, now time.Time) {
	ue.lastActivity = now
	if ue.stats != nil {
		ue.stats.NewTransportBlock(ul, int64(tb), now)
	}
	dir := "dl"
	if ul {
		dir = "ul"
		e.stats.ULBytes += uint64(tb)
	} else {
		e.stats.DLBytes += uint64(tb)
	}
	monitoring.ScheduledBytes.WithLabelValues(e.cellID, dir).Add(float64(tb))
}
