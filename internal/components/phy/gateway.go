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
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

func (p *Loopback) DLTTIRequest(msg *models.DLTTIRequest) {
	p.accept(models.DLTTIRequestType, msg.SFN, msg.Slot, func(s *Stats) { s.DLTTI++ })
}

func (p *Loopback) ULTTIRequest(msg *models.ULTTIRequest) {
	if p.accept(models.ULTTIRequestType, msg.SFN, msg.Slot, func(s *Stats) { s.ULTTI++ }) {
		p.mu.Lock()
		p.pendingUL = append(p.pendingUL, msg)
		p.mu.Unlock()
	}
}

func (p *Loopback) ULDCIRequest(msg *models.ULDCIRequest) {
	p.accept(models.ULDCIRequestType, msg.SFN, msg.Slot, func(s *Stats) { s.ULDCI++ })
}

func (p *Loopback) TxDataRequest(msg *models.TxDataRequest) {
	p.accept(models.TxDataRequestType, msg.SFN, msg.Slot, func(s *Stats) { s.TxData++ })
}

// accept checks that a request arrives while running and for the current slot.
func (p *Loopback) accept(t models.MessageType, sfn, slot uint16, count func(*Stats)) bool {
	p.mu.Lock()
	running, current := p.running, p.slot
	ok := running && current.Valid() && current.SFN() == sfn && current.Slot() == slot
	if ok {
		count(&p.stats)
	} else {
		p.stats.Rejected++
	}
	p.mu.Unlock()

	if ok {
		return true
	}
	ind := models.ErrorIndication{SFN: sfn, Slot: slot, MessageID: t}
	switch {
	case !running:
		ind.ErrorCode = models.ErrorCodeInvalidState
	default:
		ind.ErrorCode = models.ErrorCodeOutOfSync
		ind.ExpectedSFN, ind.ExpectedSlot = current.SFN(), current.Slot()
	}
	p.logger.Warn("request rejected", "msg_type", t, "sfn", sfn, "slot", slot, "error_code", ind.ErrorCode)
	p.errorNotifier.OnErrorIndication(ind)
	return false
}

var _ fapi.SlotMessageGateway = (*Loopback)(nil)
