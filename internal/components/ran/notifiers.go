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
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

func (e *Emulator) OnCRCIndication(msg *models.CRCIndication) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, pdu := range msg.PDUs {
		if pdu.TBCRCStatusOK == 1 {
			e.stats.CRCOK++
		} else {
			e.stats.CRCFailed++
		}
	}
}

func (e *Emulator) OnRxDataIndication(msg *models.RxDataIndication) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, pdu := range msg.PDUs {
		e.stats.RxBytes += uint64(pdu.PDULength)
	}
}

func (e *Emulator) OnUCIIndication(msg *models.UCIIndication) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.UCI += uint64(len(msg.PDUs))
}

func (e *Emulator) OnSRSIndication(msg *models.SRSIndication) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.SRS += uint64(len(msg.PDUs))
}

func (e *Emulator) OnRACHIndication(msg *models.RACHIndication) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, pdu := range msg.PDUs {
		e.stats.RACHPreambles += uint64(len(pdu.Preambles))
	}
}

func (e *Emulator) OnErrorIndication(msg models.ErrorIndication) {
	e.mu.Lock()
	e.stats.Errors[msg.ErrorCode.String()]++
	e.mu.Unlock()
	e.logger.Warn("error indication received",
		"msg_type", msg.MessageID, "error_code", msg.ErrorCode, "sfn", msg.SFN, "slot", msg.Slot)
}

func (e *Emulator) OnParamResponse(msg models.ParamResponse) {
	e.mu.Lock()
	e.stats.ParamResponses++
	e.mu.Unlock()
	e.logger.Info("PARAM.response received", "error_code", msg.ErrorCode)
}

func (e *Emulator) OnConfigResponse(msg models.ConfigResponse) {
	e.mu.Lock()
	e.stats.ConfigResponses++
	e.mu.Unlock()
	e.logger.Info("CONFIG.response received", "error_code", msg.ErrorCode, "invalid_tlvs", msg.NumInvalidTLVs)
}

// OnStopIndication detaches every UE: their contexts do not survive a cell restart.
func (e *Emulator) OnStopIndication(models.StopIndication) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.StopIndications++
	e.reset()
	e.logger.Info("STOP.indication received, UEs detached")
}

var (
	_ fapi.SlotTimeMessageNotifier = (*Emulator)(nil)
	_ fapi.SlotDataMessageNotifier = (*Emulator)(nil)
	_ fapi.ErrorMessageNotifier    = (*Emulator)(nil)
	_ fapi.ConfigMessageNotifier   = (*Emulator)(nil)
)
