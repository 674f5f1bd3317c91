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

package buffer

import (
	"log/slog"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/validators"
)

const (
	directionL2ToL1 = "l2_to_l1"
	directionL1ToL2 = "l1_to_l2"
)

// ValidatingGateway checks every slot message coming from L2 before passing it on.
// A message with an invalid header, PDU counter or group count is dropped. Otherwise the
// invalid PDUs are removed and the rest of the message is forwarded.
// Every rejection is answered with one ERROR.indication.
type ValidatingGateway struct {
	cellID        string
	next          fapi.SlotMessageGateway
	errorNotifier fapi.ErrorMessageNotifier
	logger        *slog.Logger
}

func NewValidatingGateway(cellID string, next fapi.SlotMessageGateway, errorNotifier fapi.ErrorMessageNotifier, logger *slog.Logger) *ValidatingGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if errorNotifier == nil {
		errorNotifier = fapi.UnattachedErrorMessageNotifier
	}
	return &ValidatingGateway{
		cellID:        cellID,
		next:          next,
		errorNotifier: errorNotifier,
		logger:        logger.With("cell", cellID, "component", "validating-gateway"),
	}
}

func (g *ValidatingGateway) DLTTIRequest(msg *models.DLTTIRequest) {
	t := models.DLTTIRequestType
	monitoring.Messages.WithLabelValues(g.cellID, t.String(), directionL2ToL1).Inc()
	err := validators.ValidateDLTTIRequest(msg)
	if err == nil {
		g.next.DLTTIRequest(msg)
		return
	}
	if g.rejectMessage(err, t, models.ErrorCodeSlotError, msg.SFN, msg.Slot) {
		return
	}

	filtered := &models.DLTTIRequest{SFN: msg.SFN, Slot: msg.Slot, NumGroups: msg.NumGroups}
	for _, pdu := range msg.PDUs {
		if validators.ValidateDLTTIPDU(pdu, t).NofErrors() == 0 {
			filtered.PDUs = append(filtered.PDUs, pdu)
		}
	}
	filtered.NumPDUsOfEachType = filtered.CountPDUs()
	g.reject(t, models.ErrorCodeSlotError, msg.SFN, msg.Slot)
	if validators.ValidateDLTTIRequest(filtered) == nil {
		g.next.DLTTIRequest(filtered)
	}
}

func (g *ValidatingGateway) ULTTIRequest(msg *models.ULTTIRequest) {
	t := models.ULTTIRequestType
	monitoring.Messages.WithLabelValues(g.cellID, t.String(), directionL2ToL1).Inc()
	err := validators.ValidateULTTIRequest(msg)
	if err == nil {
		g.next.ULTTIRequest(msg)
		return
	}
	if g.rejectMessage(err, t, models.ErrorCodeSlotError, msg.SFN, msg.Slot) {
		return
	}

	filtered := &models.ULTTIRequest{SFN: msg.SFN, Slot: msg.Slot, NumGroups: msg.NumGroups}
	for _, pdu := range msg.PDUs {
		if validators.ValidateULTTIPDU(pdu, t).NofErrors() == 0 {
			filtered.PDUs = append(filtered.PDUs, pdu)
		}
	}
	filtered.NumPDUsOfEachType = filtered.CountPDUs()
	g.reject(t, models.ErrorCodeSlotError, msg.SFN, msg.Slot)
	if validators.ValidateULTTIRequest(filtered) == nil {
		g.next.ULTTIRequest(filtered)
	}
}

func (g *ValidatingGateway) ULDCIRequest(msg *models.ULDCIRequest) {
	t := models.ULDCIRequestType
	monitoring.Messages.WithLabelValues(g.cellID, t.String(), directionL2ToL1).Inc()
	err := validators.ValidateULDCIRequest(msg)
	if err == nil {
		g.next.ULDCIRequest(msg)
		return
	}
	if g.rejectMessage(err, t, models.ErrorCodeUlDciError, msg.SFN, msg.Slot) {
		return
	}

	filtered := &models.ULDCIRequest{SFN: msg.SFN, Slot: msg.Slot}
	for _, pdu := range msg.PDUs {
		if validators.ValidateDLTTIPDU(pdu, t).NofErrors() == 0 {
			filtered.PDUs = append(filtered.PDUs, pdu)
		}
	}
	filtered.NumDLTypes = filtered.CountPDUs()
	g.reject(t, models.ErrorCodeUlDciError, msg.SFN, msg.Slot)
	if validators.ValidateULDCIRequest(filtered) == nil {
		g.next.ULDCIRequest(filtered)
	}
}

// TxDataRequest drops the whole message on any error: its PDUs are addressed by index from
// the DL_TTI.request of the same slot.
func (g *ValidatingGateway) TxDataRequest(msg *models.TxDataRequest) {
	t := models.TxDataRequestType
	monitoring.Messages.WithLabelValues(g.cellID, t.String(), directionL2ToL1).Inc()
	err := validators.ValidateTxDataRequest(msg)
	if err == nil {
		g.next.TxDataRequest(msg)
		return
	}
	if g.rejectMessage(err, t, models.ErrorCodeTxError, msg.SFN, msg.Slot) {
		return
	}
	g.reject(t, models.ErrorCodeTxError, msg.SFN, msg.Slot)
}

// rejectMessage logs the report of err and reports whether the whole message was dropped.
// An invalid sfn/slot is answered with InvalidSfn, any other message level error with code.
func (g *ValidatingGateway) rejectMessage(err error, t models.MessageType, code models.ErrorCode, sfn, slot uint16) bool {
	r, ok := validators.AsReport(err)
	if !ok {
		g.logger.Error("unexpected validation error", "msg_type", t, "error", err)
		g.reject(t, code, sfn, slot)
		return true
	}
	validators.LogReport(g.logger, r)
	monitoring.ObserveReport(g.cellID, r)
	switch {
	case r.HasHeaderErrors():
		g.reject(t, models.ErrorCodeInvalidSfn, sfn, slot)
	case r.HasMessageErrors():
		g.reject(t, code, sfn, slot)
	default:
		return false
	}
	return true
}

func (g *ValidatingGateway) reject(t models.MessageType, code models.ErrorCode, sfn, slot uint16) {
	monitoring.ErrorIndications.WithLabelValues(g.cellID, code.String()).Inc()
	g.errorNotifier.OnErrorIndication(models.ErrorIndication{SFN: sfn, Slot: slot, MessageID: t, ErrorCode: code})
}

var _ fapi.SlotMessageGateway = (*ValidatingGateway)(nil)
