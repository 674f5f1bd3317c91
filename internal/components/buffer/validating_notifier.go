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

// ValidatingIndicationNotifier checks the indications coming from L1 and drops the invalid ones.
type ValidatingIndicationNotifier struct {
	cellID string
	logger *slog.Logger

	data  fapi.SlotDataMessageNotifier
	time  fapi.SlotTimeMessageNotifier
	error fapi.ErrorMessageNotifier
}

func NewValidatingIndicationNotifier(cellID string, logger *slog.Logger) *ValidatingIndicationNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidatingIndicationNotifier{
		cellID: cellID,
		logger: logger.With("cell", cellID, "component", "validating-notifier"),
		data:   fapi.UnattachedSlotDataMessageNotifier,
		time:   fapi.UnattachedSlotTimeMessageNotifier,
		error:  fapi.UnattachedErrorMessageNotifier,
	}
}

func (n *ValidatingIndicationNotifier) SetSlotDataMessageNotifier(d fapi.SlotDataMessageNotifier) {
	n.data = d
}
func (n *ValidatingIndicationNotifier) SetSlotTimeMessageNotifier(t fapi.SlotTimeMessageNotifier) {
	n.time = t
}
func (n *ValidatingIndicationNotifier) SetErrorMessageNotifier(e fapi.ErrorMessageNotifier) {
	n.error = e
}

// accept counts the indication and reports whether it may be delivered.
func (n *ValidatingIndicationNotifier) accept(t models.MessageType, err error) bool {
	monitoring.Messages.WithLabelValues(n.cellID, t.String(), directionL1ToL2).Inc()
	if err == nil {
		return true
	}
	if r, ok := validators.AsReport(err); ok {
		validators.LogReport(n.logger, r)
		monitoring.ObserveReport(n.cellID, r)
	}
	n.logger.Warn("indication dropped", "msg_type", t)
	return false
}

func (n *ValidatingIndicationNotifier) OnSlotIndication(msg models.SlotIndication) {
	if n.accept(models.SlotIndicationType, validators.ValidateSlotIndication(&msg)) {
		n.time.OnSlotIndication(msg)
	}
}

func (n *ValidatingIndicationNotifier) OnErrorIndication(msg models.ErrorIndication) {
	if n.accept(models.ErrorIndicationType, validators.ValidateErrorIndication(&msg)) {
		n.error.OnErrorIndication(msg)
	}
}

func (n *ValidatingIndicationNotifier) OnRxDataIndication(msg *models.RxDataIndication) {
	if n.accept(models.RxDataIndicationType, validators.ValidateRxDataIndication(msg)) {
		n.data.OnRxDataIndication(msg)
	}
}

func (n *ValidatingIndicationNotifier) OnCRCIndication(msg *models.CRCIndication) {
	if n.accept(models.CRCIndicationType, validators.ValidateCRCIndication(msg)) {
		n.data.OnCRCIndication(msg)
	}
}

func (n *ValidatingIndicationNotifier) OnUCIIndication(msg *models.UCIIndication) {
	if n.accept(models.UCIIndicationType, validators.ValidateUCIIndication(msg)) {
		n.data.OnUCIIndication(msg)
	}
}

func (n *ValidatingIndicationNotifier) OnSRSIndication(msg *models.SRSIndication) {
	if n.accept(models.SRSIndicationType, validators.ValidateSRSIndication(msg)) {
		n.data.OnSRSIndication(msg)
	}
}

func (n *ValidatingIndicationNotifier) OnRACHIndication(msg *models.RACHIndication) {
	if n.accept(models.RACHIndicationType, validators.ValidateRACHIndication(msg)) {
		n.data.OnRACHIndication(msg)
	}
}

var (
	_ fapi.SlotDataMessageNotifier = (*ValidatingIndicationNotifier)(nil)
	_ fapi.SlotTimeMessageNotifier = (*ValidatingIndicationNotifier)(nil)
	_ fapi.ErrorMessageNotifier    = (*ValidatingIndicationNotifier)(nil)
)
