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

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/utils"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// BufferedGateway is the slot gateway in front of the buffer. Messages are handed to it on the
// executor owning it, or sent straight to L1 when there is no buffer.
type BufferedGateway struct {
	buffer   *MessageBuffer
	executor utils.TaskExecutor
	l1       fapi.SlotMessageGateway
	logger   *slog.Logger
}

func NewBufferedGateway(cellID string, buffer *MessageBuffer, executor utils.TaskExecutor, l1 fapi.SlotMessageGateway, logger *slog.Logger) *BufferedGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if executor == nil {
		executor = utils.InlineExecutor{}
	}
	return &BufferedGateway{
		buffer:   buffer,
		executor: executor,
		l1:       l1,
		logger:   logger.With("cell", cellID, "component", "buffered-gateway"),
	}
}

func (g *BufferedGateway) DLTTIRequest(msg *models.DLTTIRequest) {
	if g.buffer == nil {
		g.l1.DLTTIRequest(msg)
		return
	}
	g.dispatch(models.DLTTIRequestType, msg.SFN, msg.Slot, func() { g.buffer.DLTTIRequest(msg) })
}

func (g *BufferedGateway) ULTTIRequest(msg *models.ULTTIRequest) {
	if g.buffer == nil {
		g.l1.ULTTIRequest(msg)
		return
	}
	g.dispatch(models.ULTTIRequestType, msg.SFN, msg.Slot, func() { g.buffer.ULTTIRequest(msg) })
}

func (g *BufferedGateway) ULDCIRequest(msg *models.ULDCIRequest) {
	if g.buffer == nil {
		g.l1.ULDCIRequest(msg)
		return
	}
	g.dispatch(models.ULDCIRequestType, msg.SFN, msg.Slot, func() { g.buffer.ULDCIRequest(msg) })
}

func (g *BufferedGateway) TxDataRequest(msg *models.TxDataRequest) {
	if g.buffer == nil {
		g.l1.TxDataRequest(msg)
		return
	}
	g.dispatch(models.TxDataRequestType, msg.SFN, msg.Slot, func() { g.buffer.TxDataRequest(msg) })
}

func (g *BufferedGateway) dispatch(msgType models.MessageType, sfn, slot uint16, task func()) {
	if !g.executor.Execute(task) {
		g.logger.Warn("message dropped, buffer executor is full", "msg_type", msgType, "sfn", sfn, "slot", slot)
	}
}

var _ fapi.SlotMessageGateway = (*BufferedGateway)(nil)
