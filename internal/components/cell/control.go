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

package cell

import (
	"fmt"
	"log/slog"

	"github.com/giuliocarot0/gitc"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// StartControlTask runs the control path of the cell on its own gitc task, so that
// requests coming from any goroutine are handled one at a time.
func (c *Cell) StartControlTask(queueSize int) error {
	err := gitc.StartTask(models.ControlTaskName(c.id), func(msg gitc.Message) {
		switch msg.Type {
		case models.ParamRequestMsg:
			c.ParamRequest(*msg.Payload.(*models.ParamRequest))
		case models.ConfigRequestMsg:
			c.ConfigRequest(*msg.Payload.(*models.ConfigRequest))
		case models.StartRequestMsg:
			c.StartRequest(*msg.Payload.(*models.StartRequest))
		case models.StopRequestMsg:
			c.StopRequest(*msg.Payload.(*models.StopRequest))
		default:
			c.logger.Warn("unexpected control message", "from", msg.From, "type", msg.Type)
		}
	}, queueSize)
	if err != nil {
		return fmt.Errorf("could not start control task of cell %s: %w", c.id, err)
	}
	c.logger.Info("control task started", "task", models.ControlTaskName(c.id))
	return nil
}

// ControlGateway posts control requests to the gitc task of a cell.
type ControlGateway struct {
	from   string
	to     string
	logger *slog.Logger
}

// NewControlGateway returns a gateway sending on behalf of the task named from.
func NewControlGateway(from, cellID string, logger *slog.Logger) *ControlGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlGateway{
		from:   from,
		to:     models.ControlTaskName(cellID),
		logger: logger.With("cell", cellID, "component", "control-gateway"),
	}
}

func (g *ControlGateway) ParamRequest(msg models.ParamRequest) {
	g.send(models.ParamRequestMsg, &msg)
}

func (g *ControlGateway) ConfigRequest(msg models.ConfigRequest) {
	g.send(models.ConfigRequestMsg, &msg)
}

func (g *ControlGateway) StartRequest(msg models.StartRequest) {
	g.send(models.StartRequestMsg, &msg)
}

func (g *ControlGateway) StopRequest(msg models.StopRequest) {
	g.send(models.StopRequestMsg, &msg)
}

func (g *ControlGateway) send(t gitc.MessageType, payload any) {
	if err := gitc.Send(g.from, g.to, t, payload); err != nil {
		g.logger.Error("could not deliver control request", "to", g.to, "error", err)
	}
}

var _ fapi.ConfigMessageGateway = (*ControlGateway)(nil)
