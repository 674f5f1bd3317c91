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

package models

import (
	"github.com/giuliocarot0/gitc"
)

// gitc message types exchanged with a cell control task.
const (
	ParamRequestMsg gitc.MessageType = iota
	ConfigRequestMsg
	StartRequestMsg
	StopRequestMsg
	ErrorReportMsg
)

// ControlTaskName is the gitc task that serializes the control messages of one cell.
func ControlTaskName(cellId string) string {
	return "CELL-" + cellId
}

// OAMTaskName is the gitc task delivering the error notifications of a simulation.
func OAMTaskName(name string) string {
	return "OAM-" + name
}
