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

package fapi

import (
	"fmt"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// ErrNotifierNotAttached is the panic value raised when a role is used before its listener is set.
type ErrNotifierNotAttached struct {
	Role   string
	Method string
}

func (e ErrNotifierNotAttached) Error() string {
	return fmt.Sprintf("fapi: %s.%s invoked with no listener attached", e.Role, e.Method)
}

func notAttached(role, method string) {
	panic(ErrNotifierNotAttached{Role: role, Method: method})
}

// Unattached* values are the defaults of every dependency injection slot.
// Invoking them is a wiring bug in the hosting application and panics.
var (
	UnattachedConfigMessageNotifier   ConfigMessageNotifier        = unattachedConfig{}
	UnattachedErrorMessageNotifier    ErrorMessageNotifier         = unattachedError{}
	UnattachedSlotDataMessageNotifier SlotDataMessageNotifier      = unattachedSlotData{}
	UnattachedSlotTimeMessageNotifier SlotTimeMessageNotifier      = unattachedSlotTime{}
	UnattachedCellOperationNotifier   CellOperationRequestNotifier = unattachedCellOperation{}
	UnattachedMessageGateway          MessageGateway               = (*unattachedGateway)(nil)
)

type unattachedConfig struct{}

func (unattachedConfig) OnParamResponse(models.ParamResponse) {
	notAttached("ConfigMessageNotifier", "OnParamResponse")
}
func (unattachedConfig) OnConfigResponse(models.ConfigResponse) {
	notAttached("ConfigMessageNotifier", "OnConfigResponse")
}
func (unattachedConfig) OnStopIndication(models.StopIndication) {
	notAttached("ConfigMessageNotifier", "OnStopIndication")
}

type unattachedError struct{}

func (unattachedError) OnErrorIndication(models.ErrorIndication) {
	notAttached("ErrorMessageNotifier", "OnErrorIndication")
}

type unattachedSlotData struct{}

func (unattachedSlotData) OnRxDataIndication(*models.RxDataIndication) {
	notAttached("SlotDataMessageNotifier", "OnRxDataIndication")
}
func (unattachedSlotData) OnCRCIndication(*models.CRCIndication) {
	notAttached("SlotDataMessageNotifier", "OnCRCIndication")
}
func (unattachedSlotData) OnUCIIndication(*models.UCIIndication) {
	notAttached("SlotDataMessageNotifier", "OnUCIIndication")
}
func (unattachedSlotData) OnSRSIndication(*models.SRSIndication) {
	notAttached("SlotDataMessageNotifier", "OnSRSIndication")
}
func (unattachedSlotData) OnRACHIndication(*models.RACHIndication) {
	notAttached("SlotDataMessageNotifier", "OnRACHIndication")
}

type unattachedSlotTime struct{}

func (unattachedSlotTime) OnSlotIndication(models.SlotIndication) {
	notAttached("SlotTimeMessageNotifier", "OnSlotIndication")
}

type unattachedCellOperation struct{}

func (unattachedCellOperation) OnStartRequest(models.CellConfig) bool {
	notAttached("CellOperationRequestNotifier", "OnStartRequest")
	return false
}
func (unattachedCellOperation) OnStopRequest() {
	notAttached("CellOperationRequestNotifier", "OnStopRequest")
}

type unattachedGateway struct{}

func (*unattachedGateway) ParamRequest(models.ParamRequest) {
	notAttached("MessageGateway", "ParamRequest")
}
func (*unattachedGateway) ConfigRequest(models.ConfigRequest) {
	notAttached("MessageGateway", "ConfigRequest")
}
func (*unattachedGateway) StartRequest(models.StartRequest) {
	notAttached("MessageGateway", "StartRequest")
}
func (*unattachedGateway) StopRequest(models.StopRequest) {
	notAttached("MessageGateway", "StopRequest")
}
func (*unattachedGateway) DLTTIRequest(*models.DLTTIRequest) {
	notAttached("MessageGateway", "DLTTIRequest")
}
func (*unattachedGateway) ULTTIRequest(*models.ULTTIRequest) {
	notAttached("MessageGateway", "ULTTIRequest")
}
func (*unattachedGateway) ULDCIRequest(*models.ULDCIRequest) {
	notAttached("MessageGateway", "ULDCIRequest")
}
func (*unattachedGateway) TxDataRequest(*models.TxDataRequest) {
	notAttached("MessageGateway", "TxDataRequest")
}
