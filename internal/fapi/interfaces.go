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

// Package fapi defines the gateway and notifier roles that connect a cell to its L2 producer
// and to its L1 consumer.
package fapi

import (
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// ConfigMessageGateway carries the control path of one cell from L2 to L1.
// Calls are fire-and-forget: answers arrive on a ConfigMessageNotifier or an ErrorMessageNotifier.
type ConfigMessageGateway interface {
	ParamRequest(msg models.ParamRequest)
	ConfigRequest(msg models.ConfigRequest)
	StartRequest(msg models.StartRequest)
	StopRequest(msg models.StopRequest)
}

// SlotMessageGateway carries the per-slot data path of one cell from L2 to L1.
type SlotMessageGateway interface {
	DLTTIRequest(msg *models.DLTTIRequest)
	ULTTIRequest(msg *models.ULTTIRequest)
	ULDCIRequest(msg *models.ULDCIRequest)
	TxDataRequest(msg *models.TxDataRequest)
}

// MessageGateway is the single sink L2 talks to.
type MessageGateway interface {
	ConfigMessageGateway
	SlotMessageGateway
}

type ConfigMessageNotifier interface {
	OnParamResponse(msg models.ParamResponse)
	OnConfigResponse(msg models.ConfigResponse)
	OnStopIndication(msg models.StopIndication)
}

type ErrorMessageNotifier interface {
	OnErrorIndication(msg models.ErrorIndication)
}

type SlotDataMessageNotifier interface {
	OnRxDataIndication(msg *models.RxDataIndication)
	OnCRCIndication(msg *models.CRCIndication)
	OnUCIIndication(msg *models.UCIIndication)
	OnSRSIndication(msg *models.SRSIndication)
	OnRACHIndication(msg *models.RACHIndication)
}

type SlotTimeMessageNotifier interface {
	OnSlotIndication(msg models.SlotIndication)
}

// CellOperationRequestNotifier is implemented by the component owning the PHY startup and shutdown.
// OnStartRequest returns false when the PHY cannot run the given configuration.
type CellOperationRequestNotifier interface {
	OnStartRequest(cfg models.CellConfig) bool
	OnStopRequest()
}
