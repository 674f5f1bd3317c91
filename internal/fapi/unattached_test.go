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
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

func TestFAPI_UnattachedRolesPanic(t *testing.T) {
	t.Parallel()

	require.PanicsWithError(t, "fapi: ErrorMessageNotifier.OnErrorIndication invoked with no listener attached", func() {
		UnattachedErrorMessageNotifier.OnErrorIndication(models.ErrorIndication{})
	})
	require.PanicsWithError(t, "fapi: SlotTimeMessageNotifier.OnSlotIndication invoked with no listener attached", func() {
		UnattachedSlotTimeMessageNotifier.OnSlotIndication(models.SlotIndication{})
	})
	require.Panics(t, func() { UnattachedConfigMessageNotifier.OnConfigResponse(models.ConfigResponse{}) })
	require.Panics(t, func() { UnattachedSlotDataMessageNotifier.OnCRCIndication(&models.CRCIndication{}) })
	require.Panics(t, func() { UnattachedCellOperationNotifier.OnStartRequest(models.CellConfig{}) })
	require.Panics(t, func() { UnattachedMessageGateway.DLTTIRequest(&models.DLTTIRequest{}) })
	require.Panics(t, func() { UnattachedMessageGateway.StopRequest(models.StopRequest{}) })
}

func TestFAPI_ErrorFanOutKeepsOrder(t *testing.T) {
	t.Parallel()

	var got []string
	fanout := ErrorMessageNotifiers{
		ErrorMessageFunc(func(msg models.ErrorIndication) { got = append(got, "l2:"+msg.ErrorCode.String()) }),
		ErrorMessageFunc(func(msg models.ErrorIndication) { got = append(got, "oam:"+msg.ErrorCode.String()) }),
	}
	fanout.OnErrorIndication(models.ErrorIndication{ErrorCode: models.ErrorCodeTxError})

	require.Equal(t, []string{"l2:MSG_TX_ERR", "oam:MSG_TX_ERR"}, got)
	require.NotPanics(t, func() { ErrorMessageNotifiers(nil).OnErrorIndication(models.ErrorIndication{}) })
}
