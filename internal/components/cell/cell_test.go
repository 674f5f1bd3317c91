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
	"testing"
	"time"

	"github.com/giuliocarot0/gitc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models/fapitest"
)

func newCellForTest(t *testing.T) (*Cell, *fapitest.Recorder) {
	t.Helper()
	rec := fapitest.NewRecorder()
	c := New(Config{ID: uuid.NewString()})
	c.SetConfigMessageNotifier(rec)
	c.SetErrorMessageNotifier(rec)
	c.SetCellOperationRequestNotifier(rec)
	return c, rec
}

func validConfigRequest() models.ConfigRequest {
	return models.ConfigRequest{Config: fapitest.ValidCellConfig()}
}

func lastErrorIndication(t *testing.T, rec *fapitest.Recorder) models.ErrorIndication {
	t.Helper()
	errs := fapitest.Of[models.ErrorIndication](rec)
	require.NotEmpty(t, errs)
	return errs[len(errs)-1]
}

func TestCell_InitialStateIsIdle(t *testing.T) {
	t.Parallel()

	c, _ := newCellForTest(t)
	require.Equal(t, StatusIdle, c.Status())
	_, ok := c.CellConfig()
	require.False(t, ok)
}

func TestCell_StartFromIdleIsInvalidState(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.StartRequest(models.StartRequest{})

	ind := lastErrorIndication(t, rec)
	require.Equal(t, models.StartRequestType, ind.MessageID)
	require.Equal(t, models.ErrorCodeInvalidState, ind.ErrorCode)
	require.Equal(t, StatusIdle, c.Status())
	require.Empty(t, fapitest.Of[models.CellConfig](rec), "collaborator must not be invoked")
}

func TestCell_ValidConfigMovesIdleToConfigured(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.ConfigRequest(validConfigRequest())

	require.Equal(t, StatusConfigured, c.Status())
	require.Equal(t, []models.ConfigResponse{{ErrorCode: models.ErrorCodeOK}}, fapitest.Of[models.ConfigResponse](rec))
	cfg, ok := c.CellConfig()
	require.True(t, ok)
	require.Equal(t, fapitest.ValidCellConfig(), cfg)
}

func TestCell_ReconfigureWhileConfigured(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.ConfigRequest(validConfigRequest())

	next := validConfigRequest()
	next.Config.Cell.PhyCellID = 500
	c.ConfigRequest(next)

	require.Equal(t, StatusConfigured, c.Status())
	cfg, _ := c.CellConfig()
	require.Equal(t, uint16(500), cfg.Cell.PhyCellID)
	require.Len(t, fapitest.Of[models.ConfigResponse](rec), 2)
}

func TestCell_InvalidConfigLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.ConfigRequest(validConfigRequest())

	bad := validConfigRequest()
	bad.Config.Cell.PhyCellID = 1008
	bad.Config.Carrier.NumTxAnt = 0
	c.ConfigRequest(bad)

	resps := fapitest.Of[models.ConfigResponse](rec)
	require.Len(t, resps, 2)
	require.Equal(t, models.ErrorCodeInvalidConfig, resps[1].ErrorCode)
	require.Equal(t, uint8(2), resps[1].NumInvalidTLVs)
	require.Equal(t, StatusConfigured, c.Status())
	cfg, _ := c.CellConfig()
	require.Equal(t, uint16(fapitest.PhyCellID), cfg.Cell.PhyCellID)
}

func TestCell_StartRejectedByCollaborator(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	rec.SetStartResult(false)
	c.ConfigRequest(validConfigRequest())
	c.StartRequest(models.StartRequest{})

	ind := lastErrorIndication(t, rec)
	require.Equal(t, models.ErrorCodeInvalidConfig, ind.ErrorCode)
	require.Equal(t, models.StartRequestType, ind.MessageID)
	require.Equal(t, StatusConfigured, c.Status())
	require.Equal(t, []models.CellConfig{fapitest.ValidCellConfig()}, fapitest.Of[models.CellConfig](rec))
}

func TestCell_StartStopCycle(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.ConfigRequest(validConfigRequest())

	for i := 0; i < 2; i++ {
		c.StartRequest(models.StartRequest{})
		require.Equal(t, StatusRunning, c.Status())

		c.StopRequest(models.StopRequest{})
		require.Equal(t, StatusConfigured, c.Status())
	}
	require.Equal(t, 2, rec.Stops())
	require.Len(t, fapitest.Of[models.StopIndication](rec), 2)
	require.Empty(t, fapitest.Of[models.ErrorIndication](rec))
}

func TestCell_ConfigRejectedWhileRunning(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.ConfigRequest(validConfigRequest())
	c.StartRequest(models.StartRequest{})
	require.Equal(t, StatusRunning, c.Status())

	next := validConfigRequest()
	next.Config.Cell.PhyCellID = 42
	c.ConfigRequest(next)

	resps := fapitest.Of[models.ConfigResponse](rec)
	require.Equal(t, models.ErrorCodeInvalidConfig, resps[len(resps)-1].ErrorCode)
	require.Equal(t, StatusRunning, c.Status())
	cfg, _ := c.CellConfig()
	require.Equal(t, uint16(fapitest.PhyCellID), cfg.Cell.PhyCellID)
}

func TestCell_StopOutsideRunningIsInvalidState(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.StopRequest(models.StopRequest{})
	require.Equal(t, models.ErrorCodeInvalidState, lastErrorIndication(t, rec).ErrorCode)
	require.Equal(t, StatusIdle, c.Status())

	c.ConfigRequest(validConfigRequest())
	c.StopRequest(models.StopRequest{})
	ind := lastErrorIndication(t, rec)
	require.Equal(t, models.StopRequestType, ind.MessageID)
	require.Equal(t, models.ErrorCodeInvalidState, ind.ErrorCode)
	require.Equal(t, StatusConfigured, c.Status())
	require.Zero(t, rec.Stops())
}

func TestCell_ParamResponseDependsOnState(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	c.ParamRequest(models.ParamRequest{})
	c.ConfigRequest(validConfigRequest())
	c.ParamRequest(models.ParamRequest{})
	c.StartRequest(models.StartRequest{})
	c.ParamRequest(models.ParamRequest{})

	require.Equal(t, []models.ParamResponse{
		{ErrorCode: models.ErrorCodeOK},
		{ErrorCode: models.ErrorCodeOK},
		{ErrorCode: models.ErrorCodeInvalidState},
	}, fapitest.Of[models.ParamResponse](rec))
}

func TestCell_OutOfRangePhyCellIDNeverReachesConfigured(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	req := validConfigRequest()
	req.Config.Cell.PhyCellID = 2000
	c.ConfigRequest(req)

	resps := fapitest.Of[models.ConfigResponse](rec)
	require.Len(t, resps, 1)
	require.Equal(t, models.ErrorCodeInvalidConfig, resps[0].ErrorCode)

	c.StartRequest(models.StartRequest{})
	ind := lastErrorIndication(t, rec)
	require.Equal(t, models.ErrorCodeInvalidState, ind.ErrorCode)
	require.Equal(t, StatusIdle, c.Status())
}

func TestCell_UnattachedNotifierPanics(t *testing.T) {
	t.Parallel()

	c := New(Config{ID: uuid.NewString()})
	require.Panics(t, func() { c.ParamRequest(models.ParamRequest{}) })
}

func TestCell_ControlTaskSerializesRequests(t *testing.T) {
	t.Parallel()

	c, rec := newCellForTest(t)
	require.NoError(t, c.StartControlTask(16))

	from := "TEST-" + c.ID()
	require.NoError(t, gitc.StartTask(from, func(gitc.Message) {}, 1))
	gw := NewControlGateway(from, c.ID(), nil)
	gw.ConfigRequest(validConfigRequest())
	gw.StartRequest(models.StartRequest{})
	gw.ParamRequest(models.ParamRequest{})
	gw.StopRequest(models.StopRequest{})

	require.Eventually(t, func() bool {
		return len(fapitest.Of[models.StopIndication](rec)) == 1
	}, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, StatusConfigured, c.Status())
	require.Equal(t, []models.ParamResponse{{ErrorCode: models.ErrorCodeInvalidState}}, fapitest.Of[models.ParamResponse](rec))
}
