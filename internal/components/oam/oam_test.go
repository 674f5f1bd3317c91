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

package oam

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giuliocarot0/gitc"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

var epoch = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newNotifier(t *testing.T) *Notifier {
	t.Helper()
	n := NewNotifier(Config{Name: t.Name(), Clock: clockwork.NewFakeClockAt(epoch)})
	require.NoError(t, n.Start(16))
	return n
}

// newSubscriber returns a callback server pushing every notification it receives on the channel.
func newSubscriber(t *testing.T) (*httptest.Server, <-chan ErrorNotification) {
	t.Helper()
	ch := make(chan ErrorNotification, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n ErrorNotification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ch <- n
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func TestNotifier_PostsMatchingReports(t *testing.T) {
	t.Parallel()

	n := newNotifier(t)
	cellID := t.Name() + "-cell"
	require.NoError(t, gitc.StartTask(models.ControlTaskName(cellID), func(gitc.Message) {}, 1))
	srv, notifications := newSubscriber(t)

	sub, err := n.Subscribe(Subscription{CallbackURI: srv.URL, ErrorCodes: []string{"OUT_OF_SYNC"}})
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID)

	notifier := n.ForCell(cellID)
	t.Cleanup(notifier.Stop)
	notifier.OnErrorIndication(models.ErrorIndication{
		SFN: 10, Slot: 3, MessageID: models.TxDataRequestType, ErrorCode: models.ErrorCodeTxError,
	})
	notifier.OnErrorIndication(models.ErrorIndication{
		SFN: 10, Slot: 3, MessageID: models.DLTTIRequestType, ErrorCode: models.ErrorCodeOutOfSync,
		ExpectedSFN: 10, ExpectedSlot: 5,
	})

	var got ErrorNotification
	require.Eventually(t, func() bool {
		select {
		case got = <-notifications:
			return true
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, sub.ID, got.SubscriptionID)
	require.Len(t, got.ReportList, 1)
	report := got.ReportList[0]
	require.Equal(t, cellID, report.Cell)
	require.Equal(t, "DL_TTI.request", report.MessageType)
	require.Equal(t, "OUT_OF_SYNC", report.ErrorCode)
	require.NotNil(t, report.ExpectedSlot)
	require.EqualValues(t, 5, *report.ExpectedSlot)
	require.True(t, epoch.Equal(report.TimeStamp))

	require.Never(t, func() bool { return len(notifications) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestCellReporter_NeverBlocksOnStalledTask(t *testing.T) {
	t.Parallel()

	n := NewNotifier(Config{Name: t.Name(), ReportQueueSize: 1})
	require.NoError(t, n.Start(1))
	cellID := t.Name() + "-cell"
	require.NoError(t, gitc.StartTask(models.ControlTaskName(cellID), func(gitc.Message) {}, 1))
	reporter := n.ForCell(cellID)

	// delivery waits on the subscriptions lock, so the gitc mailbox fills up
	n.subMutex.Lock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 20 {
			reporter.OnErrorIndication(models.ErrorIndication{
				MessageID: models.DLTTIRequestType, ErrorCode: models.ErrorCodeSlotError,
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("OnErrorIndication blocked on a stalled notifier task")
	}
	n.subMutex.Unlock()
	reporter.Stop()
}

func TestNotifier_CellFilter(t *testing.T) {
	t.Parallel()

	sub := Subscription{Cells: []string{"a"}}
	require.True(t, sub.matches(&ErrorReport{Cell: "a", ErrorCode: "MSG_TX_ERR"}))
	require.False(t, sub.matches(&ErrorReport{Cell: "b", ErrorCode: "MSG_TX_ERR"}))
	require.True(t, (&Subscription{}).matches(&ErrorReport{Cell: "b"}))
}

func TestNotifier_SubscribeValidation(t *testing.T) {
	t.Parallel()

	n := NewNotifier(Config{Name: t.Name()})
	_, err := n.Subscribe(Subscription{CallbackURI: "not a url"})
	require.ErrorIs(t, err, ErrInvalidCallback)
	_, err = n.Subscribe(Subscription{CallbackURI: "ftp://host/cb"})
	require.ErrorIs(t, err, ErrInvalidCallback)
	_, err = n.Subscribe(Subscription{CallbackURI: "http://host/cb", ErrorCodes: []string{"MSG_NOPE"}})
	require.ErrorIs(t, err, ErrUnknownErrorCode)

	a, err := n.Subscribe(Subscription{CallbackURI: "http://host/a"})
	require.NoError(t, err)
	b, err := n.Subscribe(Subscription{CallbackURI: "https://host/b", ErrorCodes: []string{"MSG_SLOT_ERR"}})
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
	require.Len(t, n.Subscriptions(), 2)

	require.True(t, n.Unsubscribe(a.ID))
	require.False(t, n.Unsubscribe(a.ID))
	require.Equal(t, []Subscription{b}, n.Subscriptions())
}

func TestNotifier_NorthboundAPI(t *testing.T) {
	t.Parallel()

	n := NewNotifier(Config{Name: t.Name()})
	r := mux.NewRouter()
	n.RegisterNorthboundAPIs(r)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
		return rec
	}

	require.Equal(t, http.StatusBadRequest, do(http.MethodPost, subscriptionsPath, "{").Code)
	require.Equal(t, http.StatusBadRequest, do(http.MethodPost, subscriptionsPath, `{"callbackUri":"x"}`).Code)

	rec := do(http.MethodPost, subscriptionsPath, `{"callbackUri":"http://127.0.0.1:9/cb","cells":["c1"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, []string{"c1"}, created.Cells)
	require.Equal(t, subscriptionsPath+"/"+created.ID, rec.Header().Get("Location"))

	rec = do(http.MethodGet, subscriptionsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, []Subscription{created}, list)

	require.Equal(t, http.StatusOK, do(http.MethodGet, subscriptionsPath+"/"+created.ID, "").Code)
	require.Equal(t, http.StatusNoContent, do(http.MethodDelete, subscriptionsPath+"/"+created.ID, "").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodDelete, subscriptionsPath+"/"+created.ID, "").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodGet, subscriptionsPath+"/"+created.ID, "").Code)
}
