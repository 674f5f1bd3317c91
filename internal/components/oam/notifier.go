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

// Package oam exposes the ERROR.indication stream of the simulated cells to external
// subscribers through HTTP callbacks.
package oam

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/giuliocarot0/gitc"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/utils"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
)

var (
	ErrInvalidCallback  = errors.New("subscription error: callbackUri must be an absolute http(s) URL")
	ErrUnknownErrorCode = errors.New("subscription error: unknown error code")
)

// Subscription selects the error reports posted to CallbackURI. Empty filters match everything.
type Subscription struct {
	ID          string   `json:"subscriptionId,omitempty"`
	CallbackURI string   `json:"callbackUri"`
	Cells       []string `json:"cells,omitempty"`
	ErrorCodes  []string `json:"errorCodes,omitempty"`
}

func (s *Subscription) matches(r *ErrorReport) bool {
	return (len(s.Cells) == 0 || slices.Contains(s.Cells, r.Cell)) &&
		(len(s.ErrorCodes) == 0 || slices.Contains(s.ErrorCodes, r.ErrorCode))
}

type ErrorReport struct {
	Cell         string    `json:"cell"`
	MessageType  string    `json:"messageType"`
	ErrorCode    string    `json:"errorCode"`
	SFN          uint16    `json:"sfn"`
	Slot         uint16    `json:"slot"`
	ExpectedSFN  *uint16   `json:"expectedSfn,omitempty"`
	ExpectedSlot *uint16   `json:"expectedSlot,omitempty"`
	TimeStamp    time.Time `json:"timeStamp"`
}

type ErrorNotification struct {
	SubscriptionID string        `json:"subscriptionId"`
	ReportList     []ErrorReport `json:"reportList"`
}

const defaultReportQueueSize = 64

type Config struct {
	// Name identifies the gitc task of the notifier and must be unique in the process.
	Name string
	// ReportQueueSize bounds the reports of one cell waiting for the gitc task.
	ReportQueueSize int
	Client          *http.Client
	Clock           clockwork.Clock
	Logger          *slog.Logger
}

// Notifier keeps the subscriptions and posts a notification for every matching error report.
// Reports are queued on a gitc task so that cells never wait on a subscriber.
type Notifier struct {
	task      string
	queueSize int
	client    *http.Client
	clock     clockwork.Clock
	logger    *slog.Logger

	subMutex      sync.RWMutex
	subscriptions map[string]Subscription
}

func NewNotifier(cfg Config) *Notifier {
	n := &Notifier{
		task:          models.OAMTaskName(cfg.Name),
		queueSize:     cfg.ReportQueueSize,
		client:        cfg.Client,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		subscriptions: make(map[string]Subscription),
	}
	if n.queueSize <= 0 {
		n.queueSize = defaultReportQueueSize
	}
	if n.client == nil {
		n.client = &http.Client{Timeout: 5 * time.Second}
	}
	if n.clock == nil {
		n.clock = clockwork.NewRealClock()
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	n.logger = n.logger.With("component", "oam", "task", n.task)
	return n
}

// Start runs the delivery task. Reports sent before Start are lost.
func (n *Notifier) Start(queueSize int) error {
	err := gitc.StartTask(n.task, func(msg gitc.Message) {
		switch msg.Type {
		case models.ErrorReportMsg:
			n.deliver(msg.Payload.(*ErrorReport))
		default:
			n.logger.Warn("unexpected message", "from", msg.From, "type", msg.Type)
		}
	}, queueSize)
	if err != nil {
		return fmt.Errorf("could not start task %s: %w", n.task, err)
	}
	n.logger.Info("started")
	return nil
}

// TaskName is the gitc task of the notifier.
func (n *Notifier) TaskName() string { return n.task }

// CellReporter hands the errors of one cell over to the notifier task. The hand-off runs on
// its own executor: a full queue drops the report instead of blocking the caller.
type CellReporter struct {
	notifier *Notifier
	cellID   string
	executor *utils.PoolExecutor
}

// ForCell returns the ErrorMessageNotifier reporting the errors of one cell.
// The caller stops it when the cell goes away.
func (n *Notifier) ForCell(cellID string) *CellReporter {
	return &CellReporter{
		notifier: n,
		cellID:   cellID,
		executor: utils.NewPoolExecutor(utils.PoolExecutorConfig{
			Name:      "oam",
			CellID:    cellID,
			QueueSize: n.queueSize,
			Logger:    n.logger,
		}),
	}
}

func (r *CellReporter) OnErrorIndication(msg models.ErrorIndication) {
	n := r.notifier
	report := &ErrorReport{
		Cell:        r.cellID,
		MessageType: msg.MessageID.String(),
		ErrorCode:   msg.ErrorCode.String(),
		SFN:         msg.SFN,
		Slot:        msg.Slot,
		TimeStamp:   n.clock.Now(),
	}
	if msg.ErrorCode == models.ErrorCodeOutOfSync {
		report.ExpectedSFN, report.ExpectedSlot = &msg.ExpectedSFN, &msg.ExpectedSlot
	}
	r.executor.Execute(func() {
		if err := gitc.Send(models.ControlTaskName(r.cellID), n.task, models.ErrorReportMsg, report); err != nil {
			n.logger.Warn("error report dropped", "cell", r.cellID, "error", err)
		}
	})
}

// Stop waits for the queued reports to be handed over.
func (r *CellReporter) Stop() {
	r.executor.Stop()
}

var _ fapi.ErrorMessageNotifier = (*CellReporter)(nil)

// Subscribe validates sub and stores it under a fresh id.
func (n *Notifier) Subscribe(sub Subscription) (Subscription, error) {
	u, err := url.ParseRequestURI(sub.CallbackURI)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Subscription{}, ErrInvalidCallback
	}
	for _, code := range sub.ErrorCodes {
		if !knownErrorCode(code) {
			return Subscription{}, fmt.Errorf("%w: %s", ErrUnknownErrorCode, code)
		}
	}
	sub.ID = uuid.NewString()

	n.subMutex.Lock()
	defer n.subMutex.Unlock()
	n.subscriptions[sub.ID] = sub
	n.logger.Info("created new subscription", "id", sub.ID, "callback", sub.CallbackURI)
	return sub, nil
}

func (n *Notifier) Unsubscribe(id string) bool {
	n.subMutex.Lock()
	defer n.subMutex.Unlock()
	if _, ok := n.subscriptions[id]; !ok {
		return false
	}
	delete(n.subscriptions, id)
	n.logger.Info("deleted subscription", "id", id)
	return true
}

func (n *Notifier) Subscription(id string) (Subscription, bool) {
	n.subMutex.RLock()
	defer n.subMutex.RUnlock()
	sub, ok := n.subscriptions[id]
	return sub, ok
}

// Subscriptions returns every subscription ordered by id.
func (n *Notifier) Subscriptions() []Subscription {
	n.subMutex.RLock()
	defer n.subMutex.RUnlock()
	out := make([]Subscription, 0, len(n.subscriptions))
	for _, sub := range n.subscriptions {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (n *Notifier) deliver(report *ErrorReport) {
	n.subMutex.RLock()
	defer n.subMutex.RUnlock()

	for _, sub := range n.subscriptions {
		if !sub.matches(report) {
			continue
		}
		body, err := json.Marshal(&ErrorNotification{SubscriptionID: sub.ID, ReportList: []ErrorReport{*report}})
		if err != nil {
			n.logger.Error("error while marshalling notification", "error", err)
			return
		}
		go n.post(sub.CallbackURI, body)
	}
}

func (n *Notifier) post(callback string, body []byte) {
	resp, err := n.client.Post(callback, "application/json", bytes.NewReader(body))
	if err != nil {
		monitoring.OAMNotifications.WithLabelValues("failed").Inc()
		n.logger.Warn("error notifying subscriber", "callback", callback, "error", err)
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= http.StatusBadRequest {
		monitoring.OAMNotifications.WithLabelValues("rejected").Inc()
		n.logger.Warn("subscriber rejected notification", "callback", callback, "status", resp.Status)
		return
	}
	monitoring.OAMNotifications.WithLabelValues("delivered").Inc()
}

func knownErrorCode(name string) bool {
	for c := models.ErrorCode(0); c.Valid(); c++ {
		if c.String() == name {
			return true
		}
	}
	return false
}
