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

package monitoring

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ValidationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_validation_errors_total",
			Help: "Invalid properties found by the message validator",
		},
		[]string{"cell", "msg_type", "pdu_type"},
	)

	Messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_messages_total",
			Help: "FAPI messages crossing the L2/L1 boundary by direction",
		},
		[]string{"cell", "msg_type", "direction"},
	)

	BufferedMessages = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fapi_buffered_messages",
			Help: "Messages waiting in the slot buffer for their target slot",
		},
		[]string{"cell"},
	)

	LateMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_late_messages_total",
			Help: "Messages dropped by the slot buffer because they target a slot already reached",
		},
		[]string{"cell", "msg_type"},
	)

	EarlyMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_early_messages_total",
			Help: "Messages dropped by the slot buffer because they target a slot beyond its window",
		},
		[]string{"cell", "msg_type"},
	)

	ExecutorDroppedTasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_executor_dropped_tasks_total",
			Help: "Tasks rejected by a full executor queue",
		},
		[]string{"cell", "executor"},
	)

	CellStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fapi_cell_status",
			Help: "1 for the current status of each cell, 0 otherwise",
		},
		[]string{"cell", "status"},
	)

	ErrorIndications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_error_indications_total",
			Help: "ERROR.indication messages emitted by error code",
		},
		[]string{"cell", "error_code"},
	)

	SlotIndications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fapi_slot_indications_total",
			Help: "SLOT.indication ticks received from L1",
		},
		[]string{"cell"},
	)

	UEsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ue_total",
			Help: "Total number of emulated UEs by state",
		},
		[]string{"cell", "state"},
	)

	ScheduledBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ue_scheduled_bytes_total",
			Help: "Transport block bytes scheduled by direction",
		},
		[]string{"cell", "direction"},
	)

	OAMNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oam_notifications_total",
			Help: "ERROR.indication notifications posted to subscribers by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(ValidationErrors, Messages, BufferedMessages, LateMessages, EarlyMessages,
		ExecutorDroppedTasks, CellStatus, ErrorIndications, SlotIndications, UEsTotal, ScheduledBytes, OAMNotifications)
}

// StartMetricsServer serves /metrics on the given port until the returned server is shut down.
func StartMetricsServer(port int, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	logger.Info("starting prometheus metrics server", "addr", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return srv
}
