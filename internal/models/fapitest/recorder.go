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

package fapitest

import (
	"sync"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// Recorder implements every gateway and notifier role and keeps the calls it receives, in order.
type Recorder struct {
	mu     sync.Mutex
	events []any
	// StartResult is returned by OnStartRequest.
	StartResult bool
	stops       int
}

func NewRecorder() *Recorder {
	return &Recorder{StartResult: true}
}

func (r *Recorder) record(msg any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, msg)
}

// Events returns a copy of every recorded message.
func (r *Recorder) Events() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.events...)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Of returns the recorded messages of type T.
func Of[T any](r *Recorder) []T {
	var out []T
	for _, e := range r.Events() {
		if m, ok := e.(T); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *Recorder) ParamRequest(msg models.ParamRequest)       { r.record(msg) }
func (r *Recorder) ConfigRequest(msg models.ConfigRequest)     { r.record(msg) }
func (r *Recorder) StartRequest(msg models.StartRequest)       { r.record(msg) }
func (r *Recorder) StopRequest(msg models.StopRequest)         { r.record(msg) }
func (r *Recorder) DLTTIRequest(msg *models.DLTTIRequest)      { r.record(msg) }
func (r *Recorder) ULTTIRequest(msg *models.ULTTIRequest)      { r.record(msg) }
func (r *Recorder) ULDCIRequest(msg *models.ULDCIRequest)      { r.record(msg) }
func (r *Recorder) TxDataRequest(msg *models.TxDataRequest)    { r.record(msg) }
func (r *Recorder) OnParamResponse(msg models.ParamResponse)   { r.record(msg) }
func (r *Recorder) OnConfigResponse(msg models.ConfigResponse) { r.record(msg) }
func (r *Recorder) OnStopIndication(msg models.StopIndication) { r.record(msg) }
func (r *Recorder) OnErrorIndication(msg models.ErrorIndication) {
	r.record(msg)
}
func (r *Recorder) OnSlotIndication(msg models.SlotIndication)      { r.record(msg) }
func (r *Recorder) OnRxDataIndication(msg *models.RxDataIndication) { r.record(msg) }
func (r *Recorder) OnCRCIndication(msg *models.CRCIndication)       { r.record(msg) }
func (r *Recorder) OnUCIIndication(msg *models.UCIIndication)       { r.record(msg) }
func (r *Recorder) OnSRSIndication(msg *models.SRSIndication)       { r.record(msg) }
func (r *Recorder) OnRACHIndication(msg *models.RACHIndication)     { r.record(msg) }

func (r *Recorder) OnStartRequest(cfg models.CellConfig) bool {
	r.record(cfg)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.StartResult
}

func (r *Recorder) OnStopRequest() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
}

func (r *Recorder) Stops() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}

func (r *Recorder) SetStartResult(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StartResult = ok
}
