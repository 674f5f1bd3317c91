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
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// ErrorMessageNotifiers delivers every ERROR.indication to each of its notifiers, in order.
type ErrorMessageNotifiers []ErrorMessageNotifier

func (n ErrorMessageNotifiers) OnErrorIndication(msg models.ErrorIndication) {
	for _, notifier := range n {
		notifier.OnErrorIndication(msg)
	}
}

// ErrorMessageFunc adapts a function to the ErrorMessageNotifier role.
type ErrorMessageFunc func(msg models.ErrorIndication)

func (f ErrorMessageFunc) OnErrorIndication(msg models.ErrorIndication) { f(msg) }
