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
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/validators"
)

// ObserveReport counts the entries of a validation report.
func ObserveReport(cell string, r *validators.ValidatorReport) {
	for _, e := range r.Errors {
		pduType := "none"
		if e.PDUType != nil {
			pduType = e.PDUType.String()
		}
		ValidationErrors.WithLabelValues(cell, e.MessageType.String(), pduType).Inc()
	}
}
