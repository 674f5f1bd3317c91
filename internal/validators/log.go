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

package validators

import (
	"errors"
	"log/slog"
)

// AsReport extracts the report carried by a validation error.
func AsReport(err error) (*ValidatorReport, bool) {
	var r *ValidatorReport
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// LogReport writes one warning per invalid property.
func LogReport(logger *slog.Logger, r *ValidatorReport) {
	for _, e := range r.Errors {
		pduType := ""
		if e.PDUType != nil {
			pduType = e.PDUType.String()
		}
		logger.Warn("invalid FAPI property",
			"msg_type", e.MessageType.String(),
			"pdu_type", pduType,
			"property", e.Property,
			"value", e.Value,
			"sfn", r.SFN,
			"slot", r.Slot,
		)
	}
}
