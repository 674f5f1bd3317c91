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
	"fmt"
	"strings"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// ErrorReport describes one violated constraint.
type ErrorReport struct {
	MessageType models.MessageType
	// PDUType is nil when the property belongs to the message itself.
	PDUType  models.PDUType
	Property string
	Value    int64
}

func (e ErrorReport) String() string {
	if e.PDUType == nil {
		return fmt.Sprintf("%s: %s=%d", e.MessageType, e.Property, e.Value)
	}
	return fmt.Sprintf("%s/%s: %s=%d", e.MessageType, e.PDUType, e.Property, e.Value)
}

// ValidatorReport collects every violated constraint of one message, in check order.
// A report without errors means the message is valid.
type ValidatorReport struct {
	MessageType models.MessageType
	SFN         uint16
	Slot        uint16
	Errors      []ErrorReport
}

func NewValidatorReport(msgType models.MessageType, sfn, slot uint16) *ValidatorReport {
	return &ValidatorReport{MessageType: msgType, SFN: sfn, Slot: slot}
}

func (r *ValidatorReport) Append(value int64, property string, pduType models.PDUType) {
	r.Errors = append(r.Errors, ErrorReport{
		MessageType: r.MessageType,
		PDUType:     pduType,
		Property:    property,
		Value:       value,
	})
}

// Merge appends the entries of o, re-keyed to the message type of r.
func (r *ValidatorReport) Merge(o *ValidatorReport) {
	if o == nil {
		return
	}
	for _, e := range o.Errors {
		e.MessageType = r.MessageType
		r.Errors = append(r.Errors, e)
	}
}

func (r *ValidatorReport) NofErrors() int {
	return len(r.Errors)
}

// HasProperty reports whether any entry was raised for the given property name.
func (r *ValidatorReport) HasProperty(property string) bool {
	for _, e := range r.Errors {
		if e.Property == property {
			return true
		}
	}
	return false
}

// Err returns nil for an empty report, the report itself otherwise.
func (r *ValidatorReport) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	return r
}

func (r *ValidatorReport) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d.%d: %d invalid properties", r.MessageType, r.SFN, r.Slot, len(r.Errors))
	for _, e := range r.Errors {
		b.WriteString("; ")
		if e.PDUType != nil {
			b.WriteString(e.PDUType.String())
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%d", e.Property, e.Value)
	}
	return b.String()
}
