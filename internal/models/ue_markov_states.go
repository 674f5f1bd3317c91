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

package models

import "fmt"

// UEState is the life-cycle state of an emulated UE as seen by the L2 scheduler.
type UEState int

const (
	UEDeregistered UEState = iota // no C-RNTI
	UERegistered                  // random access completed, C-RNTI assigned
	UEAttached                    // RRC connected, no data bearer yet
	UEIdle                        // data bearer set up, nothing to schedule
	UEConnected                   // scheduled in DL and UL
	UEHandover                    // transient, leads to connected with a new C-RNTI or to deregistered
)

var ueStateNames = [...]string{
	UEDeregistered: "deregistered",
	UERegistered:   "registered",
	UEAttached:     "attached",
	UEIdle:         "idle",
	UEConnected:    "connected",
	UEHandover:     "handover",
}

// UEStates lists every state, in declaration order.
func UEStates() []UEState {
	return []UEState{UEDeregistered, UERegistered, UEAttached, UEIdle, UEConnected, UEHandover}
}

func (s UEState) String() string {
	if s < 0 || int(s) >= len(ueStateNames) {
		return fmt.Sprintf("UEState(%d)", int(s))
	}
	return ueStateNames[s]
}

func (s UEState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *UEState) UnmarshalText(text []byte) error {
	for i, name := range ueStateNames {
		if name == string(text) {
			*s = UEState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown UE state %q", text)
}

// HasRNTI reports whether a UE in state s owns a C-RNTI.
func (s UEState) HasRNTI() bool {
	return s != UEDeregistered
}

// UEProcedure is the radio procedure run when a UE changes state.
type UEProcedure string

const (
	NoProcedure        UEProcedure = "NONE"
	RandomAccess       UEProcedure = "RANDOM_ACCESS"
	RRCSetup           UEProcedure = "RRC_SETUP"
	BearerSetup        UEProcedure = "DRB_SETUP"
	Inactivity         UEProcedure = "INACTIVITY"
	ServiceRequest     UEProcedure = "SERVICE_REQUEST"
	Paging             UEProcedure = "PAGING"
	RadioLinkFailure   UEProcedure = "RADIO_LINK_FAILURE"
	HandoverInitiated  UEProcedure = "HO_INITIATED"
	HandoverSuccessful UEProcedure = "HO_SUCCESSFUL"
	HandoverFailure    UEProcedure = "HO_FAILED"
)

type Transition struct {
	To          UEState
	Probability float64
	Procedure   UEProcedure
}
