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

package ran

import (
	"time"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/trafficgen"
)

// A UE is one emulated terminal of the cell. It is owned by the Emulator and not safe for
// concurrent use.
type UE struct {
	ID      string
	Profile string

	state models.UEState
	rnti  uint16
	dl    *trafficgen.Buffer
	ul    *trafficgen.Buffer
	stats *models.UpStats

	// lastActivity is the time of the last transport block, used for the inactivity timer.
	lastActivity time.Time
	harqID       uint8
}

// UEStatus is the externally visible view of a UE.
type UEStatus struct {
	ID      string                `json:"id"`
	State   models.UEState        `json:"state"`
	RNTI    uint16                `json:"rnti,omitempty"`
	Profile string                `json:"profile"`
	Stats   *models.UpStatsReport `json:"stats,omitempty"`
}

func newUE(id, profile string) (*UE, error) {
	dl, err := trafficgen.NewProfile(profile)
	if err != nil {
		return nil, err
	}
	ul, err := trafficgen.NewProfile(profile)
	if err != nil {
		return nil, err
	}
	return &UE{
		ID:      id,
		Profile: profile,
		state:   models.UEDeregistered,
		dl:      trafficgen.NewBuffer(dl),
		ul:      trafficgen.NewBuffer(ul),
	}, nil
}

func (ue *UE) State() models.UEState { return ue.state }
func (ue *UE) RNTI() uint16          { return ue.rnti }

// hasData reports whether either buffer holds bytes waiting for a grant.
func (ue *UE) hasData() bool {
	return ue.dl.Pending() > 0 || ue.ul.Pending() > 0
}

func (ue *UE) nextHARQ() uint8 {
	id := ue.harqID
	ue.harqID = (ue.harqID + 1) % 16
	return id
}

func (ue *UE) status(now time.Time) UEStatus {
	s := UEStatus{ID: ue.ID, State: ue.state, RNTI: ue.rnti, Profile: ue.Profile}
	if ue.stats != nil {
		r := ue.stats.GenerateReport(now)
		s.Stats = &r
	}
	return s
}
