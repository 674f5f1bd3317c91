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
	"math/rand/v2"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// transitions is evaluated once per radio frame for every UE.
var transitions = map[models.UEState][]models.Transition{
	models.UEDeregistered: {
		{To: models.UERegistered, Probability: 0.90, Procedure: models.RandomAccess}, // msg1..msg4 completed
		{To: models.UEDeregistered, Probability: 0.10, Procedure: models.NoProcedure},
	},
	models.UERegistered: {
		{To: models.UEAttached, Probability: 0.99, Procedure: models.RRCSetup},
		{To: models.UERegistered, Probability: 0.005, Procedure: models.NoProcedure},
		{To: models.UEDeregistered, Probability: 0.005, Procedure: models.RadioLinkFailure},
	},
	models.UEAttached: {
		{To: models.UEConnected, Probability: 0.90, Procedure: models.BearerSetup},
		{To: models.UEAttached, Probability: 0.05, Procedure: models.NoProcedure},
		{To: models.UEDeregistered, Probability: 0.05, Procedure: models.RadioLinkFailure},
	},
	// Leaving idle for traffic is a service request driven by the UE buffers, not by the chain.
	models.UEIdle: {
		{To: models.UEIdle, Probability: 0.94, Procedure: models.NoProcedure},
		{To: models.UEConnected, Probability: 0.05, Procedure: models.Paging},
		{To: models.UEHandover, Probability: 0.007, Procedure: models.HandoverInitiated},
		{To: models.UEDeregistered, Probability: 0.003, Procedure: models.RadioLinkFailure},
	},
	models.UEConnected: {
		{To: models.UEConnected, Probability: 0.997, Procedure: models.NoProcedure},
		{To: models.UEHandover, Probability: 0.002, Procedure: models.HandoverInitiated},
		{To: models.UEDeregistered, Probability: 0.001, Procedure: models.RadioLinkFailure},
	},
	models.UEHandover: {
		{To: models.UEConnected, Probability: 0.99, Procedure: models.HandoverSuccessful},
		{To: models.UEDeregistered, Probability: 0.01, Procedure: models.HandoverFailure},
	},
}

// NextState draws the successor of current.
func NextState(rng *rand.Rand, current models.UEState) (models.UEState, models.UEProcedure) {
	rnd := rng.Float64()
	cumulative := 0.0
	for _, t := range transitions[current] {
		cumulative += t.Probability
		if rnd < cumulative {
			return t.To, t.Procedure
		}
	}
	return current, models.NoProcedure
}
