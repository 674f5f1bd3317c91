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
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/components/utils"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/fapi"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/monitoring"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/trafficgen"
)

const (
	defaultMaxUEsPerSlot   = 4
	defaultInactivityTimer = 10 * time.Second
	maxTBBytes             = 4096
	// srPeriodSlots and srsPeriodSlots spread the periodic UL resources of the UEs over time.
	srPeriodSlots  = 10
	srsPeriodSlots = 40
)

type Config struct {
	CellID         string
	CellConfig     models.CellConfig
	NumOfUE        int
	TrafficProfile string
	// MaxUEsPerSlot bounds the UEs receiving a grant in one slot. Zero means 4.
	MaxUEsPerSlot   int
	InactivityTimer time.Duration
	// Seed makes the UE population deterministic when non-zero.
	Seed   uint64
	Logger *slog.Logger
}

type Stats struct {
	Slots           uint64            `json:"slots"`
	DLTTI           uint64            `json:"dlTti"`
	ULTTI           uint64            `json:"ulTti"`
	ULDCI           uint64            `json:"ulDci"`
	TxData          uint64            `json:"txData"`
	DLBytes         uint64            `json:"dlBytes"`
	ULBytes         uint64            `json:"ulBytes"`
	CRCOK           uint64            `json:"crcOk"`
	CRCFailed       uint64            `json:"crcFailed"`
	RxBytes         uint64            `json:"rxBytes"`
	UCI             uint64            `json:"uci"`
	SRS             uint64            `json:"srs"`
	RACHPreambles   uint64            `json:"rachPreambles"`
	Errors          map[string]uint64 `json:"errors,omitempty"`
	ParamResponses  uint64            `json:"paramResponses"`
	ConfigResponses uint64            `json:"configResponses"`
	StopIndications uint64            `json:"stopIndications"`
}

type Status struct {
	Stats Stats      `json:"stats"`
	UEs   []UEStatus `json:"ues"`
}

// Emulator plays the L2 of one cell: it moves a population of UEs through their radio life
// cycle and, for every SLOT.indication, sends the requests a scheduler would build for it.
type Emulator struct {
	cellID          string
	numerology      uint8
	logger          *slog.Logger
	factory         pduFactory
	cellCfg         models.CellConfig
	maxUEsPerSlot   int
	inactivityTimer time.Duration
	// prachSlot is the slot of each frame carrying the PRACH occasion, -1 when there is none.
	prachSlot int

	mu      sync.Mutex
	rng     *rand.Rand
	rntis   *utils.RNTIAllocator
	ues     []*UE
	rr      int
	handle  uint32
	stats   Stats
	lastTS  time.Time
	gateway fapi.SlotMessageGateway
}

func New(cfg Config) (*Emulator, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !trafficgen.ValidProfile(cfg.TrafficProfile) {
		return nil, fmt.Errorf("cell %s: unknown traffic profile %q", cfg.CellID, cfg.TrafficProfile)
	}
	rntis, err := utils.NewRNTIAllocator(utils.MinCRNTI, utils.MaxCRNTI)
	if err != nil {
		return nil, err
	}
	maxUEs := cfg.MaxUEsPerSlot
	if maxUEs <= 0 {
		maxUEs = defaultMaxUEsPerSlot
	}
	inactivity := cfg.InactivityTimer
	if inactivity <= 0 {
		inactivity = defaultInactivityTimer
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	e := &Emulator{
		cellID:          cfg.CellID,
		numerology:      cfg.CellConfig.Numerology(),
		logger:          logger.With("cell", cfg.CellID, "component", "l2-emulator"),
		factory:         newPDUFactory(&cfg.CellConfig, maxUEs),
		cellCfg:         cfg.CellConfig,
		maxUEsPerSlot:   maxUEs,
		inactivityTimer: inactivity,
		rng:             rand.New(rand.NewPCG(seed, seed>>1|1)),
		rntis:           rntis,
		gateway:         fapi.UnattachedMessageGateway,
		stats:           Stats{Errors: make(map[string]uint64)},
	}
	e.prachSlot = -1
	for s := 0; s < int(models.NofSlotsPerFrame(e.numerology)); s++ {
		if _, ul := e.directions(s); ul {
			e.prachSlot = s
			break
		}
	}

	for i := range cfg.NumOfUE {
		ue, err := newUE(fmt.Sprintf("%s-ue-%04d", cfg.CellID, i), cfg.TrafficProfile)
		if err != nil {
			return nil, err
		}
		e.ues = append(e.ues, ue)
	}
	monitoring.UEsTotal.WithLabelValues(e.cellID, models.UEDeregistered.String()).Add(float64(len(e.ues)))
	return e, nil
}

func (e *Emulator) SetSlotMessageGateway(g fapi.SlotMessageGateway) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gateway = g
}

func (e *Emulator) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyStats()
}

func (e *Emulator) copyStats() Stats {
	s := e.stats
	s.Errors = make(map[string]uint64, len(e.stats.Errors))
	for k, v := range e.stats.Errors {
		s.Errors[k] = v
	}
	return s
}

func (e *Emulator) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Status{Stats: e.copyStats()}
	for _, ue := range e.ues {
		st.UEs = append(st.UEs, ue.status(e.lastTS))
	}
	return st
}

// CountByState returns the number of UEs in every state.
func (e *Emulator) CountByState() map[models.UEState]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[models.UEState]int)
	for _, ue := range e.ues {
		out[ue.state]++
	}
	return out
}

// directions reports whether the slot with index slotIdx in its frame carries DL and UL.
func (e *Emulator) directions(slotIdx int) (dl, ul bool) {
	t := e.cellCfg.TDDTable
	if e.cellCfg.Cell.FrameDuplexType != models.FrameDuplexTDD || t == nil || len(t.SlotConfig) == 0 {
		return true, true
	}
	row := t.SlotConfig[slotIdx%len(t.SlotConfig)]
	if len(row) == 0 {
		return false, false
	}
	return row[0] == models.TDDSymbolDL, row[len(row)-1] == models.TDDSymbolUL
}

// transition moves ue to state to through procedure proc.
func (e *Emulator) transition(ue *UE, to models.UEState, proc models.UEProcedure, now time.Time) {
	from := ue.state
	switch proc {
	case models.RandomAccess:
		rnti, err := e.rntis.Allocate(ue.ID)
		if err != nil {
			e.logger.Warn("random access rejected", "ue", ue.ID, "error", err)
			return
		}
		ue.rnti = rnti
	case models.BearerSetup:
		ue.stats = models.NewUpStats(ue.rnti, now)
		ue.lastActivity = now
	case models.Paging, models.ServiceRequest:
		ue.lastActivity = now
	case models.HandoverSuccessful:
		_ = e.rntis.Release(ue.ID)
		rnti, err := e.rntis.Allocate(ue.ID)
		if err != nil {
			e.logger.Warn("handover target has no C-RNTI left", "ue", ue.ID, "error", err)
			ue.rnti, ue.stats, to = 0, nil, models.UEDeregistered
			break
		}
		ue.rnti = rnti
		if ue.stats != nil {
			ue.stats.RNTI = rnti
		}
	case models.RadioLinkFailure, models.HandoverFailure:
		if err := e.rntis.Release(ue.ID); err != nil {
			e.logger.Warn("release failed", "ue", ue.ID, "error", err)
		}
		ue.rnti, ue.stats = 0, nil
	}
	if from == to {
		return
	}
	ue.state = to
	monitoring.UEsTotal.WithLabelValues(e.cellID, from.String()).Dec()
	monitoring.UEsTotal.WithLabelValues(e.cellID, to.String()).Inc()
	e.logger.Debug("ue state changed", "ue", ue.ID, "rnti", ue.rnti, "from", from, "to", to, "procedure", proc)
}

// reset detaches every UE, as after a cell restart.
func (e *Emulator) reset() {
	for _, ue := range e.ues {
		if ue.state.HasRNTI() {
			e.transition(ue, models.UEDeregistered, models.RadioLinkFailure, e.lastTS)
		}
	}
}
