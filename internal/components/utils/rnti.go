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

package utils

import (
	"errors"
	"fmt"
	"sync"
)

// C-RNTI values handed out to emulated UEs (TS 38.321 table 7.1-1).
const (
	MinCRNTI uint16 = 0x0001
	MaxCRNTI uint16 = 0xfff2
)

var ErrNoRNTIAvailable = errors.New("no available C-RNTI")
var ErrRNTINotAllocated = errors.New("UE does not have an allocated C-RNTI")

// RNTIAllocator assigns unique C-RNTIs to UEs of one cell.
type RNTIAllocator struct {
	mu        sync.Mutex
	available []uint16
	allocated map[string]uint16 // ueID -> RNTI
	rntiToUE  map[uint16]string // RNTI -> ueID
}

// NewRNTIAllocator manages the C-RNTIs in [first, last].
func NewRNTIAllocator(first, last uint16) (*RNTIAllocator, error) {
	if first < MinCRNTI || last > MaxCRNTI || first > last {
		return nil, fmt.Errorf("invalid C-RNTI range [%#04x, %#04x]", first, last)
	}
	rntis := make([]uint16, 0, int(last-first)+1)
	for r := int(first); r <= int(last); r++ {
		rntis = append(rntis, uint16(r))
	}
	return &RNTIAllocator{
		available: rntis,
		allocated: make(map[string]uint16),
		rntiToUE:  make(map[uint16]string),
	}, nil
}

func (a *RNTIAllocator) Allocate(ueID string) (uint16, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if rnti, ok := a.allocated[ueID]; ok {
		return rnti, nil
	}
	if len(a.available) == 0 {
		return 0, ErrNoRNTIAvailable
	}

	rnti := a.available[0]
	a.available = a.available[1:]
	a.allocated[ueID] = rnti
	a.rntiToUE[rnti] = ueID
	return rnti, nil
}

// Release returns the RNTI of ueID to the back of the pool, so it is reused as late as possible.
func (a *RNTIAllocator) Release(ueID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rnti, ok := a.allocated[ueID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRNTINotAllocated, ueID)
	}
	delete(a.allocated, ueID)
	delete(a.rntiToUE, rnti)
	a.available = append(a.available, rnti)
	return nil
}

func (a *RNTIAllocator) Get(ueID string) (uint16, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rnti, ok := a.allocated[ueID]
	return rnti, ok
}

// Owner returns the UE holding rnti.
func (a *RNTIAllocator) Owner(rnti uint16) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ueID, ok := a.rntiToUE[rnti]
	return ueID, ok
}

func (a *RNTIAllocator) Available() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.available)
}
