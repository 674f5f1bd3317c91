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

import (
	"errors"
	"fmt"
	"time"
)

const (
	// NofSFNs is the number of system frames before the SFN wraps around.
	NofSFNs = 1024
	// MaxNumerology is the highest subcarrier spacing numerology (240 kHz).
	MaxNumerology = 4
	// MaxSlotIndex is the largest slot index representable in a FAPI header.
	MaxSlotIndex = 159
	// MaxSFN is the largest system frame number.
	MaxSFN = NofSFNs - 1
)

var ErrInvalidNumerology = errors.New("slot point error: numerology out of range")
var ErrInvalidSlotPoint = errors.New("slot point error: sfn or slot out of range")

// NofSlotsPerFrame returns the number of slots in a 10 ms radio frame.
func NofSlotsPerFrame(numerology uint8) uint32 {
	return 10 << numerology
}

// A SlotPoint addresses one slot within the SFN wrap-around period of a given numerology.
// The zero value is an invalid slot point.
type SlotPoint struct {
	numerology uint8
	count      uint32
	valid      bool
}

// NewSlotPoint builds a slot point from the (sfn, slot) tuple carried in FAPI headers.
func NewSlotPoint(numerology uint8, sfn, slot uint32) (SlotPoint, error) {
	if numerology > MaxNumerology {
		return SlotPoint{}, fmt.Errorf("%w: %d", ErrInvalidNumerology, numerology)
	}
	spf := NofSlotsPerFrame(numerology)
	if sfn > MaxSFN || slot >= spf {
		return SlotPoint{}, fmt.Errorf("%w: sfn=%d slot=%d numerology=%d", ErrInvalidSlotPoint, sfn, slot, numerology)
	}
	return SlotPoint{numerology: numerology, count: sfn*spf + slot, valid: true}, nil
}

func (s SlotPoint) Valid() bool       { return s.valid }
func (s SlotPoint) Numerology() uint8 { return s.numerology }

// Count returns the slot index within the whole SFN period.
func (s SlotPoint) Count() uint32 { return s.count }

func (s SlotPoint) SFN() uint16 {
	return uint16(s.count / NofSlotsPerFrame(s.numerology))
}

func (s SlotPoint) Slot() uint16 {
	return uint16(s.count % NofSlotsPerFrame(s.numerology))
}

func (s SlotPoint) period() int64 {
	return int64(NofSFNs) * int64(NofSlotsPerFrame(s.numerology))
}

// Add returns the slot point n slots away, wrapping at the SFN period. n may be negative.
func (s SlotPoint) Add(n int) SlotPoint {
	p := s.period()
	c := (int64(s.count) + int64(n)) % p
	if c < 0 {
		c += p
	}
	s.count = uint32(c)
	return s
}

// Sub returns the signed distance in slots from o to s, taken in the half period
// that makes the distance smallest.
func (s SlotPoint) Sub(o SlotPoint) int {
	p := s.period()
	d := (int64(s.count) - int64(o.count)) % p
	if d < 0 {
		d += p
	}
	if d >= p/2 {
		d -= p
	}
	return int(d)
}

func (s SlotPoint) Equal(o SlotPoint) bool {
	return s.valid == o.valid && s.numerology == o.numerology && s.count == o.count
}

func (s SlotPoint) Before(o SlotPoint) bool { return s.Sub(o) < 0 }
func (s SlotPoint) After(o SlotPoint) bool  { return s.Sub(o) > 0 }

// Duration is the physical length of one slot for the slot point numerology.
func (s SlotPoint) Duration() time.Duration {
	return SlotDuration(s.numerology)
}

func SlotDuration(numerology uint8) time.Duration {
	return time.Millisecond >> numerology
}

func (s SlotPoint) String() string {
	if !s.valid {
		return "invalid"
	}
	return fmt.Sprintf("%d.%d", s.SFN(), s.Slot())
}
