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

package trafficgen

import "time"

// Packet is one SDU entering the transmit buffer of a UE.
type Packet struct {
	SizeBytes int
	Timestamp time.Time
}

// TrafficGenerator emits at most one packet per call, or nil when nothing is due at now.
type TrafficGenerator interface {
	NextPacket(now time.Time) *Packet
}

// Buffer accumulates the packets of a generator until they are carried by transport blocks.
type Buffer struct {
	gen     TrafficGenerator
	pending int
	total   int64
}

func NewBuffer(gen TrafficGenerator) *Buffer {
	return &Buffer{gen: gen}
}

// Poll queues the packet due at now, if any.
func (b *Buffer) Poll(now time.Time) {
	if pkt := b.gen.NextPacket(now); pkt != nil {
		b.pending += pkt.SizeBytes
	}
}

// Take removes up to maxBytes from the buffer and returns the transport block size.
func (b *Buffer) Take(maxBytes int) int {
	n := min(b.pending, maxBytes)
	b.pending -= n
	b.total += int64(n)
	return n
}

func (b *Buffer) Pending() int { return b.pending }

// Served returns the bytes taken since the buffer was created.
func (b *Buffer) Served() int64 { return b.total }
