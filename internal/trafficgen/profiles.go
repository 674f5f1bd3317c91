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

import (
	"fmt"
	"slices"
	"time"
)

const (
	ProfileWeb   = "web"
	ProfileVideo = "video"
	ProfileIoT   = "iot"
	ProfileVoIP  = "sip"
)

// Profiles lists the names accepted by NewProfile.
func Profiles() []string {
	return []string{ProfileWeb, ProfileVideo, ProfileIoT, ProfileVoIP}
}

func ValidProfile(name string) bool {
	return slices.Contains(Profiles(), name)
}

func NewProfile(name string) (TrafficGenerator, error) {
	switch name {
	case ProfileWeb:
		return NewWeb(2e6, 1200, 6*time.Second, 10*time.Second), nil
	case ProfileVideo:
		return NewVideo(8e6, 1300), nil
	case ProfileIoT:
		return NewIoT(1000, 15*time.Second), nil
	case ProfileVoIP:
		return NewVoIP(600, 50), nil
	}
	return nil, fmt.Errorf("unknown traffic profile %q", name)
}

// Periodic emits fixed size packets at a fixed interval.
type Periodic struct {
	PacketSize int
	Interval   time.Duration

	last time.Time
}

func NewPeriodic(pktSize int, interval time.Duration) *Periodic {
	return &Periodic{PacketSize: pktSize, Interval: interval}
}

// NewVideo streams at a steady bitrate in bits per second.
func NewVideo(bitrate float64, pktSize int) *Periodic {
	pktPerSec := bitrate / float64(pktSize*8)
	return NewPeriodic(pktSize, time.Duration(1e9/pktPerSec))
}

// NewVoIP sends small voice frames at pktRate packets per second.
func NewVoIP(pktSize int, pktRate float64) *Periodic {
	return NewPeriodic(pktSize, time.Duration(1e9/pktRate))
}

// NewIoT sends one status report per heartbeat.
func NewIoT(pktSize int, heartbeat time.Duration) *Periodic {
	return NewPeriodic(pktSize, heartbeat)
}

func (p *Periodic) NextPacket(now time.Time) *Packet {
	if now.Sub(p.last) < p.Interval {
		return nil
	}
	p.last = now
	return &Packet{SizeBytes: p.PacketSize, Timestamp: now}
}

// Bursty alternates periods of activity at AvgBitrate with silent periods, like web browsing.
type Bursty struct {
	AvgBitrate    float64
	PacketSize    int
	BurstDuration time.Duration
	IdleDuration  time.Duration

	last     time.Time
	phaseEnd time.Time
	inBurst  bool
}

func NewWeb(bitrate float64, pktSize int, burst, idle time.Duration) *Bursty {
	return &Bursty{
		AvgBitrate:    bitrate,
		PacketSize:    pktSize,
		BurstDuration: burst,
		IdleDuration:  idle,
		inBurst:       true,
	}
}

func (b *Bursty) NextPacket(now time.Time) *Packet {
	if now.After(b.phaseEnd) {
		b.inBurst = !b.inBurst
		if b.inBurst {
			b.phaseEnd = now.Add(b.BurstDuration)
		} else {
			b.phaseEnd = now.Add(b.IdleDuration)
		}
	}
	if !b.inBurst {
		return nil
	}
	interval := time.Duration(float64(b.PacketSize*8) / b.AvgBitrate * 1e9)
	if now.Sub(b.last) < interval {
		return nil
	}
	b.last = now
	return &Packet{SizeBytes: b.PacketSize, Timestamp: now}
}
