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
	"fmt"
	"time"
)

// UpStats accumulates the transport blocks scheduled for one UE.
type UpStats struct {
	RNTI      uint16    `json:"rnti"`
	NumDLTBs  int64     `json:"numDlTbs"`
	NumULTBs  int64     `json:"numUlTbs"`
	DLBytes   int64     `json:"dlBytes"`
	ULBytes   int64     `json:"ulBytes"`
	Since     time.Time `json:"since"`
	LastDLTTI time.Time `json:"lastDlTti"`
	LastULTTI time.Time `json:"lastUlTti"`
}

type UpStatsReport struct {
	UpStats
	DLBitrate float64 `json:"dlBitrate"`
	ULBitrate float64 `json:"ulBitrate"`
}

func NewUpStats(rnti uint16, since time.Time) *UpStats {
	return &UpStats{RNTI: rnti, Since: since}
}

func (s *UpStats) NewTransportBlock(ul bool, size int64, ts time.Time) {
	if ul {
		s.NumULTBs++
		s.ULBytes += size
		s.LastULTTI = ts
		return
	}
	s.NumDLTBs++
	s.DLBytes += size
	s.LastDLTTI = ts
}

// GenerateReport averages the scheduled bitrates between Since and now.
func (s *UpStats) GenerateReport(now time.Time) UpStatsReport {
	r := UpStatsReport{UpStats: *s}
	if elapsed := now.Sub(s.Since).Seconds(); elapsed > 0 {
		r.DLBitrate = float64(s.DLBytes*8) / elapsed
		r.ULBitrate = float64(s.ULBytes*8) / elapsed
	}
	return r
}

func (r UpStatsReport) Dumps() string {
	return fmt.Sprintf("RNTI:       %#04x,\nDL TBs:     %d,\nDL bytes:   %d,\nDL bitrate: %.2f bps,\nUL TBs:     %d,\nUL bytes:   %d,\nUL bitrate: %.2f bps,\n",
		r.RNTI, r.NumDLTBs, r.DLBytes, r.DLBitrate, r.NumULTBs, r.ULBytes, r.ULBitrate)
}
