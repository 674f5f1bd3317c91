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
	"math"
	"time"
)

// Sentinels used by L1 when an optional measurement is not reported.
const (
	ULSINRMetricUnset          int16  = math.MinInt16
	TimingAdvanceOffsetUnset   uint16 = math.MaxUint16
	TimingAdvanceOffsetNsUnset int16  = math.MinInt16
	RSSIUnset                  uint16 = math.MaxUint16
	RSRPUnset                  uint16 = math.MaxUint16
	RAPIDUnset                 uint8  = 255
	RACHRSSIUnset              uint32 = math.MaxUint32
	RACHSNRUnset               uint8  = 255
	PreambleTAOffsetNsUnset    uint32 = math.MaxUint32
	PreamblePowerUnset         uint32 = math.MaxUint32
	UCIConfidenceUnset         uint8  = 255
)

type SlotIndication struct {
	SFN       uint16
	Slot      uint16
	TimeStamp time.Time
}

type ErrorIndication struct {
	SFN       uint16
	Slot      uint16
	MessageID MessageType
	ErrorCode ErrorCode
	// ExpectedSFN and ExpectedSlot are only meaningful for ErrorCodeOutOfSync.
	ExpectedSFN  uint16
	ExpectedSlot uint16
}

// ULMeasurements groups the per-UE link measurements shared by CRC and UCI PDUs.
type ULMeasurements struct {
	ULSINRMetric          int16
	TimingAdvanceOffset   uint16
	TimingAdvanceOffsetNs int16
	RSSI                  uint16
	RSRP                  uint16
}

// UnsetULMeasurements reports no measurement at all.
func UnsetULMeasurements() ULMeasurements {
	return ULMeasurements{
		ULSINRMetric:          ULSINRMetricUnset,
		TimingAdvanceOffset:   TimingAdvanceOffsetUnset,
		TimingAdvanceOffsetNs: TimingAdvanceOffsetNsUnset,
		RSSI:                  RSSIUnset,
		RSRP:                  RSRPUnset,
	}
}

type CRCIndication struct {
	SFN  uint16
	Slot uint16
	PDUs []CRCPDU
}

type CRCPDU struct {
	Handle        uint32
	RNTI          uint16
	RAPID         uint8
	HARQID        uint8
	TBCRCStatusOK uint8
	NumCB         uint16
	CBCRCStatus   []uint8
	ULMeasurements
}

type RACHIndication struct {
	SFN  uint16
	Slot uint16
	PDUs []RACHPDU
}

type RACHPDU struct {
	Handle      uint32
	SymbolIndex uint8
	SlotIndex   uint8
	RAIndex     uint8
	AvgRSSI     uint32
	RSRP        uint16
	AvgSNR      uint8
	Preambles   []RACHPreamble
}

type RACHPreamble struct {
	PreambleIndex         uint8
	TimingAdvanceOffset   uint16
	TimingAdvanceOffsetNs uint32
	PreamblePower         uint32
	PreambleSNR           uint8
}

type RxDataIndication struct {
	SFN           uint16
	Slot          uint16
	ControlLength uint16
	PDUs          []RxDataPDU
}

type RxDataPDU struct {
	Handle    uint32
	RNTI      uint16
	RAPID     uint8
	HARQID    uint8
	PDULength uint32
	Data      []byte
}

// A UCIPDU is one of UCIPUSCHPDU, UCIPUCCHFormat01PDU or UCIPUCCHFormat234PDU.
type UCIPDU interface {
	UCIPDUType() UCIPDUType
	isUCIPDU()
}

type UCIIndication struct {
	SFN  uint16
	Slot uint16
	PDUs []UCIPDU
}

// UCIPayload is a decoded UCI part (HARQ, CSI part 1 or CSI part 2) for formats 2/3/4 and PUSCH.
type UCIPayload struct {
	DetectionStatus   uint8
	ExpectedBitLength uint16
	Payload           []byte
}

type UCIPUSCHPDU struct {
	Handle uint32
	RNTI   uint16
	ULMeasurements
	HARQ     *UCIPayload
	CSIPart1 *UCIPayload
	CSIPart2 *UCIPayload
}

func (*UCIPUSCHPDU) UCIPDUType() UCIPDUType { return UCIPDUTypePUSCH }
func (*UCIPUSCHPDU) isUCIPDU()              {}

type UCISRFormat01 struct {
	Indication uint8
	Confidence uint8
}

type UCIHARQFormat01 struct {
	Confidence uint8
	Values     []uint8
}

type UCIPUCCHFormat01PDU struct {
	Handle uint32
	RNTI   uint16
	ULMeasurements
	PUCCHFormat uint8
	SR          *UCISRFormat01
	HARQ        *UCIHARQFormat01
}

func (*UCIPUCCHFormat01PDU) UCIPDUType() UCIPDUType { return UCIPDUTypePUCCHFormat01 }
func (*UCIPUCCHFormat01PDU) isUCIPDU()              {}

type UCISRFormat234 struct {
	BitLength uint16
	Payload   []byte
}

type UCIPUCCHFormat234PDU struct {
	Handle uint32
	RNTI   uint16
	ULMeasurements
	PUCCHFormat uint8
	SR          *UCISRFormat234
	HARQ        *UCIPayload
	CSIPart1    *UCIPayload
	CSIPart2    *UCIPayload
}

func (*UCIPUCCHFormat234PDU) UCIPDUType() UCIPDUType { return UCIPDUTypePUCCHFormat234 }
func (*UCIPUCCHFormat234PDU) isUCIPDU()              {}

type SRSIndication struct {
	SFN           uint16
	Slot          uint16
	ControlLength uint16
	PDUs          []SRSIndicationPDU
}

type SRSIndicationPDU struct {
	Handle                uint32
	RNTI                  uint16
	TimingAdvanceOffset   uint16
	TimingAdvanceOffsetNs int16
	SRSUsage              uint8
	ReportType            uint8
}
