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

// Counter slots of ULTTIRequest.NumPDUsOfEachType. PUCCH is split by format family.
const (
	ULCountPRACH = iota
	ULCountPUSCH
	ULCountPUCCHFormat01
	ULCountPUCCHFormat234
	ULCountSRS
	ULCountMsgAPUSCH
	NumULCounters
)

// A ULTTIPDU is one of ULPRACHPDU, ULPUSCHPDU, ULPUCCHPDU, ULSRSPDU or ULMsgAPUSCHPDU.
type ULTTIPDU interface {
	ULPDUType() ULPDUType
	isULTTIPDU()
}

type ULTTIRequest struct {
	SFN               uint16
	Slot              uint16
	NumPDUsOfEachType [NumULCounters]uint16
	NumGroups         uint8
	PDUs              []ULTTIPDU
}

// NewULTTIRequest builds a request whose declared counters match the given PDUs.
func NewULTTIRequest(sfn, slot uint16, pdus ...ULTTIPDU) *ULTTIRequest {
	msg := &ULTTIRequest{SFN: sfn, Slot: slot, PDUs: pdus}
	msg.NumPDUsOfEachType = msg.CountPDUs()
	return msg
}

func (m *ULTTIRequest) CountPDUs() [NumULCounters]uint16 {
	var counts [NumULCounters]uint16
	for _, pdu := range m.PDUs {
		switch p := pdu.(type) {
		case *ULPRACHPDU:
			counts[ULCountPRACH]++
		case *ULPUSCHPDU:
			counts[ULCountPUSCH]++
		case *ULPUCCHPDU:
			if p == nil {
				continue
			}
			if p.FormatType <= PUCCHFormat1 {
				counts[ULCountPUCCHFormat01]++
			} else {
				counts[ULCountPUCCHFormat234]++
			}
		case *ULSRSPDU:
			counts[ULCountSRS]++
		case *ULMsgAPUSCHPDU:
			counts[ULCountMsgAPUSCH]++
		}
	}
	return counts
}

type ULPRACHPDU struct {
	PhysCellID       uint16
	NumPRACHOcas     uint8
	PRACHFormat      uint8
	IndexFdRA        uint8
	PRACHStartSymbol uint8
	NumCS            uint16
	IsMsgAPRACH      uint8
	Handle           uint32
}

func (*ULPRACHPDU) ULPDUType() ULPDUType { return ULPDUTypePRACH }
func (*ULPRACHPDU) isULTTIPDU()          {}

const (
	TransformPrecodingEnabled  uint8 = 0
	TransformPrecodingDisabled uint8 = 1
)

// QamModOrderPi2BPSK is only legal with transform precoding enabled.
const QamModOrderPi2BPSK uint8 = 1

type ULPUSCHPDU struct {
	RNTI                      uint16
	Handle                    uint32
	BWPSize                   uint16
	BWPStart                  uint16
	SubcarrierSpacing         uint8
	CyclicPrefix              uint8
	TargetCodeRate            uint16
	QamModOrder               uint8
	MCSIndex                  uint8
	MCSTable                  uint8
	TransformPrecoding        uint8
	NIDPUSCH                  uint16
	NumLayers                 uint8
	ULDMRSSymbPos             uint16
	DMRSType                  uint8
	DMRSScramblingID          uint16
	PUSCHDMRSIdentity         uint16
	NSCID                     uint8
	NumDMRSCDMGrpsNoData      uint8
	DMRSPorts                 uint16
	ResourceAlloc             uint8
	RBStart                   uint16
	RBSize                    uint16
	VRBToPRBMapping           uint8
	IntraSlotFrequencyHopping uint8
	TxDirectCurrentLocation   uint16
	ULFrequencyShift7p5kHz    uint8
	StartSymbolIndex          uint8
	NrOfSymbols               uint8
	// Optional sub-records, selected by the PDU bitmap on the wire.
	Data *PUSCHData
	UCI  *PUSCHUCI
	PTRS *PUSCHPTRS
}

func (*ULPUSCHPDU) ULPDUType() ULPDUType { return ULPDUTypePUSCH }
func (*ULPUSCHPDU) isULTTIPDU()          {}

type PUSCHData struct {
	RVIndex       uint8
	HARQProcessID uint8
	NewData       uint8
	TBSize        uint32
	NumCB         uint16
}

type PUSCHUCI struct {
	HARQAckBitLength  uint16
	CSIPart1BitLength uint16
	FlagCSIPart2      uint16
	AlphaScaling      uint8
	BetaOffsetHARQAck uint8
	BetaOffsetCSI1    uint8
	BetaOffsetCSI2    uint8
}

type PUSCHPTRS struct {
	PortIndex   uint8
	TimeDensity uint8
	FreqDensity uint8
	REOffset    uint8
}

const (
	PUCCHFormat0 uint8 = iota
	PUCCHFormat1
	PUCCHFormat2
	PUCCHFormat3
	PUCCHFormat4
)

type ULPUCCHPDU struct {
	RNTI                    uint16
	Handle                  uint32
	BWPSize                 uint16
	BWPStart                uint16
	SubcarrierSpacing       uint8
	CyclicPrefix            uint8
	FormatType              uint8
	MultiSlotTxIndicator    uint8
	Pi2BPSK                 uint8
	PRBStart                uint16
	PRBSize                 uint16
	StartSymbolIndex        uint8
	NrOfSymbols             uint8
	FreqHopFlag             uint8
	SecondHopPRB            uint16
	GroupHopFlag            uint8
	NIDPUCCHHopping         uint16
	InitialCyclicShift      uint16
	NIDPUCCHScrambling      uint16
	TimeDomainOCCIndex      uint8
	PreDFTOCCIdx            uint8
	PreDFTOCCLen            uint8
	AddDMRSFlag             uint8
	NID0PUCCHDMRSScrambling uint16
	M0PUCCHDMRSCyclicShift  uint8
	SRBitLen                uint8
	BitLenHARQ              uint16
	CSIPart1BitLength       uint16
}

func (*ULPUCCHPDU) ULPDUType() ULPDUType { return ULPDUTypePUCCH }
func (*ULPUCCHPDU) isULTTIPDU()          {}

// ULSRSPDU carries actual values (ports, symbols, comb size, periodicity), not their wire codes.
type ULSRSPDU struct {
	RNTI                   uint16
	Handle                 uint32
	BWPSize                uint16
	BWPStart               uint16
	SubcarrierSpacing      uint8
	CyclicPrefix           uint8
	NumAntPorts            uint8
	NumSymbols             uint8
	NumRepetitions         uint8
	TimeStartPosition      uint8
	ConfigIndex            uint8
	SequenceID             uint16
	BandwidthIndex         uint8
	CombSize               uint8
	CombOffset             uint8
	CyclicShift            uint8
	FrequencyPosition      uint8
	FrequencyShift         uint16
	FrequencyHopping       uint8
	GroupOrSequenceHopping uint8
	ResourceType           uint8
	TSRS                   uint16
	TOffset                uint16
}

func (*ULSRSPDU) ULPDUType() ULPDUType { return ULPDUTypeSRS }
func (*ULSRSPDU) isULTTIPDU()          {}

type ULMsgAPUSCHPDU struct {
	RARNTI             uint16
	Handle             uint32
	BWPSize            uint16
	BWPStart           uint16
	SubcarrierSpacing  uint8
	CyclicPrefix       uint8
	MCSIndex           uint8
	TransformPrecoding uint8
	NIDMsgAPUSCH       uint16
	DMRSPorts          uint8
	PreambleIndex      uint8
	RBStart            uint16
	RBSize             uint16
	StartSymbolIndex   uint8
	NrOfSymbols        uint8
	TBSize             uint32
}

func (*ULMsgAPUSCHPDU) ULPDUType() ULPDUType { return ULPDUTypeMsgAPUSCH }
func (*ULMsgAPUSCHPDU) isULTTIPDU()          {}

type ULDCIRequest struct {
	SFN  uint16
	Slot uint16
	// NumDLTypes holds the PDCCH PDU count and the DCI count.
	NumDLTypes [2]uint16
	PDUs       []*DLPDCCHPDU
}

func NewULDCIRequest(sfn, slot uint16, pdus ...*DLPDCCHPDU) *ULDCIRequest {
	msg := &ULDCIRequest{SFN: sfn, Slot: slot, PDUs: pdus}
	msg.NumDLTypes = msg.CountPDUs()
	return msg
}

func (m *ULDCIRequest) CountPDUs() [2]uint16 {
	var counts [2]uint16
	for _, pdu := range m.PDUs {
		if pdu == nil {
			continue
		}
		counts[0]++
		counts[1] += uint16(len(pdu.DCIs))
	}
	return counts
}

// TX_DATA TLV tags.
const (
	TxDataTagPayload uint16 = iota
	TxDataTagPointer
	TxDataTagOffset
)

type TxDataRequest struct {
	SFN  uint16
	Slot uint16
	PDUs []TxDataPDU
}

type TxDataPDU struct {
	PDUIndex  uint16
	CWIndex   uint8
	PDULength uint32
	TLVs      []TxDataTLV
}

type TxDataTLV struct {
	Tag   uint16
	Value []byte
}

// NewTxDataPDU wraps a transport block in a single payload TLV.
func NewTxDataPDU(pduIndex uint16, cwIndex uint8, payload []byte) TxDataPDU {
	return TxDataPDU{
		PDUIndex:  pduIndex,
		CWIndex:   cwIndex,
		PDULength: uint32(len(payload)),
		TLVs:      []TxDataTLV{{Tag: TxDataTagPayload, Value: payload}},
	}
}
