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

// DLDCICountIndex is the slot of NumPDUsOfEachType that counts DL DCIs across PDCCH PDUs.
const DLDCICountIndex = int(NumDLPDUTypes)

// A DLTTIPDU is one of DLPDCCHPDU, DLPDSCHPDU, DLCSIRSPDU, DLSSBPDU or DLPRSPDU.
type DLTTIPDU interface {
	DLPDUType() DLPDUType
	isDLTTIPDU()
}

type DLTTIRequest struct {
	SFN  uint16
	Slot uint16
	// NumPDUsOfEachType holds one counter per DLPDUType plus the DL DCI counter.
	NumPDUsOfEachType [NumDLPDUTypes + 1]uint16
	NumGroups         uint16
	PDUs              []DLTTIPDU
}

// NewDLTTIRequest builds a request whose declared counters match the given PDUs.
func NewDLTTIRequest(sfn, slot uint16, pdus ...DLTTIPDU) *DLTTIRequest {
	msg := &DLTTIRequest{SFN: sfn, Slot: slot, PDUs: pdus}
	msg.NumPDUsOfEachType = msg.CountPDUs()
	return msg
}

// CountPDUs counts the PDUs actually present, per type, plus the DL DCIs.
func (m *DLTTIRequest) CountPDUs() [NumDLPDUTypes + 1]uint16 {
	var counts [NumDLPDUTypes + 1]uint16
	for _, pdu := range m.PDUs {
		if pdu == nil {
			continue
		}
		t := pdu.DLPDUType()
		if t < NumDLPDUTypes {
			counts[t]++
		}
		if pdcch, ok := pdu.(*DLPDCCHPDU); ok && pdcch != nil {
			counts[DLDCICountIndex] += uint16(len(pdcch.DCIs))
		}
	}
	return counts
}

const (
	CCERegMappingNonInterleaved uint8 = 0
	CCERegMappingInterleaved    uint8 = 1
)

type DLPDCCHPDU struct {
	CoresetBWPSize      uint16
	CoresetBWPStart     uint16
	SubcarrierSpacing   uint8
	CyclicPrefix        uint8
	StartSymbolIndex    uint8
	DurationSymbols     uint8
	FreqDomainResource  [6]uint8
	CCERegMappingType   uint8
	RegBundleSize       uint8
	InterleaverSize     uint8
	CoresetType         uint8
	ShiftIndex          uint16
	PrecoderGranularity uint8
	DCIs                []DLDCI
}

func (*DLPDCCHPDU) DLPDUType() DLPDUType { return DLPDUTypePDCCH }
func (*DLPDCCHPDU) isDLTTIPDU()          {}

type DLDCI struct {
	RNTI             uint16
	NIDPDCCHData     uint16
	NRNTIPDCCHData   uint16
	CCEIndex         uint16
	AggregationLevel uint8
	BetaPDCCH10      uint8
	// PowerControlOffsetSS is nil when the SS profile offset is not signalled.
	PowerControlOffsetSS *int8
	PayloadBits          uint16
	Payload              []byte
}

type DLPDSCHPDU struct {
	RNTI                          uint16
	PDUIndex                      uint16
	BWPSize                       uint16
	BWPStart                      uint16
	SubcarrierSpacing             uint8
	CyclicPrefix                  uint8
	Codewords                     []PDSCHCodeword
	NIDPDSCH                      uint16
	NumLayers                     uint8
	TransmissionScheme            uint8
	RefPoint                      uint8
	DLDMRSSymbPos                 uint16
	DMRSType                      uint8
	DMRSScramblingID              uint16
	NSCID                         uint8
	NumDMRSCDMGrpsNoData          uint8
	DMRSPorts                     uint16
	ResourceAlloc                 uint8
	RBStart                       uint16
	RBSize                        uint16
	VRBToPRBMapping               uint8
	StartSymbolIndex              uint8
	NrOfSymbols                   uint8
	PowerControlOffsetProfileNR   int8
	PowerControlOffsetSSProfileNR uint8
	LDPCBaseGraph                 uint8
	TBSizeLBRMBytes               uint32
	Maintenance                   PDSCHMaintenance
	// PTRS is present when the PDU bitmap signals phase tracking reference signals.
	PTRS *PDSCHPTRS
}

func (*DLPDSCHPDU) DLPDUType() DLPDUType { return DLPDUTypePDSCH }
func (*DLPDSCHPDU) isDLTTIPDU()          {}

type PDSCHCodeword struct {
	TargetCodeRate uint16
	QamModOrder    uint8
	MCSIndex       uint8
	MCSTable       uint8
	RVIndex        uint8
	TBSize         uint32
}

// PDSCH transmission types from the FAPIv3 maintenance parameters.
const (
	PDSCHTransTypeNonInterleavedOther uint8 = iota
	PDSCHTransTypeNonInterleavedCommonSS
	PDSCHTransTypeNonInterleavedCommonType0
	PDSCHTransTypeInterleavedOther
	PDSCHTransTypeInterleavedCommonAny
	PDSCHTransTypeInterleavedCommonType0
)

type PDSCHMaintenance struct {
	TransType         uint8
	CoresetStartPoint uint16
	InitialDLBWPSize  uint16
}

type PDSCHPTRS struct {
	PortIndex   uint8
	TimeDensity uint8
	FreqDensity uint8
	REOffset    uint8
	EPRERatio   uint8
}

type DLCSIRSPDU struct {
	SubcarrierSpacing             uint8
	CyclicPrefix                  uint8
	StartRB                       uint16
	NumRBs                        uint16
	Type                          uint8
	Row                           uint8
	FreqDomain                    uint16
	SymbL0                        uint8
	SymbL1                        uint8
	CDMType                       uint8
	FreqDensity                   uint8
	ScrambID                      uint16
	PowerControlOffsetProfileNR   int8
	PowerControlOffsetSSProfileNR uint8
}

func (*DLCSIRSPDU) DLPDUType() DLPDUType { return DLPDUTypeCSIRS }
func (*DLCSIRSPDU) isDLTTIPDU()          {}

// BetaPSSUseSSSProfile signals that the PSS power follows the SSS profile.
const BetaPSSUseSSSProfile uint8 = 255

type DLSSBPDU struct {
	PhysCellID          uint16
	BetaPSSProfileNR    uint8
	SSBBlockIndex       uint8
	SSBSubcarrierOffset uint8
	SSBOffsetPointA     uint16
	BCHPayloadFlag      uint8
	Case                uint8
	SubcarrierSpacing   uint8
	LMax                uint8
	MIB                 SSBMIB
}

func (*DLSSBPDU) DLPDUType() DLPDUType { return DLPDUTypeSSB }
func (*DLSSBPDU) isDLTTIPDU()          {}

type SSBMIB struct {
	DMRSTypeAPosition    uint8
	PDCCHConfigSIB1      uint8
	CellBarred           uint8
	IntraFreqReselection uint8
}

type DLPRSPDU struct {
	SubcarrierSpacing uint8
	CyclicPrefix      uint8
	NIDPRS            uint16
	CombSize          uint8
	CombOffset        uint8
	NumSymbols        uint8
	FirstSymbol       uint8
	NumRBs            uint16
	StartRB           uint16
	// PowerOffset is nil when no PRS power offset is signalled.
	PowerOffset *int8
}

func (*DLPRSPDU) DLPDUType() DLPDUType { return DLPDUTypePRS }
func (*DLPRSPDU) isDLTTIPDU()          {}
