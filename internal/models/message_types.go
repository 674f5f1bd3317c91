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
)

// MessageType is the FAPI message_type_id. Values are fixed by SCF-222.
type MessageType uint8

const (
	ParamRequestType     MessageType = 0x00
	ParamResponseType    MessageType = 0x01
	ConfigRequestType    MessageType = 0x02
	ConfigResponseType   MessageType = 0x03
	StartRequestType     MessageType = 0x04
	StopRequestType      MessageType = 0x05
	StopIndicationType   MessageType = 0x06
	ErrorIndicationType  MessageType = 0x07
	DLTTIRequestType     MessageType = 0x80
	ULTTIRequestType     MessageType = 0x81
	SlotIndicationType   MessageType = 0x82
	ULDCIRequestType     MessageType = 0x83
	TxDataRequestType    MessageType = 0x84
	RxDataIndicationType MessageType = 0x85
	CRCIndicationType    MessageType = 0x86
	UCIIndicationType    MessageType = 0x87
	SRSIndicationType    MessageType = 0x88
	RACHIndicationType   MessageType = 0x89
	DLTTIResponseType    MessageType = 0x8a
)

var messageTypeNames = map[MessageType]string{
	ParamRequestType:     "PARAM.request",
	ParamResponseType:    "PARAM.response",
	ConfigRequestType:    "CONFIG.request",
	ConfigResponseType:   "CONFIG.response",
	StartRequestType:     "START.request",
	StopRequestType:      "STOP.request",
	StopIndicationType:   "STOP.indication",
	ErrorIndicationType:  "ERROR.indication",
	DLTTIRequestType:     "DL_TTI.request",
	ULTTIRequestType:     "UL_TTI.request",
	SlotIndicationType:   "SLOT.indication",
	ULDCIRequestType:     "UL_DCI.request",
	TxDataRequestType:    "TX_DATA.request",
	RxDataIndicationType: "RX_DATA.indication",
	CRCIndicationType:    "CRC.indication",
	UCIIndicationType:    "UCI.indication",
	SRSIndicationType:    "SRS.indication",
	RACHIndicationType:   "RACH.indication",
	DLTTIResponseType:    "DL_TTI.response",
}

var ErrUnknownMessageType = errors.New("message type error: not part of the FAPI catalog")
var ErrUnknownErrorCode = errors.New("error code error: not part of the FAPI error taxonomy")

// ToMessageType converts a raw wire id into a catalog message type.
func ToMessageType(id uint8) (MessageType, error) {
	t := MessageType(id)
	if _, ok := messageTypeNames[t]; !ok {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownMessageType, id)
	}
	return t, nil
}

func (t MessageType) Valid() bool {
	_, ok := messageTypeNames[t]
	return ok
}

func (t MessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02x)", uint8(t))
}

// ErrorCode is the FAPI error_code_id carried by responses and ERROR.indication.
type ErrorCode uint8

const (
	ErrorCodeOK ErrorCode = iota
	ErrorCodeInvalidState
	ErrorCodeInvalidConfig
	ErrorCodeOutOfSync
	ErrorCodeSlotError
	ErrorCodeBchMissing
	ErrorCodeInvalidSfn
	ErrorCodeUlDciError
	ErrorCodeTxError
	ErrorCodeInvalidPhyID
	ErrorCodeUninstantiatedPhy
	ErrorCodeInvalidDfeProfile
	ErrorCodeProfileIncompatibleRunningPhy
)

var errorCodeNames = [...]string{
	"MSG_OK",
	"MSG_INVALID_STATE",
	"MSG_INVALID_CONFIG",
	"OUT_OF_SYNC",
	"MSG_SLOT_ERR",
	"MSG_BCH_MISSING",
	"MSG_INVALID_SFN",
	"MSG_UL_DCI_ERR",
	"MSG_TX_ERR",
	"MSG_INVALID_PHY_ID",
	"MSG_UNINSTANTIATED_PHY",
	"MSG_INVALID_DFE_PROFILE",
	"PHY_PROFILE_INCOMPATIBLE_RUNNING_PHY",
}

// ToErrorCode converts a raw wire value into an error code.
func ToErrorCode(v uint8) (ErrorCode, error) {
	if int(v) >= len(errorCodeNames) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownErrorCode, v)
	}
	return ErrorCode(v), nil
}

func (c ErrorCode) Valid() bool { return int(c) < len(errorCodeNames) }

func (c ErrorCode) String() string {
	if c.Valid() {
		return errorCodeNames[c]
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(c))
}

// PDUType is implemented by the discriminants of every PDU family (DL_TTI, UL_TTI, UCI).
type PDUType interface {
	fmt.Stringer
	isPDUType()
}

type DLPDUType uint8

const (
	DLPDUTypePDCCH DLPDUType = iota
	DLPDUTypePDSCH
	DLPDUTypeCSIRS
	DLPDUTypeSSB
	DLPDUTypePRS
	// NumDLPDUTypes is the number of DL_TTI PDU variants.
	NumDLPDUTypes
)

func (DLPDUType) isPDUType() {}

func (t DLPDUType) String() string {
	switch t {
	case DLPDUTypePDCCH:
		return "PDCCH"
	case DLPDUTypePDSCH:
		return "PDSCH"
	case DLPDUTypeCSIRS:
		return "CSI-RS"
	case DLPDUTypeSSB:
		return "SSB"
	case DLPDUTypePRS:
		return "PRS"
	}
	return fmt.Sprintf("DL_PDU(%d)", uint8(t))
}

type ULPDUType uint8

const (
	ULPDUTypePRACH ULPDUType = iota
	ULPDUTypePUSCH
	ULPDUTypePUCCH
	ULPDUTypeSRS
	ULPDUTypeMsgAPUSCH
	// NumULPDUTypes is the number of UL_TTI PDU variants.
	NumULPDUTypes
)

func (ULPDUType) isPDUType() {}

func (t ULPDUType) String() string {
	switch t {
	case ULPDUTypePRACH:
		return "PRACH"
	case ULPDUTypePUSCH:
		return "PUSCH"
	case ULPDUTypePUCCH:
		return "PUCCH"
	case ULPDUTypeSRS:
		return "SRS"
	case ULPDUTypeMsgAPUSCH:
		return "MsgA-PUSCH"
	}
	return fmt.Sprintf("UL_PDU(%d)", uint8(t))
}

type UCIPDUType uint8

const (
	UCIPDUTypePUSCH UCIPDUType = iota
	UCIPDUTypePUCCHFormat01
	UCIPDUTypePUCCHFormat234
)

func (UCIPDUType) isPDUType() {}

func (t UCIPDUType) String() string {
	switch t {
	case UCIPDUTypePUSCH:
		return "UCI-PUSCH"
	case UCIPDUTypePUCCHFormat01:
		return "UCI-PUCCH-F0/1"
	case UCIPDUTypePUCCHFormat234:
		return "UCI-PUCCH-F2/3/4"
	}
	return fmt.Sprintf("UCI_PDU(%d)", uint8(t))
}
