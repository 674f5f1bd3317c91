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

package validators

import (
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

var (
	numPRACHOcasRule     = bounded{1, 7}
	prachFormatRule      = bounded{0, 13}
	indexFdRARule        = bounded{0, 7}
	prachStartSymbolRule = bounded{0, 13}
	numCSRule            = bounded{0, 419}
)

func validateULPRACHPDU(r *ValidatorReport, pdu *models.ULPRACHPDU) {
	t := models.ULPDUTypePRACH

	check(r, t, "Physical cell ID", int64(pdu.PhysCellID), physCellIDRule)
	check(r, t, "Number of PRACH occasions", int64(pdu.NumPRACHOcas), numPRACHOcasRule)
	check(r, t, "PRACH format", int64(pdu.PRACHFormat), prachFormatRule)
	check(r, t, "Index FD RA", int64(pdu.IndexFdRA), indexFdRARule)
	check(r, t, "PRACH start symbol", int64(pdu.PRACHStartSymbol), prachStartSymbolRule)
	check(r, t, "Number of cyclic shifts", int64(pdu.NumCS), numCSRule)
	check(r, t, "Is MsgA PRACH", int64(pdu.IsMsgAPRACH), flag)
	check(r, t, "Handle", int64(pdu.Handle), exempt)
}
