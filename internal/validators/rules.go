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
	"math"
	"slices"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
)

// A rule decides whether a field value is legal.
type rule interface {
	accepts(v int64) bool
}

// bounded accepts values in [min, max].
type bounded struct {
	min, max int64
}

func (b bounded) accepts(v int64) bool { return v >= b.min && v <= b.max }

// oneOf accepts only the listed codes.
type oneOf []int64

func (o oneOf) accepts(v int64) bool { return slices.Contains(o, v) }

// anyValue is the rule of fields whose whole representable range is legal.
type anyValue struct{}

func (anyValue) accepts(int64) bool { return true }

// orUnset extends a rule with the sentinel L1 uses for "not reported".
type orUnset struct {
	rule
	unset int64
}

func (o orUnset) accepts(v int64) bool { return v == o.unset || o.rule.accepts(v) }

// dispatch selects the rule of a field from the value of a controlling field.
// A controlling value with no entry means the dependent field cannot be checked.
type dispatch map[int64]rule

func (d dispatch) ruleFor(key int64) (rule, bool) {
	r, ok := d[key]
	return r, ok
}

// bitmap accepts non-zero values fitting in the given number of bits.
func bitmap(bits uint) rule {
	return bounded{1, int64(1)<<bits - 1}
}

// atLeast accepts values no smaller than min.
func atLeast(min int64) rule {
	return bounded{min, math.MaxInt64}
}

// Shared rules.
var (
	exempt           = anyValue{}
	flag             = bounded{0, 1}
	sfnRule          = bounded{0, models.MaxSFN}
	slotRule         = bounded{0, models.MaxSlotIndex}
	rntiRule         = bounded{1, 65535}
	bwpSizeRule      = bounded{1, 275}
	bwpStartRule     = bounded{0, 274}
	scsRule          = bounded{0, models.MaxNumerology}
	scsCommonRule    = bounded{0, 3}
	cyclicPrefixRule = bounded{0, 1}
	startSymbolRule  = bounded{0, 13}
	nrOfSymbolsRule  = bounded{1, 14}
	rbStartRule      = bounded{0, 274}
	rbSizeRule       = bounded{1, 275}
	physCellIDRule   = bounded{0, 1007}
	nid1023Rule      = bounded{0, 1023}
	rapidRule        = orUnset{bounded{0, 63}, int64(models.RAPIDUnset)}
	harqIDRule       = bounded{0, 15}
	uciBitLenRule    = bounded{0, 1706}
	dmrsSymbPosRule  = bitmap(14)
	tbSizeRule       = atLeast(1)
)

// check validates a single field and records a report entry when the rule rejects it.
func check(r *ValidatorReport, pduType models.PDUType, property string, value int64, rl rule) bool {
	if rl.accepts(value) {
		return true
	}
	r.Append(value, property, pduType)
	return false
}

// checkConditional validates a field whose rule depends on a controlling value.
func checkConditional(r *ValidatorReport, pduType models.PDUType, property string, value int64, d dispatch, key int64) bool {
	rl, ok := d.ruleFor(key)
	if !ok {
		return true
	}
	return check(r, pduType, property, value, rl)
}
