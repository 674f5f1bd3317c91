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

package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMain_FormatRFC3339Millis(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 678_900_000, time.FixedZone("CET", 3600))
	require.Equal(t, "2025-01-02T02:04:05.678Z", formatRFC3339Millis(ts))
}

func TestMain_LogLevel(t *testing.T) {
	require.Equal(t, slog.LevelInfo, logLevel(""))
	require.Equal(t, slog.LevelWarn, logLevel("warn"))
	require.Equal(t, slog.LevelError, logLevel("error"))
	require.Equal(t, slog.LevelInfo, logLevel("chatty"))

	verbose = true
	defer func() { verbose = false }()
	require.Equal(t, slog.LevelDebug, logLevel("error"))
}
