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

package utils

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils_RNTIAllocator(t *testing.T) {
	t.Parallel()

	a, err := NewRNTIAllocator(0x4601, 0x4602)
	require.NoError(t, err)
	require.Equal(t, 2, a.Available())

	r1, err := a.Allocate("ue-1")
	require.NoError(t, err)
	require.Equal(t, uint16(0x4601), r1)

	again, err := a.Allocate("ue-1")
	require.NoError(t, err)
	require.Equal(t, r1, again)

	r2, err := a.Allocate("ue-2")
	require.NoError(t, err)
	require.Equal(t, uint16(0x4602), r2)

	_, err = a.Allocate("ue-3")
	require.True(t, errors.Is(err, ErrNoRNTIAvailable))

	owner, ok := a.Owner(r2)
	require.True(t, ok)
	require.Equal(t, "ue-2", owner)

	require.NoError(t, a.Release("ue-1"))
	require.True(t, errors.Is(a.Release("ue-1"), ErrRNTINotAllocated))
	_, ok = a.Get("ue-1")
	require.False(t, ok)

	r3, err := a.Allocate("ue-3")
	require.NoError(t, err)
	require.Equal(t, r1, r3)
}

func TestUtils_RNTIAllocator_InvalidRange(t *testing.T) {
	t.Parallel()

	_, err := NewRNTIAllocator(0, 10)
	require.Error(t, err)
	_, err = NewRNTIAllocator(20, 10)
	require.Error(t, err)
	_, err = NewRNTIAllocator(1, 0xffff)
	require.Error(t, err)
}

func TestUtils_PoolExecutor_PreservesOrder(t *testing.T) {
	t.Parallel()

	e := NewPoolExecutor(PoolExecutorConfig{Name: "test", CellID: "order", QueueSize: 256})

	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		require.True(t, e.Execute(func() {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, i)
		}))
	}
	e.Stop()

	require.Len(t, got, 100)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestUtils_PoolExecutor_DropsWhenFull(t *testing.T) {
	t.Parallel()

	e := NewPoolExecutor(PoolExecutorConfig{Name: "test", CellID: "full", QueueSize: 1})

	started := make(chan struct{})
	release := make(chan struct{})
	require.True(t, e.Execute(func() {
		close(started)
		<-release
	}))
	<-started

	require.True(t, e.Execute(func() {}))
	require.False(t, e.Execute(func() {}))

	close(release)
	e.Stop()
}

func TestUtils_InlineExecutor(t *testing.T) {
	t.Parallel()

	ran := false
	require.True(t, InlineExecutor{}.Execute(func() { ran = true }))
	require.True(t, ran)
}
