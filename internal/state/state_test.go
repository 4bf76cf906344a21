package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternSettingsClamp(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   PatternSettings
		want PatternSettings
	}{
		{
			name: "in range",
			in:   PatternSettings{DotSize: 4, Spacing: 8, Threshold: 128, Noise: 0.2},
			want: PatternSettings{DotSize: 4, Spacing: 8, Threshold: 128, Noise: 0.2},
		},
		{
			name: "below",
			in:   PatternSettings{DotSize: 0, Spacing: -3, Threshold: -1, Noise: -0.5},
			want: PatternSettings{DotSize: 1, Spacing: 4, Threshold: 0, Noise: 0},
		},
		{
			name: "above",
			in:   PatternSettings{DotSize: 99, Spacing: 400, Threshold: 300, Noise: 2},
			want: PatternSettings{DotSize: 10, Spacing: 20, Threshold: 255, Noise: 1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Clamp())
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "#ff66cc", NormalizeColor(" #FF66CC "))
	assert.Equal(t, "notacolor", NormalizeColor("notacolor"))
}

func TestStore(t *testing.T) {
	store := NewStore()
	snap := store.Snapshot()
	require.Len(t, snap.Cards, 2)
	assert.Equal(t, "#ff66cc", snap.Cards[0].Color)
	assert.Equal(t, "05'43", snap.Cards[1].Pace)
	assert.Equal(t, uint64(1), store.Version())

	got := store.UpdatePattern(PatternSettings{DotSize: 12, Spacing: 10, Threshold: 64, Noise: 0.5})
	assert.Equal(t, 10, got.DotSize)
	assert.Equal(t, uint64(2), store.Version())

	assert.True(t, store.UpdateCard(1, CardSettings{Color: "#00FF00", Distance: "5km"}))
	assert.False(t, store.UpdateCard(2, CardSettings{}))
	assert.Equal(t, uint64(3), store.Version())
	assert.Equal(t, "#00ff00", store.Snapshot().Cards[1].Color)

	// Snapshots do not alias the store.
	snap = store.Snapshot()
	snap.Cards[0].Distance = "changed"
	assert.Equal(t, "21.16km", store.Snapshot().Cards[0].Distance)
}

func TestStoreConcurrentUpdates(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.UpdatePattern(PatternSettings{DotSize: 1 + i%10, Spacing: 8, Threshold: i, Noise: 0})
			_ = store.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, uint64(51), store.Version())
}
