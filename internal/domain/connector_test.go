package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kwp(v float64) *float64 { return &v }

func TestMergeConnectors(t *testing.T) {
	t.Run("groups by type and power in first-seen order", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1, EvseIDs: []string{"NOR-1"}},
			{Type: CCS, Power: kwp(50), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1, EvseIDs: []string{"NOR-2"}},
		}

		merged := MergeConnectors(connectors)

		require.Len(t, merged, 2)
		assert.Equal(t, Type2Socket, merged[0].Type)
		assert.Equal(t, 2, merged[0].Count)
		assert.Equal(t, CCS, merged[1].Type)
		assert.Equal(t, 1, merged[1].Count)
		// Merged view is count-only.
		assert.Nil(t, merged[0].EvseIDs)
	})

	t.Run("same type with different power stays separate", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(11), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
		}

		assert.Len(t, MergeConnectors(connectors), 2)
	})

	t.Run("unknown power is its own variant", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: nil, Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: Type2Socket, Power: nil, Count: 1},
		}

		merged := MergeConnectors(connectors)

		require.Len(t, merged, 2)
		assert.Nil(t, merged[0].Power)
		assert.Equal(t, 2, merged[0].Count)
	})

	t.Run("order-insensitive counts", func(t *testing.T) {
		a := []Connector{
			{Type: CCS, Power: kwp(50), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: CCS, Power: kwp(50), Count: 1},
		}
		b := []Connector{a[1], a[0], a[2]}

		countsOf := func(cs []Connector) map[string]int {
			counts := make(map[string]int)
			for _, c := range MergeConnectors(cs) {
				counts[c.Type] = c.Count
			}
			return counts
		}

		assert.Equal(t, countsOf(a), countsOf(b))
	})

	t.Run("idempotent", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: CCS, Power: kwp(50), Count: 1},
		}

		once := MergeConnectors(connectors)
		twice := MergeConnectors(once)

		assert.Equal(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeConnectors(nil))
	})
}

func TestIsMultiPlug(t *testing.T) {
	t.Run("single connector is never multi-plug", func(t *testing.T) {
		for _, c := range []Connector{
			{Type: CCS, Power: kwp(350), Count: 1},
			{Type: Schuko, Power: kwp(3.6), Count: 1},
			{Type: "", Power: nil, Count: 1},
		} {
			assert.False(t, IsMultiPlug([]Connector{c}, nil))
		}
	})

	t.Run("two plugs of the same type", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
		}
		assert.True(t, IsMultiPlug(connectors, nil))
	})

	t.Run("one plug each of two types", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: CCS, Power: kwp(50), Count: 1},
		}
		assert.False(t, IsMultiPlug(connectors, nil))
	})

	t.Run("fast tier excludes slow duplicates", func(t *testing.T) {
		// Two slow Type 2 sockets plus one fast CCS: the station's tier
		// is fast charging, so the slow duplicates don't count.
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: CCS, Power: kwp(150), Count: 1},
		}
		assert.False(t, IsMultiPlug(connectors, nil))
	})

	t.Run("two fast plugs of the same type", func(t *testing.T) {
		connectors := []Connector{
			{Type: CCS, Power: kwp(150), Count: 1},
			{Type: CCS, Power: kwp(150), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
		}
		assert.True(t, IsMultiPlug(connectors, nil))
	})

	t.Run("same type split across fast powers still counts per type", func(t *testing.T) {
		connectors := []Connector{
			{Type: CCS, Power: kwp(50), Count: 1},
			{Type: CCS, Power: kwp(150), Count: 1},
		}
		assert.True(t, IsMultiPlug(connectors, nil))
	})

	t.Run("unknown power counts as slow", func(t *testing.T) {
		connectors := []Connector{
			{Type: CCS, Power: nil, Count: 1},
			{Type: CCS, Power: nil, Count: 1},
			{Type: CCS, Power: kwp(150), Count: 1},
		}
		assert.False(t, IsMultiPlug(connectors, nil))
	})

	t.Run("type filter restricts consideration", func(t *testing.T) {
		connectors := []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: CCS, Power: kwp(150), Count: 1},
		}

		// Only Type 2 sockets considered: their tier is slow, both count.
		assert.True(t, IsMultiPlug(connectors, map[string]bool{Type2Socket: true}))
		// Only CCS considered: a single fast plug.
		assert.False(t, IsMultiPlug(connectors, map[string]bool{CCS: true}))
	})
}

func TestStationHelpers(t *testing.T) {
	st := &Station{
		Connectors: []Connector{
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: Type2Socket, Power: kwp(22), Count: 1},
			{Type: CCS, Power: kwp(62.5), Count: 1},
			{Type: Schuko, Power: nil, Count: 1},
		},
	}

	assert.Equal(t, 62.5, st.MaxPower(nil))
	assert.Equal(t, 0.0, st.MaxPower(map[string]bool{Type1: true}))
	assert.Equal(t, 4, st.TotalConnectors())
	assert.Equal(t, "2 × Type 2 socket 22 kW · 1 × CCS 62.5 kW · 1 × Schuko", st.FormatConnectors())
}

func TestFormatPower(t *testing.T) {
	assert.Equal(t, "50 kW", Connector{Power: kwp(50)}.FormatPower())
	assert.Equal(t, "62.5 kW", Connector{Power: kwp(62.5)}.FormatPower())
	assert.Equal(t, "3.6 kW", Connector{Power: kwp(3.6)}.FormatPower())
	assert.Equal(t, "", Connector{}.FormatPower())
}
