package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEquipment_SumsScalable(t *testing.T) {
	lists := [][]EquipmentRequirement{
		{{Item: "rope", Quantity: 1, Scalable: true}},
		{{Item: "rope", Quantity: 2, Scalable: true}},
	}

	got := MergeEquipment(lists)

	require.Len(t, got, 1)
	assert.Equal(t, EquipmentRequirement{Item: "rope", Quantity: 3, Scalable: true}, got[0])
}

func TestMergeEquipment_NonScalableWinsWithMax(t *testing.T) {
	testCases := []struct {
		name     string
		existing EquipmentRequirement
		incoming EquipmentRequirement
		want     EquipmentRequirement
	}{
		{
			name:     "нескалируемая против скалируемой",
			existing: EquipmentRequirement{Item: "stopwatch", Quantity: 1, Scalable: false},
			incoming: EquipmentRequirement{Item: "stopwatch", Quantity: 1, Scalable: true},
			want:     EquipmentRequirement{Item: "stopwatch", Quantity: 1, Scalable: false},
		},
		{
			name:     "скалируемая против нескалируемой, максимум количеств",
			existing: EquipmentRequirement{Item: "stopwatch", Quantity: 2, Scalable: true},
			incoming: EquipmentRequirement{Item: "stopwatch", Quantity: 5, Scalable: false},
			want:     EquipmentRequirement{Item: "stopwatch", Quantity: 5, Scalable: false},
		},
		{
			name:     "обе нескалируемые",
			existing: EquipmentRequirement{Item: "stopwatch", Quantity: 3, Scalable: false},
			incoming: EquipmentRequirement{Item: "stopwatch", Quantity: 1, Scalable: false},
			want:     EquipmentRequirement{Item: "stopwatch", Quantity: 3, Scalable: false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeEquipment([][]EquipmentRequirement{{tc.existing}, {tc.incoming}})
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestMergeEquipment_PreservesFirstOccurrenceOrder(t *testing.T) {
	lists := [][]EquipmentRequirement{
		{
			{Item: "rope", Quantity: 1, Scalable: true},
			{Item: "bucket", Quantity: 2, Scalable: true},
		},
		{
			{Item: "chalk", Quantity: 1, Scalable: true},
			{Item: "rope", Quantity: 1, Scalable: true},
		},
	}

	got := MergeEquipment(lists)

	require.Len(t, got, 3)
	assert.Equal(t, "rope", got[0].Item)
	assert.Equal(t, "bucket", got[1].Item)
	assert.Equal(t, "chalk", got[2].Item)
	assert.Equal(t, 2, got[0].Quantity)
}

func TestMergeEquipment_Idempotent(t *testing.T) {
	lists := [][]EquipmentRequirement{
		{
			{Item: "rope", Quantity: 2, Scalable: true},
			{Item: "stopwatch", Quantity: 1, Scalable: false},
		},
	}

	once := MergeEquipment(lists)
	twice := MergeEquipment([][]EquipmentRequirement{once})

	assert.Equal(t, once, twice)
}

func TestMergeEquipment_DoesNotMutateInput(t *testing.T) {
	original := []EquipmentRequirement{{Item: "rope", Quantity: 1, Scalable: true}}
	lists := [][]EquipmentRequirement{original, {{Item: "rope", Quantity: 2, Scalable: true}}}

	_ = MergeEquipment(lists)

	assert.Equal(t, 1, original[0].Quantity)
}

func TestGetTotalEquipment(t *testing.T) {
	reqs := []EquipmentRequirement{
		{Item: "rope", Quantity: 1, Scalable: true},
		{Item: "stopwatch", Quantity: 1, Scalable: false},
	}

	got := GetTotalEquipment(reqs, 4)

	require.Len(t, got, 2)
	assert.Equal(t, EquipmentTotal{Item: "rope", Total: 4}, got[0])
	assert.Equal(t, EquipmentTotal{Item: "stopwatch", Total: 1}, got[1])
}

func TestGetTotalEquipment_ClampsGroupsToOne(t *testing.T) {
	reqs := []EquipmentRequirement{{Item: "rope", Quantity: 3, Scalable: true}}

	for _, groups := range []int{0, -5} {
		got := GetTotalEquipment(reqs, groups)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].Total)
	}
}

func TestCatalog_EquipmentForSelection(t *testing.T) {
	c := New()

	t.Run("плоское упражнение", func(t *testing.T) {
		got, err := c.EquipmentForSelection(2, nil)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("выбранные под-активности сливаются", func(t *testing.T) {
		// "חבל" встречается и в под-активности 4, и в 11.
		got, err := c.EquipmentForSelection(1, []uint64{4, 11})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Quantity)
		assert.True(t, got[0].Scalable)
	})

	t.Run("неизвестное упражнение", func(t *testing.T) {
		_, err := c.EquipmentForSelection(999, nil)
		assert.Error(t, err)
	})
}
