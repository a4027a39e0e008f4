package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentStatus_Next(t *testing.T) {
	testCases := []struct {
		name     string
		status   EquipmentStatus
		wantNext EquipmentStatus
		wantOK   bool
	}{
		{"из ORDERED в READY", EquipmentStatusOrdered, EquipmentStatusReady, true},
		{"из READY в PICKED_UP", EquipmentStatusReady, EquipmentStatusPickedUp, true},
		{"из PICKED_UP в RETURNED", EquipmentStatusPickedUp, EquipmentStatusReturned, true},
		{"RETURNED - конечный", EquipmentStatusReturned, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := tc.status.Next()
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantNext, next)
			}
		})
	}
}

func TestEquipmentStatus_IsValid(t *testing.T) {
	for _, s := range EquipmentStatuses {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, EquipmentStatus("LOST").IsValid())
	assert.False(t, EquipmentStatus("").IsValid())
}

func TestEquipmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, EquipmentStatusOrdered.IsTerminal())
	assert.False(t, EquipmentStatusReady.IsTerminal())
	assert.False(t, EquipmentStatusPickedUp.IsTerminal())
	assert.True(t, EquipmentStatusReturned.IsTerminal())
}

func TestEquipmentStatus_Spelling(t *testing.T) {
	// Написание строк зафиксировано контрактом с фронтендом и БД.
	assert.Equal(t, "ORDERED", EquipmentStatusOrdered.String())
	assert.Equal(t, "READY", EquipmentStatusReady.String())
	assert.Equal(t, "PICKED_UP", EquipmentStatusPickedUp.String())
	assert.Equal(t, "RETURNED", EquipmentStatusReturned.String())
}
