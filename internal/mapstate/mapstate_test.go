package mapstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triviador-game/triviador-backend/internal/engine"
)

func TestDerive_BasicPayload(t *testing.T) {
	payload := engine.OwnershipPayload{
		{PlayerID: "A", Counties: []string{"ROB", "ROIL"}},
		{PlayerID: "B", Counties: []string{"ROSM"}},
	}
	colors := map[string]string{"A": "red", "B": "blue"}

	owners := Derive(payload, colors)

	require.Len(t, owners, 3)
	assert.Equal(t, CountyOwner{PlayerID: "A", Color: "red"}, owners["ROB"])
	assert.Equal(t, CountyOwner{PlayerID: "A", Color: "red"}, owners["ROIL"])
	assert.Equal(t, CountyOwner{PlayerID: "B", Color: "blue"}, owners["ROSM"])
}

func TestDerive_IsPureAndRepeatable(t *testing.T) {
	payload := engine.OwnershipPayload{
		{PlayerID: "A", Counties: []string{"ROB"}},
		{PlayerID: "B", Counties: []string{"ROCJ", "ROIS"}},
	}
	colors := map[string]string{"A": "red", "B": "blue"}

	first := Derive(payload, colors)
	second := Derive(payload, colors)
	assert.Equal(t, first, second)
}

func TestDerive_UnknownPlayerGetsFallbackColor(t *testing.T) {
	payload := engine.OwnershipPayload{{PlayerID: "ghost", Counties: []string{"ROB"}}}

	owners := Derive(payload, map[string]string{})
	assert.Equal(t, FallbackColor, owners["ROB"].Color)
}

func TestDerive_AbsentCountiesHaveNoOwner(t *testing.T) {
	owners := Derive(engine.OwnershipPayload{}, map[string]string{"A": "red"})
	_, ok := owners["ROB"]
	assert.False(t, ok)
}

func TestDerive_DuplicateCodeLastRecordWins(t *testing.T) {
	payload := engine.OwnershipPayload{
		{PlayerID: "A", Counties: []string{"ROB"}},
		{PlayerID: "B", Counties: []string{"ROB"}},
	}
	colors := map[string]string{"A": "red", "B": "blue"}

	owners := Derive(payload, colors)
	assert.Equal(t, "B", owners["ROB"].PlayerID)
}
