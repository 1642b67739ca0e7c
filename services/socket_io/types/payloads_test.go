package socketio_types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJoinServer(t *testing.T) {
	payload, err := ParseJoinServer([]interface{}{map[string]interface{}{
		"serverId":    float64(3),
		"displayName": "Alice",
	}})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), payload.ServerID)
	assert.Equal(t, "Alice", payload.DisplayName)

	// Display name is optional; the core generates a placeholder.
	payload, err = ParseJoinServer([]interface{}{map[string]interface{}{
		"serverId": float64(1),
	}})
	require.NoError(t, err)
	assert.Empty(t, payload.DisplayName)

	for _, args := range [][]interface{}{
		nil,
		{"not-a-map"},
		{map[string]interface{}{}},
		{map[string]interface{}{"serverId": "seven"}},
	} {
		_, err := ParseJoinServer(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestParsePlayerUpdate(t *testing.T) {
	payload, err := ParsePlayerUpdate([]interface{}{map[string]interface{}{
		"position": map[string]interface{}{"x": 1.5, "y": 0.0, "z": -3.25},
		"facing":   90.0,
		"weapon":   "smg",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1.5, payload.Position.X)
	assert.Equal(t, -3.25, payload.Position.Z)
	assert.Equal(t, 90.0, payload.Facing)
	assert.Equal(t, "smg", payload.Weapon)

	// Missing or partial position is malformed and gets dropped upstream.
	_, err = ParsePlayerUpdate([]interface{}{map[string]interface{}{
		"position": map[string]interface{}{"x": 1.0},
		"facing":   90.0,
	}})
	assert.Error(t, err)
}

func TestParseHitPlayer(t *testing.T) {
	payload, err := ParseHitPlayer([]interface{}{map[string]interface{}{
		"targetId": "conn-2",
		"damage":   float64(35),
		"weapon":   "rifle",
	}})
	require.NoError(t, err)
	assert.Equal(t, "conn-2", payload.TargetID)
	assert.Equal(t, 35, payload.Damage)

	_, err = ParseHitPlayer([]interface{}{map[string]interface{}{
		"damage": float64(35),
	}})
	assert.Error(t, err)
}

func TestParseAdminPayloads(t *testing.T) {
	create, err := ParseAdminCreateServer([]interface{}{map[string]interface{}{
		"secret":   "s3cret",
		"name":     "Dust",
		"capacity": float64(8),
	}})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", create.Secret)
	assert.Equal(t, 8, create.Capacity)

	_, err = ParseAdminCreateServer([]interface{}{map[string]interface{}{"secret": "x"}})
	assert.Error(t, err, "name is required")

	kick, err := ParseAdminKick([]interface{}{map[string]interface{}{
		"secret":   "s3cret",
		"serverId": float64(2),
		"targetId": "conn-9",
	}})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), kick.ServerID)
	assert.Equal(t, "conn-9", kick.TargetID)

	// A missing secret parses fine and fails verification later.
	list, err := ParseAdminList([]interface{}{map[string]interface{}{}})
	require.NoError(t, err)
	assert.Empty(t, list.Secret)
}
