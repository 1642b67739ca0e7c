package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoTeamsRoom seeds a room with attacker/victim on opposite teams plus a
// teammate of the attacker, using the normal join path.
func twoTeamsRoom(t *testing.T) *Room {
	t.Helper()
	room := newRoom(1, "Dust", 8)
	// Join order A, B, A by the balancer.
	for _, p := range []struct{ id, name string }{
		{"conn-attacker", "Attacker"},
		{"conn-victim", "Victim"},
		{"conn-mate", "Mate"},
	} {
		_, _, err := room.addPlayer(p.id, p.name)
		require.NoError(t, err)
	}
	return room
}

func (r *Room) member(t *testing.T, id string) *PlayerRecord {
	t.Helper()
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.members[id]
	require.True(t, ok)
	return rec
}

// checkHealthAliveInvariant asserts health in [0,100] and alive <=> health>0
// for every member.
func checkHealthAliveInvariant(t *testing.T, r *Room) {
	t.Helper()
	for _, s := range r.memberStates() {
		assert.GreaterOrEqual(t, s.Health, 0)
		assert.LessOrEqual(t, s.Health, 100)
		assert.Equal(t, s.Health > 0, s.Alive)
	}
}

func TestApplyHit_FriendlyFireIgnored(t *testing.T) {
	room := twoTeamsRoom(t)

	res := room.applyHit("conn-attacker", "conn-mate", 50, "rifle")
	assert.Equal(t, HitIgnored, res.Outcome)
	assert.Equal(t, 100, room.member(t, "conn-mate").Health)
}

func TestApplyHit_UnknownTargetIgnored(t *testing.T) {
	room := twoTeamsRoom(t)

	res := room.applyHit("conn-attacker", "conn-ghost", 50, "rifle")
	assert.Equal(t, HitIgnored, res.Outcome)

	res = room.applyHit("conn-ghost", "conn-victim", 50, "rifle")
	assert.Equal(t, HitIgnored, res.Outcome)
}

func TestApplyHit_NonsenseDamageIgnored(t *testing.T) {
	room := twoTeamsRoom(t)

	res := room.applyHit("conn-attacker", "conn-victim", 0, "rifle")
	assert.Equal(t, HitIgnored, res.Outcome)
	res = room.applyHit("conn-attacker", "conn-victim", -20, "rifle")
	assert.Equal(t, HitIgnored, res.Outcome)
	assert.Equal(t, 100, room.member(t, "conn-victim").Health)
}

func TestApplyHit_DamageSurvivor(t *testing.T) {
	room := twoTeamsRoom(t)

	res := room.applyHit("conn-attacker", "conn-victim", 35, "rifle")
	require.Equal(t, HitDamaged, res.Outcome)
	assert.Equal(t, 65, res.Target.Health)
	assert.True(t, res.Target.Alive)
	assert.Zero(t, res.Attacker.Kills)
	checkHealthAliveInvariant(t, room)
}

func TestApplyHit_Elimination(t *testing.T) {
	room := twoTeamsRoom(t)

	// Overkill damage clamps to zero.
	res := room.applyHit("conn-attacker", "conn-victim", 120, "rocket")
	require.Equal(t, HitEliminated, res.Outcome)
	assert.Equal(t, 0, res.Target.Health)
	assert.False(t, res.Target.Alive)
	assert.Equal(t, 1, res.Target.Deaths)
	assert.Equal(t, 1, res.Attacker.Kills)
	assert.Equal(t, "rocket", res.Weapon)
	checkHealthAliveInvariant(t, room)
}

func TestApplyHit_DeadTargetIgnored(t *testing.T) {
	room := twoTeamsRoom(t)

	res := room.applyHit("conn-attacker", "conn-victim", 120, "rifle")
	require.Equal(t, HitEliminated, res.Outcome)

	res = room.applyHit("conn-attacker", "conn-victim", 120, "rifle")
	assert.Equal(t, HitIgnored, res.Outcome)
	assert.Equal(t, 1, room.member(t, "conn-victim").Deaths)
	assert.Equal(t, 1, room.member(t, "conn-attacker").Kills)
}

func TestApplyHit_ConcurrentLethalHitsProduceOneElimination(t *testing.T) {
	// Two attackers on the same team land lethal hits on the same target at
	// the same instant. Exactly one elimination may result.
	for i := 0; i < 50; i++ {
		room := twoTeamsRoom(t)

		var wg sync.WaitGroup
		results := make([]HitResult, 2)
		for j, attacker := range []string{"conn-attacker", "conn-mate"} {
			wg.Add(1)
			go func(j int, attacker string) {
				defer wg.Done()
				results[j] = room.applyHit(attacker, "conn-victim", 60, "rifle")
			}(j, attacker)
		}
		wg.Wait()

		var eliminations, kills int
		for _, res := range results {
			if res.Outcome == HitEliminated {
				eliminations++
			}
		}
		kills = room.member(t, "conn-attacker").Kills + room.member(t, "conn-mate").Kills

		assert.Equal(t, 1, eliminations)
		assert.Equal(t, 1, kills)
		assert.Equal(t, 1, room.member(t, "conn-victim").Deaths)
		checkHealthAliveInvariant(t, room)
	}
}
