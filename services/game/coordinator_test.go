package game

import (
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEvent struct {
	kind    string // "sendTo" | "room" | "global"
	connID  string
	roomID  uint64
	except  string
	event   string
	payload gin.H
}

// fakeBroadcaster records every emit so tests can assert on the outbound
// broadcast set.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []sentEvent
}

func (f *fakeBroadcaster) SendTo(connectionID string, event string, payload interface{}) {
	f.record(sentEvent{kind: "sendTo", connID: connectionID, event: event, payload: payload.(gin.H)})
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID uint64, event string, payload interface{}, exceptConnectionID string) {
	f.record(sentEvent{kind: "room", roomID: roomID, except: exceptConnectionID, event: event, payload: payload.(gin.H)})
}

func (f *fakeBroadcaster) BroadcastGlobal(event string, payload interface{}) {
	f.record(sentEvent{kind: "global", event: event, payload: payload.(gin.H)})
}

func (f *fakeBroadcaster) Subscribe(connectionID string, roomID uint64)   {}
func (f *fakeBroadcaster) Unsubscribe(connectionID string, roomID uint64) {}

func (f *fakeBroadcaster) record(e sentEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeBroadcaster) named(event string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentEvent
	for _, e := range f.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeBroadcaster) sentToConn(connID, event string) []sentEvent {
	var out []sentEvent
	for _, e := range f.named(event) {
		if e.kind == "sendTo" && e.connID == connID {
			out = append(out, e)
		}
	}
	return out
}

type fakeSink struct {
	mu     sync.Mutex
	finals []RoomSummary
}

func (f *fakeSink) SaveMatchResult(final RoomSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finals = append(f.finals, final)
	return nil
}

func newTestCoordinator() (*Coordinator, *fakeBroadcaster) {
	fb := &fakeBroadcaster{}
	coord := NewCoordinator(NewRegistry(), fb, nil, nil)
	coord.RespawnDelay = 25 * time.Millisecond
	return coord, fb
}

func TestCoordinator_JoinFanout(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)

	require.NoError(t, coord.Join("conn-alice", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-bob", server.ID, "Bob"))

	// Bob's welcome carries his own record plus Alice's.
	joined := fb.sentToConn("conn-bob", "joinedServer")
	require.Len(t, joined, 1)
	you := joined[0].payload["you"].(PlayerState)
	peers := joined[0].payload["peers"].([]PlayerState)
	assert.Equal(t, "Bob", you.Name)
	assert.Equal(t, TeamB, you.Team) // team counts were 1/0
	require.Len(t, peers, 1)
	assert.Equal(t, "Alice", peers[0].Name)

	// The rest of the room hears peerJoined, excluding the joiner.
	peerJoined := fb.named("peerJoined")
	require.Len(t, peerJoined, 2)
	assert.Equal(t, "conn-bob", peerJoined[1].except)

	// Every structural change re-broadcasts the lobby list globally:
	// create + two joins.
	serverLists := fb.named("serverList")
	require.Len(t, serverLists, 3)
	for _, e := range serverLists {
		assert.Equal(t, "global", e.kind)
	}
}

func TestCoordinator_JoinErrors(t *testing.T) {
	coord, _ := newTestCoordinator()
	server := coord.CreateRoom("Duel", 2)

	assert.ErrorIs(t, coord.Join("conn-1", 999, "ghost"), ErrRoomNotFound)

	require.NoError(t, coord.Join("conn-1", server.ID, "p1"))
	require.NoError(t, coord.Join("conn-2", server.ID, "p2"))
	assert.ErrorIs(t, coord.Join("conn-3", server.ID, "p3"), ErrRoomFull)
}

func TestCoordinator_LeaveIsIdempotent(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-1", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-2", server.ID, "Bob"))

	coord.Leave("conn-2", "left")
	coord.Leave("conn-2", "left")

	assert.Len(t, fb.named("peerLeft"), 1)
	summary, err := coord.Registry.Summary(server.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Occupancy)
}

func TestCoordinator_KillAndRespawnScenario(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-alice", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-bob", server.ID, "Bob"))

	// Opposite teams, overkill damage.
	coord.ApplyHit("conn-alice", "conn-bob", 120, "rocket")

	eliminations := fb.named("elimination")
	require.Len(t, eliminations, 1)
	e := eliminations[0]
	assert.Equal(t, "room", e.kind)
	assert.Equal(t, "", e.except) // every member hears it
	assert.Equal(t, "conn-bob", e.payload["victimId"])
	assert.Equal(t, "conn-alice", e.payload["killerId"])
	assert.Equal(t, 1, e.payload["killerKills"])
	assert.Equal(t, "rocket", e.payload["weapon"])

	died := fb.sentToConn("conn-bob", "youDied")
	require.Len(t, died, 1)
	assert.Equal(t, "conn-alice", died[0].payload["killerId"])

	// After the delay Bob respawns exactly once, at full health.
	time.Sleep(4 * coord.RespawnDelay)

	respawned := fb.sentToConn("conn-bob", "youRespawned")
	require.Len(t, respawned, 1)
	assert.Equal(t, 100, respawned[0].payload["health"])

	peerRespawned := fb.named("peerRespawned")
	require.Len(t, peerRespawned, 1)
	assert.Equal(t, "conn-bob", peerRespawned[0].except)
}

func TestCoordinator_HitBelowLethalNotifiesPrivately(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-alice", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-bob", server.ID, "Bob"))

	coord.ApplyHit("conn-alice", "conn-bob", 40, "rifle")

	damaged := fb.sentToConn("conn-bob", "tookDamage")
	require.Len(t, damaged, 1)
	assert.Equal(t, 60, damaged[0].payload["health"])

	confirmed := fb.sentToConn("conn-alice", "hitConfirmed")
	require.Len(t, confirmed, 1)
	assert.Equal(t, "conn-bob", confirmed[0].payload["targetId"])

	// Nobody else is notified.
	assert.Empty(t, fb.named("elimination"))
}

func TestCoordinator_LeaveDuringRespawnDelayCancels(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-alice", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-bob", server.ID, "Bob"))

	coord.ApplyHit("conn-alice", "conn-bob", 120, "rifle")
	coord.Leave("conn-bob", "left")

	time.Sleep(4 * coord.RespawnDelay)

	assert.Empty(t, fb.named("youRespawned"))
	assert.Empty(t, fb.named("peerRespawned"))
}

func TestCoordinator_DeleteRoomEvictsAndInvalidates(t *testing.T) {
	fb := &fakeBroadcaster{}
	sink := &fakeSink{}
	coord := NewCoordinator(NewRegistry(), fb, nil, sink)
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-1", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-2", server.ID, "Bob"))

	require.NoError(t, coord.DeleteRoom(server.ID))

	// Both members receive a forced-leave notification.
	forced := fb.named("forcedLeave")
	require.Len(t, forced, 2)

	// The final scoreboard reached the match sink before eviction.
	require.Len(t, sink.finals, 1)
	assert.Equal(t, 2, sink.finals[0].Occupancy)

	// The id is rejected by all later operations.
	assert.ErrorIs(t, coord.Join("conn-3", server.ID, "late"), ErrRoomNotFound)
	assert.ErrorIs(t, coord.DeleteRoom(server.ID), ErrRoomNotFound)

	// And the evicted members are no longer indexed anywhere.
	coord.Leave("conn-1", "left")
	assert.Empty(t, fb.named("peerLeft"))
}

func TestCoordinator_KickRequiresMembership(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-1", server.ID, "Alice"))

	assert.ErrorIs(t, coord.Kick(server.ID, "conn-ghost"), ErrNotAMember)
	assert.ErrorIs(t, coord.Kick(999, "conn-1"), ErrRoomNotFound)

	require.NoError(t, coord.Kick(server.ID, "conn-1"))
	forced := fb.sentToConn("conn-1", "forcedLeave")
	require.Len(t, forced, 1)
	assert.Equal(t, "kicked", forced[0].payload["reason"])

	summary, err := coord.Registry.Summary(server.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Occupancy)
}

func TestCoordinator_TelemetryRelay(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-1", server.ID, "Alice"))

	pos := Vector3{X: 10, Y: 0, Z: -3}
	coord.UpdateTelemetry("conn-1", pos, 45, "smg")

	updates := fb.named("peerUpdate")
	require.Len(t, updates, 1)
	assert.Equal(t, "conn-1", updates[0].except)
	assert.Equal(t, pos, updates[0].payload["position"])
	assert.Equal(t, true, updates[0].payload["alive"])

	coord.NotifyShot("conn-1", "smg")
	shots := fb.named("peerShoot")
	require.Len(t, shots, 1)
	assert.Equal(t, "smg", shots[0].payload["weapon"])

	// Connections outside any room are dropped silently.
	coord.UpdateTelemetry("conn-ghost", pos, 0, "")
	coord.NotifyShot("conn-ghost", "smg")
	assert.Len(t, fb.named("peerUpdate"), 1)
	assert.Len(t, fb.named("peerShoot"), 1)
}

func TestCoordinator_AutoDeleteEmptyRoom(t *testing.T) {
	coord, fb := newTestCoordinator()
	coord.Registry.AutoDeleteEmpty = true

	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-1", server.ID, "Alice"))
	coord.Leave("conn-1", "left")

	_, err := coord.Registry.Find(server.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	// The teardown announced the emptied lobby.
	assert.NotEmpty(t, fb.named("serverList"))
}

func TestCoordinator_JoinWhileInRoomMoves(t *testing.T) {
	coord, fb := newTestCoordinator()
	first := coord.CreateRoom("Dust", 4)
	second := coord.CreateRoom("Aztec", 4)

	require.NoError(t, coord.Join("conn-1", first.ID, "Alice"))
	require.NoError(t, coord.Join("conn-1", second.ID, "Alice"))

	firstSummary, err := coord.Registry.Summary(first.ID)
	require.NoError(t, err)
	assert.Zero(t, firstSummary.Occupancy)

	secondSummary, err := coord.Registry.Summary(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, secondSummary.Occupancy)

	assert.Len(t, fb.named("peerLeft"), 1)
}

func TestCoordinator_RejoinResetsCounters(t *testing.T) {
	coord, fb := newTestCoordinator()
	server := coord.CreateRoom("Dust", 4)
	require.NoError(t, coord.Join("conn-alice", server.ID, "Alice"))
	require.NoError(t, coord.Join("conn-bob", server.ID, "Bob"))

	coord.ApplyHit("conn-alice", "conn-bob", 120, "rifle")
	coord.Leave("conn-alice", "left")
	require.NoError(t, coord.Join("conn-alice", server.ID, "Alice"))

	joined := fb.sentToConn("conn-alice", "joinedServer")
	require.Len(t, joined, 2)
	you := joined[1].payload["you"].(PlayerState)
	assert.Zero(t, you.Kills, "rejoin starts with fresh counters")
}
