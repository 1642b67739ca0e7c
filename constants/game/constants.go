package game_constants

const MaxHealth = 100

// Room capacity bounds. Admin-requested capacities are clamped into this range.
const (
	MinRoomCapacity     = 2
	MaxRoomCapacity     = 16
	DefaultRoomCapacity = 8
)

// Seconds a dead player waits before being resurrected.
const RespawnDelaySeconds = 3

const DefaultWeapon = "rifle"

// Spawn pools, one per team, as {x, y, z}. Spawn points are picked uniformly
// at random from the joining player's team pool.
var TeamASpawns = [][3]float64{
	{-42, 0, -38},
	{-45, 0, 0},
	{-40, 0, 35},
	{-36, 0, 12},
}

var TeamBSpawns = [][3]float64{
	{41, 0, -36},
	{44, 0, 2},
	{39, 0, 33},
	{37, 0, -10},
}
