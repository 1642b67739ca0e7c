package game

// HitOutcome classifies what a hit did to its target.
type HitOutcome int

const (
	// HitIgnored: attacker and target not in the same room, target already
	// dead, friendly fire, or nonsense damage. Normal consequence of network
	// races, never an error and never broadcast.
	HitIgnored HitOutcome = iota
	// HitDamaged: target survived with reduced health.
	HitDamaged
	// HitEliminated: this hit took the target from alive to dead.
	HitEliminated
)

// HitResult carries the post-hit snapshots the coordinator needs to build
// the outbound notifications.
type HitResult struct {
	Outcome  HitOutcome
	Attacker PlayerState
	Target   PlayerState
	Weapon   string
}

// applyHit resolves a hit against a member of this room. The qualification
// checks, the health decrement and the kill/death accounting are one atomic
// step under the room lock, so concurrent lethal hits against the same target
// produce exactly one elimination: the second hit finds the target already
// dead and is ignored.
func (r *Room) applyHit(attackerID, targetID string, damage int, weapon string) HitResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	attacker, ok := r.members[attackerID]
	if !ok {
		return HitResult{Outcome: HitIgnored}
	}
	target, ok := r.members[targetID]
	if !ok {
		return HitResult{Outcome: HitIgnored}
	}
	if !target.Alive || target.Team == attacker.Team || damage <= 0 {
		return HitResult{Outcome: HitIgnored}
	}

	target.Health -= damage
	if target.Health > 0 {
		return HitResult{
			Outcome:  HitDamaged,
			Attacker: attacker.state(),
			Target:   target.state(),
			Weapon:   weapon,
		}
	}

	// Alive -> dead transition. Health clamp, alive flip and counter updates
	// happen here, under the same lock acquisition as the checks above.
	target.Health = 0
	target.Alive = false
	target.Deaths++
	attacker.Kills++

	return HitResult{
		Outcome:  HitEliminated,
		Attacker: attacker.state(),
		Target:   target.state(),
		Weapon:   weapon,
	}
}
