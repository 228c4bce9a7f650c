package joint

// OptSteps is an optional absolute step value. A joint never mentioned
// in a command is left unset rather than marked with a reserved numeric
// sentinel, so legitimate extreme positions cannot collide with "absent".
type OptSteps struct {
	Steps int64
	set   bool
}

// Some wraps a concrete step value.
func Some(steps int64) OptSteps { return OptSteps{Steps: steps, set: true} }

// IsSet reports whether a value was assigned.
func (o OptSteps) IsSet() bool { return o.set }

// Positions is a fixed-size target array keyed by zero-based joint
// index. Parsers fill it left to right; a later assignment to the same
// joint overwrites the earlier one.
type Positions [Count]OptSteps

// Set assigns an absolute target for a joint. Out-of-range indexes are
// ignored; callers validate joint numbers before assignment.
func (p *Positions) Set(idx int, steps int64) {
	if idx < 0 || idx >= Count {
		return
	}
	p[idx] = Some(steps)
}

// Any reports whether at least one joint has a value set.
func (p Positions) Any() bool {
	for _, o := range p {
		if o.IsSet() {
			return true
		}
	}
	return false
}
