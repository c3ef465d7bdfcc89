package game

// Step advances the state by one fixed tick: integrate motion, clamp to the
// arena, resolve pin timers for every unordered pair, then check for a win.
func Step(s *State, a Arena) {
	s.Tick++

	ordered := s.Ordered()

	for _, p := range ordered {
		p.Pos = p.Pos.Add(p.Vel)
		p.Pos[0] = clamp(p.Pos[0], a.Radius, a.Width-a.Radius)
		p.Pos[1] = clamp(p.Pos[1], a.Radius, a.Height-a.Radius)
	}

	// Every pair is resolved independently. With three players a timer is
	// touched once per opposing pair, so gains and decays compound within
	// one step.
	contact := a.Radius * ContactFactor
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			resolvePair(ordered[i], ordered[j], contact, a.WinSeconds)
		}
	}

	if s.Winner == RoleNone {
		for _, p := range ordered {
			if p.PinTimer >= a.WinSeconds {
				s.Winner = p.Role
				break
			}
		}
	}
}

// resolvePair applies the dominance rule for one unordered pair. In contact,
// the dominant-and-acting member (at most one, since the dominant flag is
// exclusive per room) gains Dt and the other decays; otherwise both decay.
func resolvePair(a, b *Player, contact, limit float64) {
	if a.Pos.Sub(b.Pos).Len() < contact {
		switch {
		case a.Dominant && a.Acting:
			a.PinTimer = min(a.PinTimer+Dt, limit)
			b.PinTimer = decayed(b.PinTimer)
			return
		case b.Dominant && b.Acting:
			b.PinTimer = min(b.PinTimer+Dt, limit)
			a.PinTimer = decayed(a.PinTimer)
			return
		}
	}
	a.PinTimer = decayed(a.PinTimer)
	b.PinTimer = decayed(b.PinTimer)
}

func decayed(t float64) float64 {
	t -= Dt * DecayFactor
	if t < 0 {
		return 0
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
