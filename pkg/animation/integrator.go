package animation

import (
	"math"
	"time"
)

// maxCatchUp bounds how much elapsed time a spring integrates in one frame.
// After a longer stall the spring resumes from the current frame instead of
// replaying the lost time in a burst.
const maxCatchUp = 64 * time.Millisecond

// step advances every unsettled leaf of d to now. done reports that all
// leaves have settled; moved reports that at least one leaf took a numeric
// step this frame (string snaps and immediate writes do not count).
func (d *descriptor) step(now, start time.Time) (done, moved bool) {
	cfg := d.config
	if now.Sub(start) < cfg.Delay {
		return false, false
	}

	if d.kind == kindDelegated {
		// Another controller drives these leaves; just wait for it.
		for _, l := range d.leaves {
			if !l.settled {
				return false, true
			}
		}
		return true, false
	}

	done = true
	for i, leaf := range d.leaves {
		if leaf.settled {
			continue
		}
		from, to := d.from[i], d.to[i]
		src := d.trackedLeaf(i)
		if src != nil {
			to = src.current
		}

		if d.immediate || from.isStr || to.isStr {
			leaf.set(to)
			leaf.settled = src == nil || src.settled
			if !leaf.settled {
				done = false
			}
			continue
		}

		var (
			position float64
			end      bool
		)
		if cfg.Duration > 0 {
			elapsed := now.Sub(start) - cfg.Delay
			progress := clamp01(millis(elapsed) / millis(cfg.Duration))
			position = from.num + cfg.Easing(progress)*(to.num-from.num)
			end = !now.Before(start.Add(cfg.Delay + cfg.Duration))
		} else {
			position, end = leaf.integrate(&cfg, from.num, to.num, now)
		}

		// A trailing leaf never finishes ahead of its source.
		if src != nil && !src.settled {
			end = false
		}
		if end {
			position = to.num
			leaf.settled = true
		} else {
			done = false
		}
		leaf.set(numberScalar(position))
		leaf.lastPosition = position
		moved = true
	}
	return done, moved
}

// integrate runs the spring with semi-implicit Euler in fixed 1ms steps from
// the leaf's last integration time to now and reports whether it may stop.
func (l *Leaf) integrate(cfg *SpringConfig, from, to float64, now time.Time) (float64, bool) {
	lastTime := now
	if l.hasTime {
		lastTime = l.lastTime
	}
	velocity := cfg.Velocity
	if l.hasVelocity {
		velocity = l.lastVelocity
	}
	if now.Sub(lastTime) > maxCatchUp {
		lastTime = now
	}

	position := l.lastPosition
	steps := int(math.Floor(millis(now.Sub(lastTime))))
	for range steps {
		force := -cfg.Tension * (position - to)
		damping := -cfg.Friction * velocity
		acceleration := (force + damping) / cfg.Mass
		velocity += acceleration / 1000
		position += velocity / 1000
	}

	overshooting := false
	if cfg.Clamp && cfg.Tension != 0 {
		if from < to {
			overshooting = position > to
		} else {
			overshooting = position < to
		}
	}
	still := math.Abs(velocity) <= cfg.Precision
	arrived := cfg.Tension == 0 || math.Abs(to-position) <= cfg.Precision

	l.lastVelocity, l.hasVelocity = velocity, true
	l.lastTime, l.hasTime = now, true
	return position, overshooting || (still && arrived)
}
