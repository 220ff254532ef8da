package sim

// Integrate advances every body by its velocity over dt seconds.
// Only Pos is written.
func Integrate(bodies []Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
	}
}

// Reflect negates the velocity component of every body whose extent meets or
// crosses the matching viewport edge. Axes are checked independently, so a
// body leaving through a corner flips both. Only Vel is written.
func Reflect(bodies []Body, w, h float64, test OverlapTest) {
	halfW, halfH := w/2, h/2
	for i := range bodies {
		b := &bodies[i]
		half := test.HalfExtent(b.Size)

		right, left := b.Pos.X+half, b.Pos.X-half
		top, bottom := b.Pos.Y+half, b.Pos.Y-half

		if right >= halfW || left <= -halfW {
			b.Vel.X = -b.Vel.X
		}
		if top >= halfH || bottom <= -halfH {
			b.Vel.Y = -b.Vel.Y
		}
	}
}

// Collide scans every unordered pair (i, j), i < j, once and returns the
// indices to respawn in ascending order. Only the first-indexed body of an
// overlapping pair is selected, and each index appears at most once no matter
// how many partners it touches. bodies is only read.
func Collide(bodies []Body, test OverlapTest) []int {
	var targets []int
	for i := 0; i < len(bodies); i++ {
		scheduled := false
		for j := i + 1; j < len(bodies); j++ {
			if test.Overlaps(bodies[i], bodies[j]) && !scheduled {
				targets = append(targets, i)
				scheduled = true
			}
		}
	}
	return targets
}

// PairCount returns the number of unordered pairs among n bodies.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
