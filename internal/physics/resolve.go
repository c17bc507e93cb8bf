package physics

// ResolveBodyBody returns the post-collision velocities of a perfectly
// elastic head-on collision between masses m1 and m2 moving at u1 and u2.
//
// Each product is converted explicitly so the compiler cannot fuse it into a
// multiply-add; collision counts then match bit for bit across platforms.
func ResolveBodyBody(u1, m1, u2, m2 float64) (v1, v2 float64, err error) {
	total := m1 + m2
	if total == 0 {
		return 0, 0, ErrDivisionHazard
	}
	v1 = (float64((m1-m2)*u1) + float64(2*m2*u2)) / total
	v2 = (float64((m2-m1)*u2) + float64(2*m1*u1)) / total
	return v1, v2, nil
}

// ResolveBodyWall reflects b off w. The wall's own velocity never changes.
func ResolveBodyWall(w Wall, b *Body) {
	w.Reflect(b)
}
