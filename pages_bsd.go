//go:build unix && !linux

package memres

// Grow maps a new region, copies c into it and unmaps c.
func (p Pages) Grow(c Chunk, n int) (Chunk, error) {
	if c.IsNil() {
		return p.Create(n)
	}
	if n <= c.Len() {
		return c, nil
	}
	nc, err := p.Create(n)
	if err != nil {
		return Chunk{}, err
	}
	copy(nc.Bytes(), c.Bytes())
	p.Destroy(c)
	return nc, nil
}
