package ref

// Ref is a weak handle to a ship: a 32-bit slot index in the lower bits and
// a 32-bit generation in the upper bits. The generation increments when the
// slot is released, so a Ref held across a ship's destruction simply stops
// resolving instead of pointing at whatever reuses the slot.
type Ref uint64

func newRef(index uint32, generation uint32) Ref {
	return Ref(uint64(generation)<<32 | uint64(index))
}

func (r Ref) Index() uint32      { return uint32(r) }
func (r Ref) Generation() uint32 { return uint32(r >> 32) }
func (r Ref) IsZero() bool       { return r == 0 }

// Pool allocates refs with generational indices and a free list.
// Slot 0 is never handed out so that the zero Ref always means "no ship".
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 1, 1024),
		freeList:    make([]uint32, 0, 256),
		nextIndex:   1,
	}
}

func (p *Pool) Acquire() Ref {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return newRef(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return newRef(idx, p.generations[idx])
}

func (p *Pool) Alive(r Ref) bool {
	idx := r.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == r.Generation()
}

func (p *Pool) Release(r Ref) {
	idx := r.Index()
	if idx == 0 || idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != r.Generation() {
		return // already released (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
