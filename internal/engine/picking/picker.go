package picking

// Picker casts one ray against every registered locator and reports the
// nearest hit. It holds locators by owner ID and never owns the meshes.
type Picker struct {
	order    []uint64
	locators map[uint64]*Locator
}

// NewPicker creates an empty picker.
func NewPicker() *Picker {
	return &Picker{locators: make(map[uint64]*Locator)}
}

// Add registers a locator under id, replacing any previous one.
func (p *Picker) Add(id uint64, l *Locator) {
	if _, ok := p.locators[id]; !ok {
		p.order = append(p.order, id)
	}
	p.locators[id] = l
}

// Remove drops the locator registered under id. Other registrations are
// unaffected.
func (p *Picker) Remove(id uint64) {
	if _, ok := p.locators[id]; !ok {
		return
	}
	delete(p.locators, id)
	for i, o := range p.order {
		if o == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Locator returns the locator registered under id.
func (p *Picker) Locator(id uint64) (*Locator, bool) {
	l, ok := p.locators[id]
	return l, ok
}

// Len returns the number of registered locators.
func (p *Picker) Len() int {
	return len(p.order)
}

// Pick returns the nearest hit across all registered meshes. On equal
// distances the earlier registration wins.
func (p *Picker) Pick(r Ray) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for _, id := range p.order {
		hit, ok := p.locators[id].IntersectRay(r)
		if !ok || (found && hit.Distance >= best.Distance) {
			continue
		}
		hit.Owner = id
		best = hit
		found = true
	}
	return best, found
}
