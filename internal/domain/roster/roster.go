package roster

// Roster is the season's full competitor list, including deactivated
// members kept for history.
type Roster struct {
	members []*Competitor
	byName  map[string]*Competitor
}

// New builds a roster. Duplicate names are rejected so the name-keyed
// qualification ledger can never alias two competitors.
func New(members ...*Competitor) (*Roster, error) {
	if len(members) == 0 {
		return nil, ErrEmptyRoster
	}
	r := &Roster{
		members: make([]*Competitor, 0, len(members)),
		byName:  make(map[string]*Competitor, len(members)),
	}
	for _, m := range members {
		if err := r.Add(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a competitor, rejecting duplicate names.
func (r *Roster) Add(c *Competitor) error {
	if _, exists := r.byName[c.Name]; exists {
		return ErrDuplicateName
	}
	r.members = append(r.members, c)
	r.byName[c.Name] = c
	return nil
}

// Members returns every competitor in insertion order.
func (r *Roster) Members() []*Competitor {
	out := make([]*Competitor, len(r.members))
	copy(out, r.members)
	return out
}

// ActiveMembers returns only competitors still eligible for contests.
func (r *Roster) ActiveMembers() []*Competitor {
	out := make([]*Competitor, 0, len(r.members))
	for _, m := range r.members {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// Find returns the competitor with the given name.
func (r *Roster) Find(name string) (*Competitor, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, ErrUnknownCompetitor
	}
	return c, nil
}

// Len returns the total roster size, active or not.
func (r *Roster) Len() int { return len(r.members) }
