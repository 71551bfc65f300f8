package domain

// Page is a 1-based page request
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to sane values
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}
