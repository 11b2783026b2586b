package views

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/eringen/worksite/content"
)

// OpenParam is the query parameter carrying open disclosure ids.
const OpenParam = "open"

// DisclosureKey selects how a service's disclosure identity is derived.
type DisclosureKey int

const (
	// DisclosureKeyIndex uses the service's 1-based position.
	DisclosureKeyIndex DisclosureKey = iota
	// DisclosureKeyTitle uses the service title. Services sharing a title
	// share one disclosure.
	DisclosureKeyTitle
)

// ServiceID returns the disclosure identity of the service at index i.
func ServiceID(key DisclosureKey, i int, s content.Service) string {
	if key == DisclosureKeyTitle {
		return s.Title
	}
	return strconv.Itoa(i + 1)
}

// DisclosureState is the capability the composer hands to service cards.
// Open and Clone let it derive the link target of each card without
// touching the caller's state.
type DisclosureState interface {
	IsOpen(id string) bool
	Toggle(id string)
	CloseAll()
	Open() []string
	Clone() DisclosureState
}

// Disclosures tracks which service popovers are open. The zero value has
// every disclosure closed.
type Disclosures struct {
	// SingleOpen closes every other disclosure when one is opened.
	SingleOpen bool

	open map[string]bool
}

// NewDisclosures returns a state with ids opened in order.
func NewDisclosures(singleOpen bool, ids ...string) *Disclosures {
	d := &Disclosures{SingleOpen: singleOpen}
	for _, id := range ids {
		if id != "" && !d.IsOpen(id) {
			d.Toggle(id)
		}
	}
	return d
}

// ParseDisclosures reads the open ids from query values.
func ParseDisclosures(q url.Values, singleOpen bool) *Disclosures {
	return NewDisclosures(singleOpen, q[OpenParam]...)
}

// IsOpen reports whether the disclosure id is open.
func (d *Disclosures) IsOpen(id string) bool {
	if d == nil {
		return false
	}
	return d.open[id]
}

// Toggle flips the disclosure id between closed and open.
func (d *Disclosures) Toggle(id string) {
	if d.open == nil {
		d.open = make(map[string]bool)
	}
	if d.open[id] {
		delete(d.open, id)
		return
	}
	if d.SingleOpen {
		clear(d.open)
	}
	d.open[id] = true
}

// CloseAll closes every disclosure.
func (d *Disclosures) CloseAll() {
	clear(d.open)
}

// Open returns the open ids, sorted.
func (d *Disclosures) Open() []string {
	if d == nil {
		return nil
	}
	ids := make([]string, 0, len(d.open))
	for id := range d.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy with the same policy.
func (d *Disclosures) Clone() DisclosureState {
	if d == nil {
		return &Disclosures{}
	}
	return NewDisclosures(d.SingleOpen, d.Open()...)
}

// toggled returns a copy of s with id toggled, leaving s unchanged.
func toggled(s DisclosureState, id string) DisclosureState {
	c := s.Clone()
	c.Toggle(id)
	return c
}

// allClosed returns a copy of s with every disclosure closed.
func allClosed(s DisclosureState) DisclosureState {
	c := s.Clone()
	c.CloseAll()
	return c
}

// disclosureValues encodes the open ids of s as query values.
func disclosureValues(s DisclosureState) url.Values {
	v := url.Values{}
	for _, id := range s.Open() {
		v.Add(OpenParam, id)
	}
	return v
}

// domID turns a disclosure id into an HTML id token. Letters, digits and
// '-' are kept; every other byte becomes '_' plus two hex digits, so
// distinct ids stay distinct.
func domID(id string) string {
	var b strings.Builder
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}
