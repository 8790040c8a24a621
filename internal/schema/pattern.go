package schema

import "strings"

// Direction selects how a relationship fragment is rendered.
type Direction int

const (
	// Outgoing renders -[v:TYPE]->.
	Outgoing Direction = iota

	// Incoming renders <-[v:TYPE]-.
	Incoming

	// Undirected renders -[v:TYPE]-.
	Undirected
)

// FilterPair binds a property key to a query parameter reference inside
// an inline node filter. Pairs render in the order supplied; keeping
// parameter names unique within one query is the caller's job.
type FilterPair struct {
	Key   string
	Param string
}

// NodePattern renders a node fragment for the descriptor: (v:L1:L2) or,
// with an inline filter, (v:L1:L2 {k: $p, k2: $p2}). Label order follows
// the descriptor's deterministic order; an empty variable renders an
// anonymous node.
func NodePattern(d *Descriptor, variable string, filter ...FilterPair) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(variable)
	for _, label := range d.Labels {
		b.WriteByte(':')
		b.WriteString(label)
	}
	if len(filter) > 0 {
		b.WriteString(" {")
		for i, fp := range filter {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fp.Key)
			b.WriteString(": $")
			b.WriteString(fp.Param)
		}
		b.WriteByte('}')
	}
	b.WriteByte(')')
	return b.String()
}

// RelationshipPattern renders a relationship fragment carrying exactly
// one type token: -[v:TYPE]->, <-[v:TYPE]- or -[v:TYPE]- depending on
// direction. relType must come from a package-level relation constant,
// never from external input.
func RelationshipPattern(relType, variable string, dir Direction) string {
	var b strings.Builder
	if dir == Incoming {
		b.WriteByte('<')
	}
	b.WriteString("-[")
	b.WriteString(variable)
	b.WriteByte(':')
	b.WriteString(relType)
	b.WriteString("]-")
	if dir == Outgoing {
		b.WriteByte('>')
	}
	return b.String()
}
