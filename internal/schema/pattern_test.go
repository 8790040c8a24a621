package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodePattern(t *testing.T) {
	tests := []struct {
		name     string
		d        *Descriptor
		variable string
		filter   []FilterPair
		want     string
	}{
		{
			name:     "bound variable no filter",
			d:        Describe(reflect.TypeOf(role{})),
			variable: "p",
			want:     "(p:role)",
		},
		{
			name:     "anonymous node",
			d:        Describe(reflect.TypeOf(role{})),
			variable: "",
			want:     "(:role)",
		},
		{
			name:     "label hierarchy in descriptor order",
			d:        Describe(reflect.TypeOf(account{})),
			variable: "u",
			want:     "(u:account:principal)",
		},
		{
			name:     "inline filter in supplied order",
			d:        Describe(reflect.TypeOf(account{})),
			variable: "u",
			filter: []FilterPair{
				{Key: "userName", Param: "name"},
				{Key: "securityStamp", Param: "stamp"},
			},
			want: "(u:account:principal {userName: $name, securityStamp: $stamp})",
		},
		{
			name:     "empty descriptor renders no constraint",
			d:        Describe(nil),
			variable: "n",
			want:     "(n)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NodePattern(tt.d, tt.variable, tt.filter...))
		})
	}
}

func TestRelationshipPattern(t *testing.T) {
	tests := []struct {
		name     string
		relType  string
		variable string
		dir      Direction
		want     string
	}{
		{name: "outgoing", relType: "HAS_CLAIM", variable: "r", dir: Outgoing, want: "-[r:HAS_CLAIM]->"},
		{name: "incoming", relType: "IN_ROLE", variable: "r", dir: Incoming, want: "<-[r:IN_ROLE]-"},
		{name: "undirected", relType: "HAS_LOGIN", variable: "r", dir: Undirected, want: "-[r:HAS_LOGIN]-"},
		{name: "anonymous outgoing", relType: "IN_ROLE", variable: "", dir: Outgoing, want: "-[:IN_ROLE]->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelationshipPattern(tt.relType, tt.variable, tt.dir))
		})
	}
}
