package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minatoent/backoffice-api/internal/domain/identity"
)

func TestCleanAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips administrative labels",
			in:   "House 4, Main Road, VTC: Ranchi, PO: Doranda, District: Ranchi, Jharkhand",
			want: "House 4, Main Road, Jharkhand",
		},
		{
			name: "strips embedded aadhaar number",
			in:   "House 4, 6874 8087 4343, Main Road, Ranchi",
			want: "House 4, Main Road, Ranchi",
		},
		{
			name: "collapses whitespace runs",
			in:   "House 4,   Main   Road ,  Ranchi",
			want: "House 4, Main Road, Ranchi",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.CleanAddress(tt.in))
		})
	}
}

func TestSplitAddress(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want1 string
		want2 string
	}{
		{"single part", "Ranchi", "Ranchi", ""},
		{"two parts", "House 4, Ranchi", "House 4,", "Ranchi"},
		{"four parts split at midpoint", "House 4, Main Road, Doranda, Ranchi", "House 4, Main Road,", "Doranda, Ranchi"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l1, l2 := identity.SplitAddress(tt.in)
			assert.Equal(t, tt.want1, l1)
			assert.Equal(t, tt.want2, l2)
		})
	}
}
