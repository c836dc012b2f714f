package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatoent/backoffice-api/internal/domain"
	"github.com/minatoent/backoffice-api/internal/domain/identity"
)

func TestMerge_FrontWinsOnConflict(t *testing.T) {
	front := &identity.FieldSet{
		Source:  identity.SourceFront,
		Name:    "Nandu Singh",
		Address: "12 Station Road, Ranchi",
	}
	back := &identity.FieldSet{
		Source:  identity.SourceBack,
		Name:    "N Singh",
		Address: "Old Address, Somewhere",
		Gender:  "Male",
	}

	rec, err := identity.Merge(front, back)
	require.NoError(t, err)

	assert.Equal(t, "Nandu Singh", rec.Name, "front value wins on conflict")
	assert.Equal(t, "12 Station Road, Ranchi", rec.Address)
	assert.Equal(t, "Male", rec.Gender, "back fills in what front lacks")
}

func TestMerge_PlaceholdersNeverPropagate(t *testing.T) {
	front := &identity.FieldSet{
		Name:    "string", // model echoed the schema instead of extracting
		Address: "N/A",
		Gender:  "null",
	}
	back := &identity.FieldSet{
		Name:    "Nandu Singh",
		Address: "12 Station Road",
	}

	rec, err := identity.Merge(front, back)
	require.NoError(t, err)

	assert.Equal(t, "Nandu Singh", rec.Name)
	assert.Equal(t, "12 Station Road", rec.Address)
	assert.Empty(t, rec.Gender)
}

func TestMerge_AadhaarValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"clean 12 digits", "687480874343", "687480874343"},
		{"spaced groups", "6874 8087 4343", "687480874343"},
		{"hyphenated", "6874-8087-4343", "687480874343"},
		{"too short", "68748087", ""},
		{"too long", "6874808743431", ""},
		{"not a number", "not-a-number", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := identity.Merge(&identity.FieldSet{
				Name:          "Nandu Singh",
				AadhaarNumber: tt.raw,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.AadhaarNumber)
			if tt.want == "" && tt.raw != "" {
				assert.NotEmpty(t, rec.Notes, "dropped aadhaar must leave a note")
			}
		})
	}
}

func TestMerge_MobileValidation(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"9876543210", "9876543210"},
		{"+91 98765 43210", ""}, // 12 digits after cleanup, dropped
		{"98765", ""},
		{"", ""}, // empty means not captured, acceptable
	}
	for _, tt := range tests {
		rec, err := identity.Merge(&identity.FieldSet{
			Name:   "Nandu Singh",
			Mobile: tt.raw,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.Mobile, "raw %q", tt.raw)
	}
}

func TestMerge_FailsWithoutNameOrAadhaar(t *testing.T) {
	_, err := identity.Merge(&identity.FieldSet{
		Address: "12 Station Road, Ranchi",
		Gender:  "Male",
	}, nil)

	require.ErrorIs(t, err, domain.ErrReconciliation)
	// diagnostic must list what WAS found
	assert.Contains(t, err.Error(), "address")
	assert.Contains(t, err.Error(), "gender")
}

func TestMerge_BothSidesNil(t *testing.T) {
	_, err := identity.Merge(nil, nil)
	require.ErrorIs(t, err, domain.ErrReconciliation)
	assert.Contains(t, err.Error(), "nothing")
}

func TestFormatAadhaar(t *testing.T) {
	assert.Equal(t, "6874 8087 4343", identity.FormatAadhaar("687480874343"))
	assert.Equal(t, "12345", identity.FormatAadhaar("12345"), "non-12-digit input passes through")
}
