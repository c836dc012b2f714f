// Package identity merges and cleans the fields extracted from the front and
// back of an Aadhaar card into one trusted customer record. Everything here is
// pure text manipulation; the extraction service itself lives in
// infrastructure.
package identity

import (
	"fmt"
	"strings"

	"github.com/minatoent/backoffice-api/internal/domain"
)

// Card sides an extraction can come from.
const (
	SourceFront = "front"
	SourceBack  = "back"
)

// FieldSet is the raw result of one extraction call for one side of the card.
// Values are untrusted model output: any of them may be empty, a placeholder
// echo ("string", "N/A", ...) or malformed.
type FieldSet struct {
	Source        string
	AadhaarNumber string
	Name          string
	Address       string
	Mobile        string
	DateOfBirth   string
	Gender        string
	ParentName    string
}

// ReconciledRecord is the merged, validated customer record. Notes carries
// one line per dropped field so the operator can see what was discarded.
type ReconciledRecord struct {
	AadhaarNumber string // exactly 12 digits, no separators
	Name          string
	Address       string
	Mobile        string // exactly 10 digits or empty ("not captured")
	DateOfBirth   string
	Gender        string
	ParentName    string
	Notes         []string
}

// Model placeholder echoes that must never propagate into a record.
var placeholders = map[string]struct{}{
	"string": {}, "number": {}, "text": {}, "none": {}, "null": {},
	"undefined": {}, "n/a": {}, "na": {},
}

// validValue reports whether a raw extracted value carries real content.
func validValue(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return false
	}
	_, isPlaceholder := placeholders[v]
	return !isPlaceholder
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Merge combines the front and back extractions into one record. Back fields
// form the base; any valid front value overlays it, since the front of the
// card carries the more reliable personal details. Either side may be nil.
//
// The merge fails with ErrReconciliation unless at least one of name or
// Aadhaar number survives validation; the error message lists the fields that
// WERE found so the operator can decide whether to retry or type the rest in.
func Merge(front, back *FieldSet) (ReconciledRecord, error) {
	var rec ReconciledRecord

	pick := func(frontVal, backVal string) string {
		if validValue(frontVal) {
			return strings.TrimSpace(frontVal)
		}
		if validValue(backVal) {
			return strings.TrimSpace(backVal)
		}
		return ""
	}

	f := front
	if f == nil {
		f = &FieldSet{}
	}
	b := back
	if b == nil {
		b = &FieldSet{}
	}

	rec.Name = pick(f.Name, b.Name)
	rec.Address = pick(f.Address, b.Address)
	rec.DateOfBirth = pick(f.DateOfBirth, b.DateOfBirth)
	rec.Gender = pick(f.Gender, b.Gender)
	rec.ParentName = pick(f.ParentName, b.ParentName)

	// Aadhaar: strip separators, accept only an exact 12-digit result.
	if raw := pick(f.AadhaarNumber, b.AadhaarNumber); raw != "" {
		digits := DigitsOnly(raw)
		if len(digits) == 12 {
			rec.AadhaarNumber = digits
		} else {
			rec.Notes = append(rec.Notes,
				fmt.Sprintf("aadhaar number %q dropped: %d digits after cleanup, want 12", raw, len(digits)))
		}
	}

	// Mobile: exactly 10 digits, or empty meaning "not captured".
	if raw := pick(f.Mobile, b.Mobile); raw != "" {
		digits := DigitsOnly(raw)
		if len(digits) == 10 {
			rec.Mobile = digits
		} else {
			rec.Notes = append(rec.Notes,
				fmt.Sprintf("mobile number %q dropped: %d digits after cleanup, want 10", raw, len(digits)))
		}
	}

	if rec.Name == "" && rec.AadhaarNumber == "" {
		return rec, fmt.Errorf("%w: need a name or an aadhaar number; found only [%s]",
			domain.ErrReconciliation, strings.Join(rec.foundFields(), ", "))
	}
	return rec, nil
}

// foundFields lists which fields carry a value, for failure diagnostics.
func (r ReconciledRecord) foundFields() []string {
	var found []string
	for _, f := range []struct{ name, val string }{
		{"name", r.Name},
		{"aadhaar", r.AadhaarNumber},
		{"address", r.Address},
		{"mobile", r.Mobile},
		{"dob", r.DateOfBirth},
		{"gender", r.Gender},
		{"parent", r.ParentName},
	} {
		if f.val != "" {
			found = append(found, f.name)
		}
	}
	if len(found) == 0 {
		return []string{"nothing"}
	}
	return found
}

// FormatAadhaar renders a clean 12-digit number as "XXXX XXXX XXXX" for
// display on bills. Anything that is not 12 digits is returned unchanged.
func FormatAadhaar(n string) string {
	if len(n) != 12 {
		return n
	}
	return n[:4] + " " + n[4:8] + " " + n[8:]
}
