package invoker

import (
	"slices"
	"strings"
)

// Mask replaces redacted values.
const Mask = "****"

// Redactor masks known secret values in text. The zero value and a nil
// Redactor redact nothing.
type Redactor struct {
	secrets  []string
	replacer *strings.Replacer
}

// NewRedactor creates a Redactor for the given secrets. Empty values are ignored.
func NewRedactor(secrets ...string) *Redactor {
	r := &Redactor{}
	for _, s := range secrets {
		r.Add(s)
	}
	return r
}

// Add registers another secret value.
func (r *Redactor) Add(secret string) {
	if secret == "" || slices.Contains(r.secrets, secret) {
		return
	}
	r.secrets = append(r.secrets, secret)

	// Longest first so a secret containing another is masked whole.
	sorted := slices.Clone(r.secrets)
	slices.SortFunc(sorted, func(a, b string) int { return len(b) - len(a) })

	pairs := make([]string, 0, 2*len(sorted))
	for _, s := range sorted {
		pairs = append(pairs, s, Mask)
	}
	r.replacer = strings.NewReplacer(pairs...)
}

// Redact returns s with every registered secret replaced by Mask.
func (r *Redactor) Redact(s string) string {
	if r == nil || r.replacer == nil {
		return s
	}
	return r.replacer.Replace(s)
}

// Preview shows the first few characters of a secret followed by an ellipsis.
func Preview(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return Mask
	}
	return secret[:visible] + "…"
}
