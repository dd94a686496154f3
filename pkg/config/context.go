// Package config builds the immutable configuration context a run is
// validated and executed against.
package config

import (
	"maps"
	"slices"
)

const (
	SubscriptionID = "subscriptionId"
	ResourceGroup  = "resourceGroup"
	WorkspaceName  = "workspaceName"
	TenantID       = "tenantId"
	ClientID       = "clientId"
	ClientSecret   = "clientSecret"
)

// DefaultSecretNames are the values that must never appear in logs or reports.
var DefaultSecretNames = []string{ClientSecret}

// Context is an immutable set of named configuration values.
// A name that was never supplied is absent; Lookup reports it with ok=false,
// which is distinct from a name supplied with an empty value.
type Context struct {
	values  map[string]string
	secrets map[string]bool
}

// New copies values into a Context. secretNames marks values that are redacted on output.
func New(values map[string]string, secretNames ...string) Context {
	c := Context{
		values:  make(map[string]string, len(values)),
		secrets: make(map[string]bool, len(secretNames)),
	}
	maps.Copy(c.values, values)
	for _, name := range secretNames {
		c.secrets[name] = true
	}
	return c
}

// Lookup returns the value for name and whether it was supplied at all.
func (c Context) Lookup(name string) (string, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Get returns the value for name, or "" when absent.
func (c Context) Get(name string) string {
	return c.values[name]
}

// IsSecret reports whether name holds a secret value.
func (c Context) IsSecret(name string) bool {
	return c.secrets[name]
}

// Names returns every supplied name in sorted order.
func (c Context) Names() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Values returns a copy of all supplied values.
func (c Context) Values() map[string]string {
	return maps.Clone(c.values)
}

// SecretValues returns the non-empty values of secret names.
func (c Context) SecretValues() []string {
	var out []string
	for name := range c.secrets {
		if v := c.values[name]; v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
