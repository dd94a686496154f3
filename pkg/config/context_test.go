package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_LookupDistinguishesAbsentFromEmpty(t *testing.T) {
	c := New(map[string]string{TenantID: ""})

	v, ok := c.Lookup(TenantID)
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = c.Lookup(ClientID)
	assert.False(t, ok)
}

func TestContext_IsImmutable(t *testing.T) {
	src := map[string]string{ClientID: "abc"}
	c := New(src)

	src[ClientID] = "changed"
	assert.Equal(t, "abc", c.Get(ClientID))

	values := c.Values()
	values[ClientID] = "changed"
	assert.Equal(t, "abc", c.Get(ClientID))
}

func TestContext_Secrets(t *testing.T) {
	c := New(map[string]string{
		ClientID:     "id",
		ClientSecret: "s3cr3t",
		"apiKey":     "",
	}, ClientSecret, "apiKey")

	assert.True(t, c.IsSecret(ClientSecret))
	assert.False(t, c.IsSecret(ClientID))
	assert.Equal(t, []string{"s3cr3t"}, c.SecretValues())
	assert.Equal(t, []string{"apiKey", ClientID, ClientSecret}, c.Names())
}
