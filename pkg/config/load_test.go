package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environ(kv ...string) func() []string {
	return func() []string { return kv }
}

func TestLoader_Precedence(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("resourceGroup: from-settings\nworkspaceName: ws-settings\ncomputeMaxInstances: 8\n"), 0o600))
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("AZURE_CLIENT_ID=from-dotenv\nAZURE_TENANT_ID=tenant-dotenv\nMLDEPLOY_WORKSPACE_NAME=ws-dotenv\n"), 0o600))

	l := Loader{
		EnvFile:      envFile,
		SettingsFile: settings,
		Environ:      environ("AZURE_CLIENT_ID=from-env", "AZURE_CLIENT_SECRET=s3cr3t", "UNRELATED=1"),
	}

	c, err := l.Load(map[string]string{ResourceGroup: "default", "computeName": "cpu-cluster"})
	require.NoError(t, err)

	assert.Equal(t, "from-settings", c.Get(ResourceGroup))
	assert.Equal(t, "ws-dotenv", c.Get(WorkspaceName))
	assert.Equal(t, "cpu-cluster", c.Get("computeName"))
	assert.Equal(t, "8", c.Get("computeMaxInstances"))
	assert.Equal(t, "from-env", c.Get(ClientID))
	assert.Equal(t, "tenant-dotenv", c.Get(TenantID))
	assert.True(t, c.IsSecret(ClientSecret))
	assert.Equal(t, []string{"s3cr3t"}, c.SecretValues())

	_, ok := c.Lookup("UNRELATED")
	assert.False(t, ok, "unbound environment variables are not configuration")
}

func TestLoader_DefaultEnvFileOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Loader{Environ: environ()}.Load(nil)
	require.NoError(t, err)
	assert.Empty(t, c.Names())
}

func TestLoader_ExplicitEnvFileMissing(t *testing.T) {
	_, err := Loader{EnvFile: "/nonexistent/.env", Environ: environ()}.Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading env file")
}

func TestLoader_EmptyEnvValueIsPresent(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Loader{Environ: environ("AZURE_TENANT_ID=")}.Load(nil)
	require.NoError(t, err)

	v, ok := c.Lookup(TenantID)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestLoader_SubscriptionAliases(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Loader{Environ: environ("AZURE_SUBSCRIPTION=legacy", "AZURE_SUBSCRIPTION_ID=preferred")}.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "preferred", c.Get(SubscriptionID))
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr string
	}{
		{"scalars", "a: x\nb: 2\nc: true\n", map[string]string{"a": "x", "b": "2", "c": "true"}, ""},
		{"null value", "a:\n", map[string]string{"a": ""}, ""},
		{"nested map", "a:\n  b: c\n", nil, "must be a scalar"},
		{"list", "a: [1, 2]\n", nil, "must be a scalar"},
		{"invalid yaml", "{{invalid", nil, "parsing settings file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(f, []byte(tt.content), 0o600))

			got, err := LoadSettingsFile(f)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadSettingsFile_NotFound(t *testing.T) {
	_, err := LoadSettingsFile("/nonexistent/settings.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading settings file")
}

func TestMergeContext(t *testing.T) {
	global := map[string]string{"a": "1", "b": "2"}
	local := map[string]string{"b": "override", "c": "3"}

	merged := MergeContext(global, local)

	assert.Equal(t, map[string]string{"a": "1", "b": "override", "c": "3"}, merged)
	assert.Equal(t, "2", global["b"], "inputs are not modified")
}

func TestEnvNameToKey(t *testing.T) {
	tests := map[string]string{
		"COMPUTE_NAME":          "computeName",
		"WORKSPACE":             "workspace",
		"COMPUTE_MAX_INSTANCES": "computeMaxInstances",
		"_LEADING":              "leading",
	}
	for in, want := range tests {
		assert.Equal(t, want, envNameToKey(in), in)
	}
}
