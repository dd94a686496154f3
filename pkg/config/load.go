package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strings"
	"unicode"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultEnvFile is read when present; a missing default file is not an error.
	DefaultEnvFile = ".env"

	// EnvPrefix maps MLDEPLOY_COMPUTE_NAME to the name computeName.
	EnvPrefix = "MLDEPLOY_"
)

// EnvBinding maps an environment variable to a configuration name.
type EnvBinding struct {
	Env  string
	Name string
}

// DefaultEnvBindings are the environment variables the CI workflow and the
// service principal setup export. Later bindings win over earlier ones.
var DefaultEnvBindings = []EnvBinding{
	{Env: "AZURE_SUBSCRIPTION", Name: SubscriptionID},
	{Env: "AZURE_SUBSCRIPTION_ID", Name: SubscriptionID},
	{Env: "AZURE_RESOURCE_GROUP", Name: ResourceGroup},
	{Env: "AZUREML_WORKSPACE_NAME", Name: WorkspaceName},
	{Env: "AZURE_ML_WORKSPACE", Name: WorkspaceName},
	{Env: "AZURE_TENANT_ID", Name: TenantID},
	{Env: "AZURE_CLIENT_ID", Name: ClientID},
	{Env: "AZURE_CLIENT_SECRET", Name: ClientSecret},
}

// Loader assembles a Context from layered sources, lowest precedence first:
// defaults, settings file, .env file, process environment.
type Loader struct {
	// EnvFile is the dotenv file to read. Empty means DefaultEnvFile, optional.
	EnvFile string
	// SettingsFile is an optional flat YAML file of named values.
	SettingsFile string
	// Environ returns the process environment. Defaults to os.Environ.
	Environ func() []string
	// Bindings defaults to DefaultEnvBindings.
	Bindings []EnvBinding
	// SecretNames defaults to DefaultSecretNames.
	SecretNames []string
}

// Load builds the Context. The process environment is only read, never modified.
func (l Loader) Load(defaults map[string]string) (Context, error) {
	values := MergeContext(defaults)

	if l.SettingsFile != "" {
		settings, err := LoadSettingsFile(l.SettingsFile)
		if err != nil {
			return Context{}, err
		}
		values = MergeContext(values, settings)
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return Context{}, err
	}
	values = MergeContext(values, l.bind(dotenv))

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	values = MergeContext(values, l.bind(parseEnviron(environ())))

	secrets := l.SecretNames
	if secrets == nil {
		secrets = DefaultSecretNames
	}
	return New(values, secrets...), nil
}

func (l Loader) readEnvFile() (map[string]string, error) {
	filename := l.EnvFile
	if filename == "" {
		filename = DefaultEnvFile
	}

	env, err := godotenv.Read(filename)
	if err != nil {
		if l.EnvFile == "" && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no .env file found")
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", filename, err)
	}

	slog.Debug("using env file", "filename", filename, "count", len(env))
	return env, nil
}

func (l Loader) bind(env map[string]string) map[string]string {
	bindings := l.Bindings
	if bindings == nil {
		bindings = DefaultEnvBindings
	}

	out := make(map[string]string)
	for key, value := range env {
		if name, ok := strings.CutPrefix(key, EnvPrefix); ok && name != "" {
			out[envNameToKey(name)] = value
		}
	}
	for _, b := range bindings {
		if value, ok := env[b.Env]; ok {
			out[b.Name] = value
		}
	}
	return out
}

func parseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// envNameToKey converts COMPUTE_NAME to computeName.
func envNameToKey(name string) string {
	var b strings.Builder
	upper := false
	for _, r := range strings.ToLower(name) {
		if r == '_' {
			upper = b.Len() > 0
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LoadSettingsFile reads a flat YAML mapping of names to scalar values.
func LoadSettingsFile(filename string) (map[string]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	settings := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			settings[k] = ""
		case map[string]any, []any:
			return nil, fmt.Errorf("settings file %s: %q must be a scalar", filename, k)
		default:
			settings[k] = fmt.Sprint(v)
		}
	}
	return settings, nil
}

// MergeContext performs a shallow merge of the given layers.
// Keys in later layers override keys in earlier ones.
func MergeContext(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}
	return merged
}
