// Package config loads pubif.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/fatih/structtag"

	"github.com/ecordell/pubif/gate"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "pubif.toml"

// Config controls how declarations are recognized and expanded.
type Config struct {
	Attribute  string `toml:"attribute" default:"pub_if" desc:"attribute name that marks a declaration for expansion"`
	Visibility string `toml:"visibility" default:"pub" desc:"keyword that marks a declaration or member as visible"`
	Keyword    string `toml:"keyword" default:"struct" desc:"keyword that introduces a record declaration"`
	Guard      string `toml:"guard" default:"cfg" desc:"conditional compilation attribute emitted before each variant"`
	Negation   string `toml:"negation" default:"not" desc:"identifier that negates the condition in the second guard"`
	Strict     bool   `toml:"strict" default:"false" desc:"reject unrecognized tokens before the record keyword"`
	Workers    int    `toml:"workers" default:"4" desc:"files expanded concurrently"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	defaults.MustSet(&c)
	return c
}

// Load decodes the file at path on top of the defaults. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find loads path when it is set, otherwise FileName from dir when it
// exists, otherwise the defaults.
func Find(path, dir string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	candidate := filepath.Join(dir, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return Load(candidate)
	}
	return Default(), nil
}

// Validate reports empty names and a non-positive worker count.
func (c Config) Validate() error {
	for key, v := range map[string]string{
		"attribute":  c.Attribute,
		"visibility": c.Visibility,
		"keyword":    c.Keyword,
		"guard":      c.Guard,
		"negation":   c.Negation,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// GateOptions converts the configuration into expansion options.
func (c Config) GateOptions() []gate.Option {
	return []gate.Option{
		gate.WithVisibilityKeyword(c.Visibility),
		gate.WithRecordKeyword(c.Keyword),
		gate.WithGuardName(c.Guard),
		gate.WithNegation(c.Negation),
		gate.WithStrict(c.Strict),
	}
}

// Key documents one configuration key.
type Key struct {
	Name        string
	Default     string
	Description string
}

// Describe lists the configuration keys in declaration order.
func Describe() ([]Key, error) {
	typ := reflect.TypeOf(Config{})
	keys := make([]Key, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tags, err := structtag.Parse(string(field.Tag))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		name, err := tags.Get("toml")
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		k := Key{Name: name.Name}
		if def, err := tags.Get("default"); err == nil {
			k.Default = def.Name
		}
		if desc, err := tags.Get("desc"); err == nil {
			k.Description = desc.Value()
		}
		keys = append(keys, k)
	}
	return keys, nil
}
