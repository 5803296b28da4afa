// Package config loads the component configuration from the data directory and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/rdbms/shared"
	"github.com/relloyd/hptransform/transform"
)

// FileNotFoundError denotes failing to find the configuration file.
type FileNotFoundError struct {
	name string
}

func (f FileNotFoundError) Error() string {
	return fmt.Sprintf("config file %q not found", f.name)
}

// Config is the content of config.json.
type Config struct {
	Action     string     `mapstructure:"action"`
	Parameters Parameters `mapstructure:"parameters"`
	Storage    Storage    `mapstructure:"storage"`
}

type Parameters struct {
	Db     Db                `mapstructure:"db"`
	Blocks []transform.Block `mapstructure:"blocks"`
}

// Db holds the database credentials. Port may be supplied as a string or a number.
// Raw keeps the node as configured so its values can be handed on to the jobs unchanged.
type Db struct {
	Host     string                 `mapstructure:"host"`
	Port     string                 `mapstructure:"port"`
	Database string                 `mapstructure:"database"`
	Schema   string                 `mapstructure:"schema"`
	User     string                 `mapstructure:"user"`
	Password string                 `mapstructure:"#password"`
	Raw      map[string]interface{} `mapstructure:"-"`
}

type Storage struct {
	Input struct {
		Tables []InputTable `mapstructure:"tables"`
	} `mapstructure:"input"`
	Output struct {
		Tables []OutputTable `mapstructure:"tables"`
	} `mapstructure:"output"`
}

// InputTable is a table mapped into the transformation.
// Raw keeps the mapping exactly as configured so it can be handed on to the writer.
type InputTable struct {
	Source      string                 `mapstructure:"source"`
	Destination string                 `mapstructure:"destination"`
	ColumnTypes []ColumnType           `mapstructure:"column_types"`
	Raw         map[string]interface{} `mapstructure:"-"`
}

type ColumnType struct {
	Source                   string `mapstructure:"source"`
	Destination              string `mapstructure:"destination"`
	Type                     string `mapstructure:"type"`
	ConvertEmptyValuesToNull bool   `mapstructure:"convert_empty_values_to_null"`
	Length                   string `mapstructure:"length"`
}

// OutputTable is a table expected to exist in the database once the scripts have run.
type OutputTable struct {
	Source      string `mapstructure:"source"`
	Destination string `mapstructure:"destination"`
}

// GetAction returns the configured action, defaulting to run.
func (c *Config) GetAction() string {
	if c.Action == "" {
		return constants.ActionRun
	}
	return c.Action
}

// GetConnectionDetails returns the credentials used to open a database session.
func (c *Config) GetConnectionDetails() *shared.ConnectionDetails {
	return &shared.ConnectionDetails{
		Host:     c.Parameters.Db.Host,
		Port:     c.Parameters.Db.Port,
		Database: c.Parameters.Db.Database,
		Schema:   c.Parameters.Db.Schema,
		User:     c.Parameters.Db.User,
		Password: c.Parameters.Db.Password,
	}
}

// GetDbParameters returns the db node passed to the writer and extractor jobs.
func (c *Config) GetDbParameters(withSchema bool) map[string]interface{} {
	var port interface{} = c.Parameters.Db.Port
	if v, ok := c.Parameters.Db.Raw["port"]; ok { // pass on the port as configured, string or number
		port = v
	}
	m := map[string]interface{}{
		"host":      c.Parameters.Db.Host,
		"port":      port,
		"database":  c.Parameters.Db.Database,
		"user":      c.Parameters.Db.User,
		"#password": c.Parameters.Db.Password,
	}
	if withSchema {
		m["schema"] = c.Parameters.Db.Schema
	}
	return m
}

// LoadFile reads config.json, or a YAML file of the same shape, from dataDir.
func LoadFile(dataDir string) (*Config, error) {
	fileName := filepath.Join(dataDir, constants.ConfigFileName)
	b, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, hperrors.WrapApplicationError(err, "%v", FileNotFoundError{fileName})
		}
		return nil, hperrors.WrapApplicationError(err, "error reading config file %v: %v", fileName, err)
	}
	return Parse(b)
}

// Parse validates and decodes the supplied JSON or YAML document.
func Parse(b []byte) (*Config, error) {
	j, err := yaml.YAMLToJSON(b) // JSON is YAML, so this handles both.
	if err != nil {
		return nil, hperrors.WrapUserError(err, "Invalid configuration: %v", err)
	}
	raw := make(map[string]interface{})
	if err = json.Unmarshal(j, &raw); err != nil {
		return nil, hperrors.WrapUserError(err, "Invalid configuration: %v", err)
	}
	if err = Validate(raw); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err = decode(raw, cfg); err != nil {
		return nil, hperrors.WrapUserError(err, "Invalid configuration: %v", err)
	}
	// Keep the db node and each input mapping as supplied.
	cfg.Parameters.Db.Raw, _ = lookup(raw, "parameters", "db").(map[string]interface{})
	if tables, ok := lookup(raw, "storage", "input", "tables").([]interface{}); ok {
		for i := range cfg.Storage.Input.Tables {
			if i < len(tables) {
				cfg.Storage.Input.Tables[i].Raw, _ = tables[i].(map[string]interface{})
			}
		}
	}
	return cfg, nil
}

func decode(in interface{}, out interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // ports and lengths may be numbers
		Result:           out,
	})
	if err != nil {
		return err
	}
	return d.Decode(in)
}

// lookup returns the value at the path of keys in m, or nil.
func lookup(m map[string]interface{}, keys ...string) interface{} {
	var v interface{} = m
	for _, k := range keys {
		mm, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		v = mm[k]
	}
	return v
}
