package config

import (
	"fmt"
	"strings"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/helper"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/rdbms/shared"
)

const rootPath = "root"

// Validate checks the raw configuration against the rules of its action.
// Messages name the missing node by its path, e.g. "root.parameters.blocks.0".
func Validate(raw map[string]interface{}) error {
	action, _ := raw["action"].(string)
	if action == "" {
		action = constants.ActionRun
	}
	switch action {
	case constants.ActionRun:
		return validateRun(raw)
	case constants.ActionTestConnection:
		return validateTestConnection(raw)
	default:
		return hperrors.NewUserError(`Unexpected action "%s"`, action)
	}
}

func validateRun(raw map[string]interface{}) error {
	params, err := requireMap(raw, rootPath, "parameters")
	if err != nil {
		return err
	}
	path := join(rootPath, "parameters")
	if _, err = requireMap(params, path, "db"); err != nil {
		return err
	}
	blocks, err := requireList(params, path, "blocks")
	if err != nil {
		return err
	}
	for i, b := range blocks {
		blockPath := join(path, "blocks", fmt.Sprint(i))
		block, err := asMap(b, blockPath)
		if err != nil {
			return err
		}
		if err = requireKey(block, blockPath, "name"); err != nil {
			return err
		}
		codes, err := requireList(block, blockPath, "codes")
		if err != nil {
			return err
		}
		for j, c := range codes {
			codePath := join(blockPath, "codes", fmt.Sprint(j))
			code, err := asMap(c, codePath)
			if err != nil {
				return err
			}
			if err = requireKey(code, codePath, "name"); err != nil {
				return err
			}
			if _, err = requireList(code, codePath, "script"); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTestConnection(raw map[string]interface{}) error {
	params, err := requireMap(raw, rootPath, "parameters")
	if err != nil {
		return err
	}
	dbPath := join(rootPath, "parameters", "db")
	db, err := requireMap(params, join(rootPath, "parameters"), "db")
	if err != nil {
		return err
	}
	for _, k := range []string{"host", "port", "database", "user", "#password"} {
		if err = requireKey(db, dbPath, k); err != nil {
			return err
		}
	}
	d := Db{}
	if err = decode(db, &d); err != nil {
		return hperrors.WrapUserError(err, "Invalid configuration for path %q: %v", dbPath, err)
	}
	c := shared.ConnectionDetails{Host: d.Host, Port: d.Port, Database: d.Database, User: d.User, Password: d.Password}
	if err = helper.ValidateStructIsPopulated(c); err != nil {
		return hperrors.WrapUserError(err, "Invalid configuration for path %q: %v", dbPath, err)
	}
	return nil
}

func join(parts ...string) string {
	return strings.Join(parts, ".")
}

func notConfigured(path string, key string) error {
	return hperrors.NewUserError(`The child config "%s" under "%s" must be configured.`, key, path)
}

func requireKey(m map[string]interface{}, path string, key string) error {
	if _, ok := m[key]; !ok {
		return notConfigured(path, key)
	}
	return nil
}

func requireMap(m map[string]interface{}, path string, key string) (map[string]interface{}, error) {
	v, ok := m[key]
	if !ok {
		return nil, notConfigured(path, key)
	}
	return asMap(v, join(path, key))
}

func requireList(m map[string]interface{}, path string, key string) ([]interface{}, error) {
	v, ok := m[key]
	if !ok {
		return nil, notConfigured(path, key)
	}
	l, ok := v.([]interface{})
	if !ok {
		return nil, invalidType(join(path, key), "array", v)
	}
	return l, nil
}

func asMap(v interface{}, path string) (map[string]interface{}, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, invalidType(path, "array", v)
	}
	return m, nil
}

func invalidType(path string, expected string, v interface{}) error {
	got := "null"
	switch v.(type) {
	case nil:
	case string:
		got = "string"
	case bool:
		got = "bool"
	case float64:
		got = "number"
	case []interface{}, map[string]interface{}:
		got = "array"
	default:
		got = fmt.Sprintf("%T", v)
	}
	return hperrors.NewUserError(`Invalid type for path "%s". Expected "%s", but got "%s".`, path, expected, got)
}
