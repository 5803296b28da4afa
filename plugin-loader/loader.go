package plugin_loader

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"strings"

	"github.com/pkg/errors"
	"github.com/relloyd/hptransform/constants"
)

const symbolName = "Exports"

// Locations are searched for plugins after the directory in HP_PLUGIN_DIR and the directory of the executable.
var Locations = []string{
	"/usr/local/lib",
}

// SearchPath returns the directories searched for plugins, in order.
func SearchPath() []string {
	var dirs []string
	if l := os.Getenv(constants.EnvVarPluginDir); l != "" {
		dirs = append(dirs, l)
	}
	if ex, err := os.Executable(); err == nil {
		if exReal, err := filepath.EvalSymlinks(ex); err == nil {
			dirs = append(dirs, filepath.Dir(exReal))
		}
	}
	return append(dirs, Locations...)
}

// LoadPluginExports opens the first plugin called pluginName found on the search path and returns its
// Exports symbol.
func LoadPluginExports(pluginName string) (interface{}, error) {
	var errs []string
	for _, l := range SearchPath() { // for each location...
		fullPath := filepath.Join(l, pluginName)
		plug, err := plugin.Open(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%v: %v", fullPath, err))
			continue
		}
		t, err := plug.Lookup(symbolName)
		if err != nil {
			return nil, errors.Wrapf(err, "symbol %v not found in plugin %v", symbolName, fullPath)
		}
		return t, nil
	}
	// Build one error string from all errors of format: (<n>) <error>
	var errTxt []string
	for i, e := range errs {
		errTxt = append(errTxt, fmt.Sprintf("(%v) %v", i+1, e))
	}
	return nil, fmt.Errorf("unable to load plugin %v (set %v to the directory containing it) due to the following error(s): %v",
		pluginName, constants.EnvVarPluginDir, strings.Join(errTxt, " "))
}
