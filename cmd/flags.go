package cmd

import (
	"fmt"
	"strings"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/helper"
	"github.com/relloyd/hptransform/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type cliFlag struct {
	name      string // name of flag
	shortHand string // single character name for the flag
	envVar    string // environment variable that supplies the default value
	val       string // default value used when the environment variable is not set
	desc      string // description of the flag; the long text
}

type cliFlags map[string]cliFlag

var switches = cliFlags{
	"data-dir": cliFlag{name: "data-dir", shortHand: "d", envVar: constants.EnvVarDataDir, val: constants.DataDirDefault,
		desc: "The data directory containing config.json"},
	"log-level": cliFlag{name: "log-level", shortHand: "l", envVar: constants.EnvVarLogLevel, val: "info",
		desc: "Log level: \"error | warn | info | debug | trace\""},
	"log-format": cliFlag{name: "log-format", envVar: flagNameToEnvVar("log-format"), val: logger.FormatAuto,
		desc: "Log format: \"text | json | auto\" where auto writes text to a terminal and JSON otherwise"},
}

var globalFlags struct {
	dataDir   string
	logLevel  string
	logFormat string
}

// addPersistentFlag registers the named switch on c, defaulting to the value of its environment variable.
func (f cliFlags) addPersistentFlag(c *cobra.Command, p *string, name string) {
	sw := f.getCliFlag(name)
	c.PersistentFlags().StringVarP(p, sw.name, sw.shortHand, sw.val, sw.desc)
}

// getCliFlag returns the registered switch with its default taken from the environment where set.
func (f cliFlags) getCliFlag(name string) cliFlag {
	s, ok := f[name]
	if !ok {
		panic(fmt.Sprintf("unregistered CLI flag, %q", name))
	}
	if s.envVar != "" {
		s.val = helper.ReadValueFromEnvWithDefault(s.envVar, s.val)
	}
	return s
}

// flagNameToEnvVar will form a sanitised environment variable name using constants.EnvVarPrefix.
func flagNameToEnvVar(name string) string {
	return constants.EnvVarPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// dataDir returns the data directory flag value with "~" expanded.
func dataDir(fs *pflag.FlagSet) (string, error) {
	d, err := fs.GetString("data-dir")
	if err != nil {
		return "", err
	}
	return helper.ExpandPath(d)
}
