package config

import (
	"time"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/helper"
	"github.com/relloyd/hptransform/hperrors"
)

// EnvConfig is the configuration read from the environment.
type EnvConfig struct {
	Token          string
	RunId          string
	StorageApiUrl  string
	DataDir        string
	PollInterval   time.Duration
	PollPolicy     string
	PushgatewayUrl string
}

// LoadEnvConfig reads the environment.
// When requireStorage is true the Storage API token, run id and URL must all be set.
func LoadEnvConfig(requireStorage bool) (*EnvConfig, error) {
	var err error
	e := &EnvConfig{}
	for _, v := range []struct {
		name string
		val  *string
	}{
		{constants.EnvVarToken, &e.Token},
		{constants.EnvVarRunId, &e.RunId},
		{constants.EnvVarStorageApiUrl, &e.StorageApiUrl},
	} {
		if *v.val, err = helper.GetEnvVar(v.name, requireStorage); err != nil {
			return nil, hperrors.WrapApplicationError(err, "%v", err)
		}
	}
	e.DataDir = helper.ReadValueFromEnvWithDefault(constants.EnvVarDataDir, constants.DataDirDefault)
	e.PollPolicy = helper.ReadValueFromEnvWithDefault(constants.EnvVarPollPolicy, constants.PollPolicyFlat)
	e.PushgatewayUrl = helper.ReadValueFromEnvWithDefault(constants.EnvVarPushgatewayUrl, "")
	if e.PollInterval, err = helper.ReadDurationFromEnvWithDefault(constants.EnvVarPollInterval, constants.PollIntervalDefault); err != nil {
		return nil, hperrors.WrapApplicationError(err, "%v", err)
	}
	return e, nil
}
