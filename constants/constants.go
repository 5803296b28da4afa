package constants

import "time"

// Components and actions

const (
	OracleWriterComponentID       = "keboola.wr-db-oracle"
	OracleExtractorComponentID    = "keboola.ex-db-oracle"
	ActionRun                     = "run"
	ActionTestConnection          = "testConnection"
	TestConnectionSql             = "SELECT CURRENT_DATE FROM dual"
	ConnectionTypeOracle          = "oracle"
	ConnectionTypeMockOracle      = "mockOracle"
	OracleConnectionDefaultParams = "prefetch_rows=500"
	HpPluginOracle                = "hp-oracle-plugin.so"
)

// Job backends

const (
	FeatureQueueV2         = "queuev2" // token owner feature that enables the queue v2 job backend
	ServiceIdQueue         = "queue"
	ServiceIdSyrup         = "syrup"
	SyrupSuper             = "docker"
	JobStatusSuccess       = "success"
	JobStatusError         = "error"
	JobModeRun             = "run"
	JobNoMessage           = "No message"
	HeaderStorageApiToken  = "X-StorageApi-Token"
	HeaderRunId            = "X-KBC-RunId"
	PollIntervalDefault    = 10 * time.Second
	PollIntervalMaxDefault = 10 * time.Second
	PollPolicyFlat         = "flat"
	PollPolicyExponential  = "exponential"
	HttpTimeoutDefault     = 60 * time.Second
)

// Excerpts

const (
	ExcerptMaxChars  = 1000
	ExcerptEdgeChars = 500
	ExcerptSeparator = "\n...\n"
)

// Environment

const (
	EnvVarPrefix         = "HP" // prefix for our own environment variables
	EnvVarToken          = "KBC_TOKEN"
	EnvVarRunId          = "KBC_RUNID"
	EnvVarStorageApiUrl  = "KBC_URL"
	EnvVarDataDir        = "KBC_DATADIR"
	EnvVarPluginDir      = EnvVarPrefix + "_PLUGIN_DIR"
	EnvVarLogLevel       = EnvVarPrefix + "_LOG_LEVEL"
	EnvVarPollInterval   = EnvVarPrefix + "_POLL_INTERVAL"
	EnvVarPollPolicy     = EnvVarPrefix + "_POLL_POLICY"
	EnvVarPushgatewayUrl = EnvVarPrefix + "_PUSHGATEWAY_URL"
	DataDirDefault       = "/data"
	ConfigFileName       = "config.json"
	ServiceName          = "hptransform"
)
