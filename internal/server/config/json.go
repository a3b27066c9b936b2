package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/amail/internal/flagx"
	"github.com/dmitrijs2005/amail/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept "1m" style strings or integer nanoseconds. Fields left out of the
// file keep their current values.
type JsonConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string          `json:"database_dsn"`
	SecretKey                    string          `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string          `json:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket"`
	S3Region                     string          `json:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint"`
	SnapshotInterval             *timex.Duration `json:"snapshot_interval"`
	MetricsAddr                  *string         `json:"metrics_addr"`
	ContractAccount              string          `json:"contract_account"`
	GenesisBalance               *int64          `json:"genesis_balance"`
	MinContractBalance           *int64          `json:"min_contract_balance"`
	RollingStateSeed             string          `json:"rolling_state_seed"`
	LogLevel                     string          `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Without the flag nothing is loaded. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.ContractAccount, c.ContractAccount)
	setString(&config.RollingStateSeed, c.RollingStateSeed)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.SnapshotInterval != nil {
		config.SnapshotInterval = c.SnapshotInterval.Duration
	}
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	if c.GenesisBalance != nil {
		config.GenesisBalance = *c.GenesisBalance
	}
	if c.MinContractBalance != nil {
		config.MinContractBalance = *c.MinContractBalance
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
