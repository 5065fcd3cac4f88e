package config

const (
	DefaultNetwork       = "testnet"
	DefaultNodeURL       = "http://hugetestalice.nem.ninja:7890"
	DefaultTTLSeconds    = 3600
	DefaultTimeoutMs     = 10_000
	DefaultMaxFailures   = 5
	DefaultOpenTimeoutMs = 30_000

	feeSection = "fee"
)

// Defaults returns the configuration used when no file is given
func Defaults() ConfigFile {
	return ConfigFile{
		Client: ClientConfig{
			Network:    DefaultNetwork,
			NodeURL:    DefaultNodeURL,
			TTLSeconds: DefaultTTLSeconds,
			TimeoutMs:  DefaultTimeoutMs,
			Breaker: BreakerConfig{
				MaxFailures:   DefaultMaxFailures,
				OpenTimeoutMs: DefaultOpenTimeoutMs,
			},
		},
	}
}
