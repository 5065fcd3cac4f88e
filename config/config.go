package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mezonai/nemclient/fee"
	"github.com/mezonai/nemclient/logx"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the client YAML file. Missing values fall back to Defaults.
func LoadConfig(path string) (*ConfigFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()

	cfg := Defaults()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	cfg.applyDefaults()

	if _, err := cfg.Client.ResolveNetwork(); err != nil {
		return nil, err
	}
	logx.Info("CONFIG", "loaded ", path, ": network=", cfg.Client.Network, " node=", cfg.Client.NodeURL)
	return &cfg, nil
}

func (c *ConfigFile) applyDefaults() {
	d := Defaults()
	if c.Client.Network == "" {
		c.Client.Network = d.Client.Network
	}
	if c.Client.NodeURL == "" {
		c.Client.NodeURL = d.Client.NodeURL
	}
	if c.Client.TTLSeconds <= 0 {
		c.Client.TTLSeconds = d.Client.TTLSeconds
	}
	if c.Client.TimeoutMs <= 0 {
		c.Client.TimeoutMs = d.Client.TimeoutMs
	}
	if c.Client.Breaker.MaxFailures == 0 {
		c.Client.Breaker.MaxFailures = d.Client.Breaker.MaxFailures
	}
	if c.Client.Breaker.OpenTimeoutMs <= 0 {
		c.Client.Breaker.OpenTimeoutMs = d.Client.Breaker.OpenTimeoutMs
	}
	c.Client.NodeURL = strings.TrimRight(c.Client.NodeURL, "/")
}

// LoadPrivateKey loads a hex private key from a file, ignoring surrounding whitespace
func LoadPrivateKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read private key")
	}
	return strings.TrimSpace(string(data)), nil
}

// LoadFeeSchedule overrides base with the [fee] section of an INI file. Keys that are
// absent keep their base value. root_rental_tiers is a list of length:fee pairs.
func LoadFeeSchedule(path string, base fee.Schedule) (fee.Schedule, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return base, errors.Wrap(err, "load fee schedule")
	}
	section := cfg.Section(feeSection)

	schedule := base
	if err := section.MapTo(&schedule); err != nil {
		return base, errors.Wrapf(err, "map [%s] section", feeSection)
	}

	if section.HasKey("root_rental_tiers") {
		tiers, err := parseRentalTiers(section.Key("root_rental_tiers").String())
		if err != nil {
			return base, err
		}
		schedule.RootRentalTiers = tiers
	}
	return schedule, nil
}

func parseRentalTiers(value string) ([]fee.RentalTier, error) {
	var tiers []fee.RentalTier
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		length, amount, ok := strings.Cut(part, ":")
		if !ok {
			return nil, errors.Errorf("rental tier %q: expected length:fee", part)
		}
		maxLength, err := strconv.Atoi(strings.TrimSpace(length))
		if err != nil {
			return nil, errors.Wrapf(err, "rental tier %q", part)
		}
		tierFee, err := strconv.ParseUint(strings.TrimSpace(amount), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "rental tier %q", part)
		}
		tiers = append(tiers, fee.RentalTier{MaxLength: maxLength, Fee: tierFee})
	}
	return tiers, nil
}
