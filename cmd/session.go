package cmd

import (
	"io"
	"os"

	"github.com/mezonai/nemclient/client"
	"github.com/mezonai/nemclient/config"
	"github.com/mezonai/nemclient/fee"
	"github.com/mezonai/nemclient/logx"
	"github.com/mezonai/nemclient/monitoring"
	"github.com/mezonai/nemclient/network"
	"github.com/mezonai/nemclient/nis"
	"github.com/pkg/errors"
)

// session is everything a transaction command needs: a pipeline wired either to a
// NIS node or to the offline recorder, the signer key and the time to live.
type session struct {
	client     *client.NemClient
	recorder   *client.Recorder
	network    network.Network
	privateKey string
	ttl        int32
	out        io.Writer
}

// loadClientConfig reads the config file when one is given and applies flag overrides
func loadClientConfig(g GlobalConfig) (*config.ConfigFile, error) {
	cfg := config.Defaults()
	if g.ConfigFile != "" {
		loaded, err := config.LoadConfig(g.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if g.NodeURL != "" {
		cfg.Client.NodeURL = g.NodeURL
	}
	if g.Network != "" {
		cfg.Client.Network = g.Network
	}
	if g.TTL > 0 {
		cfg.Client.TTLSeconds = g.TTL
	}
	return &cfg, nil
}

func loadSignerKey(g GlobalConfig) (string, error) {
	if g.PrivateKey != "" {
		return g.PrivateKey, nil
	}
	if g.PrivateKeyFile != "" {
		return config.LoadPrivateKey(g.PrivateKeyFile)
	}
	return "", errors.New("either --private-key or --private-key-file is required")
}

func newSession(g GlobalConfig, out io.Writer) (*session, error) {
	cfg, err := loadClientConfig(g)
	if err != nil {
		return nil, err
	}
	if cfg.Log.File != "" {
		logx.Configure(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxAgeDays)
	}

	n, err := cfg.Client.ResolveNetwork()
	if err != nil {
		return nil, err
	}

	schedule := fee.DefaultSchedule()
	if cfg.FeeSchedule != "" {
		if schedule, err = config.LoadFeeSchedule(cfg.FeeSchedule, schedule); err != nil {
			return nil, err
		}
	}

	privateKey, err := loadSignerKey(g)
	if err != nil {
		return nil, err
	}

	s := &session{
		network:    n,
		privateKey: privateKey,
		ttl:        cfg.Client.TTLSeconds,
		out:        out,
	}
	clientCfg := client.Config{Network: n, Fees: fee.NewCalculator(schedule)}

	if g.Offline {
		s.recorder = &client.Recorder{}
		s.client = client.NewClient(clientCfg, client.LocalClock{}, s.recorder)
		return s, nil
	}

	node := nis.NewClient(cfg.Client.NodeURL, nis.Options{
		Timeout:     cfg.Client.Timeout(),
		MaxFailures: cfg.Client.Breaker.MaxFailures,
		OpenTimeout: cfg.Client.Breaker.OpenTimeout(),

		MaxAnnounces:   cfg.Client.RateLimit.MaxAnnounces,
		AnnounceWindow: cfg.Client.RateLimit.Window(),
	})
	if g.Verbose {
		logx.Debug("CLI", "using node ", node.BaseURL(), " on ", n.Name)
	}
	s.client = client.NewClient(clientCfg, node, node)
	return s, nil
}

// offlineOutput is printed instead of the node answer when nothing was announced
type offlineOutput struct {
	Request              client.RequestAnnounce `json:"request"`
	TransactionHash      string                 `json:"transactionHash"`
	InnerTransactionHash string                 `json:"innerTransactionHash,omitempty"`
}

// finish prints the outcome of a submitted transaction
func (s *session) finish(res client.AnnounceResult, err error) error {
	if err != nil {
		return err
	}

	if s.recorder != nil {
		req, ok := s.recorder.Last()
		if !ok {
			return errors.New("no transaction was signed")
		}
		err = printJSON(s.out, offlineOutput{
			Request:              req,
			TransactionHash:      res.TransactionHash.Data,
			InnerTransactionHash: res.InnerTransactionHash.Data,
		})
	} else {
		err = printJSON(s.out, res)
	}
	if err != nil {
		return err
	}
	logx.Info("CLI", "transaction ", res.TransactionHash.Data, ": ", res.Message)
	return nil
}

func printMetrics(out io.Writer) error {
	return monitoring.WriteText(out)
}

// run builds a session from the global flags and hands it to the command
func run(fn func(s *session) (client.AnnounceResult, error)) error {
	s, err := newSession(globalConfig, os.Stdout)
	if err != nil {
		return err
	}
	if err := s.finish(fn(s)); err != nil {
		return err
	}
	if globalConfig.Metrics {
		return printMetrics(os.Stdout)
	}
	return nil
}
