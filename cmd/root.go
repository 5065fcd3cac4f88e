package cmd

import (
	"os"

	"github.com/mezonai/nemclient/logx"
	"github.com/spf13/cobra"
)

// GlobalConfig holds the flags shared by every transaction command
type GlobalConfig struct {
	ConfigFile     string
	PrivateKey     string
	PrivateKeyFile string
	NodeURL        string
	Network        string
	TTL            int32
	Offline        bool
	Metrics        bool
	Verbose        bool
}

var globalConfig GlobalConfig

var rootCmd = &cobra.Command{
	Use:   "nemclient",
	Short: "NEM NIS1 transaction client",
	Long: `Command line interface for building, signing and announcing NEM NIS1 transactions.

Transactions are signed locally. With --offline the signed payload is printed
instead of being announced and the time stamp comes from the local clock.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&globalConfig.ConfigFile, "config", "c", "", "client YAML config file")
	flags.StringVarP(&globalConfig.PrivateKey, "private-key", "p", "", "signer private key in hex")
	flags.StringVarP(&globalConfig.PrivateKeyFile, "private-key-file", "f", "", "signer private key file")
	flags.StringVarP(&globalConfig.NodeURL, "node-url", "u", "", "NIS node URL, overrides the config file")
	flags.StringVarP(&globalConfig.Network, "network", "n", "", "mainnet, testnet or mijin, overrides the config file")
	flags.Int32Var(&globalConfig.TTL, "ttl", 0, "transaction time to live in seconds, overrides the config file")
	flags.BoolVar(&globalConfig.Offline, "offline", false, "sign with the local clock and print the payload without announcing")
	flags.BoolVar(&globalConfig.Metrics, "metrics", false, "print client metrics after the command")
	flags.BoolVarP(&globalConfig.Verbose, "verbose", "v", false, "verbose output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
