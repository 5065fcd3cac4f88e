package cmd

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/mezonai/nemclient/jsonx"
	"github.com/mezonai/nemclient/network"
	"github.com/mezonai/nemclient/signer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type AccountConfig struct {
	PublicKey string
}

var accountConfig AccountConfig

type accountOutput struct {
	Network    string `json:"network"`
	PrivateKey string `json:"privateKey,omitempty"`
	PublicKey  string `json:"publicKey"`
	Address    string `json:"address"`
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Account key and address commands",
}

var accountNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new key pair",
	Long:  `Generate a random key pair and print the private key, public key and address for the selected network.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := selectedNetwork(globalConfig)
		if err != nil {
			return err
		}
		return newAccount(cmd.OutOrStdout(), rand.Reader, n)
	},
}

var accountAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of a key",
	Long:  `Print the address of --public-key, or of the signer key given with --private-key or --private-key-file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := selectedNetwork(globalConfig)
		if err != nil {
			return err
		}
		return accountAddress(cmd.OutOrStdout(), globalConfig, accountConfig, n)
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountNewCmd, accountAddressCmd)

	accountAddressCmd.Flags().StringVar(&accountConfig.PublicKey, "public-key", "", "public key in hex")
}

// selectedNetwork resolves the network without requiring a signer key
func selectedNetwork(g GlobalConfig) (network.Network, error) {
	cfg, err := loadClientConfig(g)
	if err != nil {
		return network.Network{}, err
	}
	return cfg.Client.ResolveNetwork()
}

func printJSON(out io.Writer, v interface{}) error {
	body, err := jsonx.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(body))
	return err
}

func newAccount(out io.Writer, random io.Reader, n network.Network) error {
	kp, privateKey, err := signer.Generate(random)
	if err != nil {
		return errors.Wrap(err, "generate key pair")
	}
	return printJSON(out, accountOutput{
		Network:    n.Name,
		PrivateKey: privateKey,
		PublicKey:  kp.PublicKey(),
		Address:    kp.Address(n),
	})
}

func accountAddress(out io.Writer, g GlobalConfig, cfg AccountConfig, n network.Network) error {
	publicKey := cfg.PublicKey
	if publicKey == "" {
		privateKey, err := loadSignerKey(g)
		if err != nil {
			return errors.Wrap(err, "--public-key or a signer key is required")
		}
		kp, err := signer.NewKeyPair(privateKey)
		if err != nil {
			return err
		}
		publicKey = kp.PublicKey()
	}
	address, err := signer.Address(publicKey, n)
	if err != nil {
		return err
	}
	return printJSON(out, accountOutput{Network: n.Name, PublicKey: publicKey, Address: address})
}
