package cmd

import (
	"io"

	"github.com/mezonai/nemclient/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type VerifyConfig struct {
	Data      string
	Signature string
}

var verifyConfig VerifyConfig

type verifyOutput struct {
	Valid                bool   `json:"valid"`
	TransactionHash      string `json:"transactionHash"`
	InnerTransactionHash string `json:"innerTransactionHash,omitempty"`
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a signed payload and print its hashes",
	Long: `Check the signature of a payload produced with --offline against the signer key
embedded in the data, and print the transaction hash cosigners refer to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return verifyPayload(cmd.OutOrStdout(), verifyConfig)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyConfig.Data, "data", "", "hex encoded transaction data")
	verifyCmd.Flags().StringVar(&verifyConfig.Signature, "signature", "", "hex encoded signature")
	_ = verifyCmd.MarkFlagRequired("data")
	_ = verifyCmd.MarkFlagRequired("signature")
}

func verifyPayload(out io.Writer, cfg VerifyConfig) error {
	req := client.RequestAnnounce{Data: cfg.Data, Signature: cfg.Signature}
	outer, inner, err := client.RequestHashes(req)
	if err != nil {
		return errors.Wrap(err, "decode data")
	}
	valid := client.Verify(req)
	if err := printJSON(out, verifyOutput{Valid: valid, TransactionHash: outer, InnerTransactionHash: inner}); err != nil {
		return err
	}
	if !valid {
		return errors.New("signature does not verify")
	}
	return nil
}
