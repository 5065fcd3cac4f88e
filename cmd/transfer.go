package cmd

import (
	"github.com/mezonai/nemclient/client"
	"github.com/spf13/cobra"
)

type TransferConfig struct {
	To       string
	Amount   string
	Multisig string
	Message  MessageFlags
}

var transferConfig TransferConfig

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer [flags]",
	Short: "Transfer XEM to another account",
	Long: `This command sends XEM from the signer account to the recipient address.
Amounts are given in micro XEM (1 XEM = 1_000_000).

Examples:
  # Transfer 1 XEM using a private key file
  transfer -t TAEX4PYFHA3QH4A34KAOBS7R2XL3KOQESVUVMBOC -a 1_000_000 -f /path/to/key.txt

  # Transfer from a multisig account as one of its cosignatories
  transfer -t TAEX4PYFHA3QH4A34KAOBS7R2XL3KOQESVUVMBOC -a 500 -p <cosigner key> --multisig <multisig public key>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return transferNem(cmd, s, transferConfig)
		})
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVarP(&transferConfig.To, "to", "t", "", "address of recipient")
	transferCmd.Flags().StringVarP(&transferConfig.Amount, "amount", "a", "", "amount in micro XEM")
	transferCmd.Flags().StringVar(&transferConfig.Multisig, "multisig", "", "public key of the multisig account to transfer from")
	addMessageFlags(transferCmd, &transferConfig.Message)
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")
}

func transferNem(cmd *cobra.Command, s *session, cfg TransferConfig) (client.AnnounceResult, error) {
	amount, err := parseQuantity(cfg.Amount)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	message, err := cfg.Message.message()
	if err != nil {
		return client.AnnounceResult{}, err
	}
	if cfg.Multisig != "" {
		return s.client.MultisigTransferNem(cmd.Context(), s.privateKey, cfg.To, amount, message, cfg.Multisig, s.ttl)
	}
	return s.client.TransferNem(cmd.Context(), s.privateKey, cfg.To, amount, message, s.ttl)
}
