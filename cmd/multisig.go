package cmd

import (
	"github.com/mezonai/nemclient/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type MultisigConfig struct {
	Cosignatories    []string
	MinCosignatories int32
	RelativeChange   int32
	Multisig         string
	TxHash           string
	MultisigAddress  string
}

var multisigConfig MultisigConfig

var multisigCmd = &cobra.Command{
	Use:   "multisig",
	Short: "Multisig account management commands",
	Long:  `Commands for converting an account to multisig, changing its cosignatories and cosigning pending transactions.`,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the signer account to a multisig account",
	Long: `Convert the signer account into a multisig account controlled by the given cosignatories.
The signer key is no longer able to initiate transactions afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return convertToMultisig(cmd, s, multisigConfig)
		})
	},
}

var addCosignatoriesCmd = &cobra.Command{
	Use:   "add",
	Short: "Add cosignatories to a multisig account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return modifyCosignatories(cmd, s, multisigConfig, true)
		})
	},
}

var removeCosignatoriesCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove cosignatories from a multisig account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return modifyCosignatories(cmd, s, multisigConfig, false)
		})
	},
}

var cosignCmd = &cobra.Command{
	Use:   "cosign",
	Short: "Cosign a pending multisig transaction",
	Long:  `Add the signer's signature to a pending multisig transaction identified by its inner transaction hash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return cosign(cmd, s, multisigConfig)
		})
	},
}

func init() {
	rootCmd.AddCommand(multisigCmd)
	multisigCmd.AddCommand(convertCmd, addCosignatoriesCmd, removeCosignatoriesCmd, cosignCmd)

	convertCmd.Flags().StringSliceVar(&multisigConfig.Cosignatories, "cosignatory", nil, "cosignatory public key, repeatable")
	convertCmd.Flags().Int32Var(&multisigConfig.MinCosignatories, "min", 0, "minimum number of cosignatures, 0 means all")
	_ = convertCmd.MarkFlagRequired("cosignatory")

	for _, c := range []*cobra.Command{addCosignatoriesCmd, removeCosignatoriesCmd} {
		c.Flags().StringSliceVar(&multisigConfig.Cosignatories, "cosignatory", nil, "cosignatory public key, repeatable")
		c.Flags().Int32Var(&multisigConfig.RelativeChange, "relative-change", 0, "change of the minimum number of cosignatures")
		c.Flags().StringVar(&multisigConfig.Multisig, "multisig", "", "public key of the multisig account")
		_ = c.MarkFlagRequired("cosignatory")
		_ = c.MarkFlagRequired("multisig")
	}

	cosignCmd.Flags().StringVar(&multisigConfig.TxHash, "hash", "", "hash of the inner transaction to cosign")
	cosignCmd.Flags().StringVar(&multisigConfig.MultisigAddress, "multisig-address", "", "address of the multisig account")
	_ = cosignCmd.MarkFlagRequired("hash")
	_ = cosignCmd.MarkFlagRequired("multisig-address")
}

func convertToMultisig(cmd *cobra.Command, s *session, cfg MultisigConfig) (client.AnnounceResult, error) {
	if cfg.MinCosignatories < 0 || int(cfg.MinCosignatories) > len(cfg.Cosignatories) {
		return client.AnnounceResult{}, errors.Errorf("--min %d must be between 0 and %d", cfg.MinCosignatories, len(cfg.Cosignatories))
	}
	return s.client.CreateMultisigAccount(cmd.Context(), s.privateKey, cfg.Cosignatories, cfg.MinCosignatories, s.ttl)
}

func modifyCosignatories(cmd *cobra.Command, s *session, cfg MultisigConfig, add bool) (client.AnnounceResult, error) {
	if add {
		return s.client.AddCosignatories(cmd.Context(), s.privateKey, cfg.Cosignatories, cfg.RelativeChange, cfg.Multisig, s.ttl)
	}
	return s.client.RemoveCosignatories(cmd.Context(), s.privateKey, cfg.Cosignatories, cfg.RelativeChange, cfg.Multisig, s.ttl)
}

func cosign(cmd *cobra.Command, s *session, cfg MultisigConfig) (client.AnnounceResult, error) {
	return s.client.CosignTransaction(cmd.Context(), s.privateKey, cfg.TxHash, cfg.MultisigAddress, s.ttl)
}
