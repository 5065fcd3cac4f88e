package cmd

import (
	"github.com/mezonai/nemclient/client"
	"github.com/mezonai/nemclient/transaction"
	"github.com/spf13/cobra"
)

type ImportanceConfig struct {
	Remote     string
	Deactivate bool
	Multisig   string
}

var importanceConfig ImportanceConfig

var importanceCmd = &cobra.Command{
	Use:   "importance",
	Short: "Delegate harvesting to a remote account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return importanceTransfer(cmd, s, importanceConfig)
		})
	},
}

func init() {
	rootCmd.AddCommand(importanceCmd)

	importanceCmd.Flags().StringVar(&importanceConfig.Remote, "remote", "", "public key of the remote harvesting account")
	importanceCmd.Flags().BoolVar(&importanceConfig.Deactivate, "deactivate", false, "deactivate instead of activate")
	importanceCmd.Flags().StringVar(&importanceConfig.Multisig, "multisig", "", "public key of the multisig account delegating")
	_ = importanceCmd.MarkFlagRequired("remote")
}

func importanceTransfer(cmd *cobra.Command, s *session, cfg ImportanceConfig) (client.AnnounceResult, error) {
	mode := transaction.ImportanceActivate
	if cfg.Deactivate {
		mode = transaction.ImportanceDeactivate
	}
	if cfg.Multisig != "" {
		return s.client.MultisigImportanceTransfer(cmd.Context(), s.privateKey, mode, cfg.Remote, cfg.Multisig, s.ttl)
	}
	return s.client.ImportanceTransfer(cmd.Context(), s.privateKey, mode, cfg.Remote, s.ttl)
}
