package cmd

import (
	"github.com/mezonai/nemclient/client"
	"github.com/spf13/cobra"
)

type NamespaceConfig struct {
	Parent   string
	Name     string
	Multisig string
}

var namespaceConfig NamespaceConfig

var namespaceCmd = &cobra.Command{
	Use:   "namespace",
	Short: "Provision a root namespace or a sub-namespace",
	Long: `Provision a namespace. Without --parent a root namespace is rented,
otherwise the new part is appended to the parent.

Example:
  namespace --parent alice --name shop -f key.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return createNamespace(cmd, s, namespaceConfig)
		})
	},
}

func init() {
	rootCmd.AddCommand(namespaceCmd)

	namespaceCmd.Flags().StringVar(&namespaceConfig.Parent, "parent", "", "parent namespace, empty for a root namespace")
	namespaceCmd.Flags().StringVar(&namespaceConfig.Name, "name", "", "new namespace part")
	namespaceCmd.Flags().StringVar(&namespaceConfig.Multisig, "multisig", "", "public key of the multisig account that will own the namespace")
	_ = namespaceCmd.MarkFlagRequired("name")
}

func createNamespace(cmd *cobra.Command, s *session, cfg NamespaceConfig) (client.AnnounceResult, error) {
	if cfg.Multisig != "" {
		return s.client.MultisigCreateNamespace(cmd.Context(), s.privateKey, cfg.Parent, cfg.Name, cfg.Multisig, s.ttl)
	}
	return s.client.CreateNamespace(cmd.Context(), s.privateKey, cfg.Parent, cfg.Name, s.ttl)
}
