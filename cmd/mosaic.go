package cmd

import (
	"github.com/mezonai/nemclient/client"
	"github.com/mezonai/nemclient/transaction"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type MosaicConfig struct {
	ID           string
	Description  string
	Divisibility uint8
	Supply       string
	Mutable      bool
	Transferable bool

	LevyType      string
	LevyRecipient string
	LevyMosaic    string
	LevyFee       string

	Delta    string
	Decrease bool

	To         string
	Mosaics    []string
	Multiplier string
	Message    MessageFlags

	Multisig string
}

var mosaicConfig MosaicConfig

var mosaicCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Mosaic definition, supply and transfer commands",
}

var mosaicCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a mosaic definition",
	Long: `Create a mosaic definition under a namespace owned by the signer.

Example:
  mosaic create --id alice.shop:coupon --description "store coupon" --supply 1_000 --divisibility 0 --transferable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return createMosaic(cmd, s, mosaicConfig)
		})
	},
}

var mosaicSupplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Increase or decrease the supply of a mutable mosaic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return changeMosaicSupply(cmd, s, mosaicConfig)
		})
	},
}

var mosaicTransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer mosaics to another account",
	Long: `Transfer one or more mosaics. Each --mosaic is namespace:name=quantity with
optional supply and divisibility attributes used for the fee, for example
  --mosaic alice.shop:coupon=10,supply=1000,divisibility=0
  --mosaic nem:xem=1_000_000,supply=8_999_999_999,divisibility=6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(s *session) (client.AnnounceResult, error) {
			return transferMosaics(cmd, s, mosaicConfig)
		})
	},
}

func init() {
	rootCmd.AddCommand(mosaicCmd)
	mosaicCmd.AddCommand(mosaicCreateCmd, mosaicSupplyCmd, mosaicTransferCmd)
	mosaicCmd.PersistentFlags().StringVar(&mosaicConfig.Multisig, "multisig", "", "public key of the multisig account issuing the transaction")

	create := mosaicCreateCmd.Flags()
	create.StringVar(&mosaicConfig.ID, "id", "", "mosaic id as namespace:name")
	create.StringVar(&mosaicConfig.Description, "description", "", "mosaic description")
	create.Uint8Var(&mosaicConfig.Divisibility, "divisibility", 0, "number of decimal places, 0 to 6")
	create.StringVar(&mosaicConfig.Supply, "supply", "", "initial supply in whole units")
	create.BoolVar(&mosaicConfig.Mutable, "mutable", false, "allow later supply changes")
	create.BoolVar(&mosaicConfig.Transferable, "transferable", false, "allow transfers between third parties")
	create.StringVar(&mosaicConfig.LevyType, "levy-type", "", "absolute or percentile")
	create.StringVar(&mosaicConfig.LevyRecipient, "levy-recipient", "", "address receiving the levy")
	create.StringVar(&mosaicConfig.LevyMosaic, "levy-mosaic", "nem:xem", "mosaic the levy is paid in")
	create.StringVar(&mosaicConfig.LevyFee, "levy-fee", "", "levy amount")
	_ = mosaicCreateCmd.MarkFlagRequired("id")
	_ = mosaicCreateCmd.MarkFlagRequired("supply")

	supply := mosaicSupplyCmd.Flags()
	supply.StringVar(&mosaicConfig.ID, "id", "", "mosaic id as namespace:name")
	supply.StringVar(&mosaicConfig.Delta, "delta", "", "supply change in whole units")
	supply.BoolVar(&mosaicConfig.Decrease, "decrease", false, "decrease instead of increase")
	_ = mosaicSupplyCmd.MarkFlagRequired("id")
	_ = mosaicSupplyCmd.MarkFlagRequired("delta")

	transfer := mosaicTransferCmd.Flags()
	transfer.StringVarP(&mosaicConfig.To, "to", "t", "", "address of recipient")
	transfer.StringArrayVar(&mosaicConfig.Mosaics, "mosaic", nil, "mosaic as namespace:name=quantity[,supply=N][,divisibility=D], repeatable")
	transfer.StringVar(&mosaicConfig.Multiplier, "multiplier", "1", "number of times the attachment is transferred")
	addMessageFlags(mosaicTransferCmd, &mosaicConfig.Message)
	_ = mosaicTransferCmd.MarkFlagRequired("to")
}

func mosaicLevy(cfg MosaicConfig) (*transaction.Levy, error) {
	if cfg.LevyType == "" {
		return nil, nil
	}
	var levyType transaction.LevyType
	switch cfg.LevyType {
	case "absolute":
		levyType = transaction.LevyAbsolute
	case "percentile":
		levyType = transaction.LevyPercentile
	default:
		return nil, errors.Errorf("unknown levy type %q", cfg.LevyType)
	}
	if cfg.LevyRecipient == "" {
		return nil, errors.New("--levy-recipient is required with a levy")
	}
	id, err := parseMosaicID(cfg.LevyMosaic)
	if err != nil {
		return nil, err
	}
	levyFee, err := parseQuantity(cfg.LevyFee)
	if err != nil {
		return nil, errors.Wrap(err, "levy fee")
	}
	return &transaction.Levy{Type: levyType, Recipient: cfg.LevyRecipient, MosaicID: id, Fee: levyFee}, nil
}

func createMosaic(cmd *cobra.Command, s *session, cfg MosaicConfig) (client.AnnounceResult, error) {
	id, err := parseMosaicID(cfg.ID)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	if cfg.Divisibility > 6 {
		return client.AnnounceResult{}, errors.Errorf("divisibility %d must be between 0 and 6", cfg.Divisibility)
	}
	supply, err := parseQuantity(cfg.Supply)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	levy, err := mosaicLevy(cfg)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	props := transaction.MosaicProperties{
		Divisibility:  cfg.Divisibility,
		InitialSupply: supply,
		SupplyMutable: cfg.Mutable,
		Transferable:  cfg.Transferable,
	}
	if cfg.Multisig != "" {
		return s.client.MultisigCreateMosaic(cmd.Context(), s.privateKey, id, cfg.Description, props, levy, cfg.Multisig, s.ttl)
	}
	return s.client.CreateMosaic(cmd.Context(), s.privateKey, id, cfg.Description, props, levy, s.ttl)
}

func changeMosaicSupply(cmd *cobra.Command, s *session, cfg MosaicConfig) (client.AnnounceResult, error) {
	id, err := parseMosaicID(cfg.ID)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	delta, err := parseQuantity(cfg.Delta)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	supplyType := transaction.SupplyIncrease
	if cfg.Decrease {
		supplyType = transaction.SupplyDecrease
	}
	if cfg.Multisig != "" {
		return s.client.MultisigChangeMosaicSupply(cmd.Context(), s.privateKey, id, supplyType, delta, cfg.Multisig, s.ttl)
	}
	return s.client.ChangeMosaicSupply(cmd.Context(), s.privateKey, id, supplyType, delta, s.ttl)
}

func transferMosaics(cmd *cobra.Command, s *session, cfg MosaicConfig) (client.AnnounceResult, error) {
	mosaics, err := parseMosaics(cfg.Mosaics)
	if err != nil {
		return client.AnnounceResult{}, err
	}
	multiplier, err := parseQuantity(cfg.Multiplier)
	if err != nil {
		return client.AnnounceResult{}, errors.Wrap(err, "multiplier")
	}
	message, err := cfg.Message.message()
	if err != nil {
		return client.AnnounceResult{}, err
	}
	if cfg.Multisig != "" {
		return s.client.MultisigTransferMosaics(cmd.Context(), s.privateKey, cfg.To, mosaics, multiplier, message, cfg.Multisig, s.ttl)
	}
	return s.client.TransferMosaics(cmd.Context(), s.privateKey, cfg.To, mosaics, multiplier, message, s.ttl)
}
