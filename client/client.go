package client

import (
	"context"
	"time"

	nemerrors "github.com/mezonai/nemclient/errors"
	"github.com/mezonai/nemclient/factory"
	"github.com/mezonai/nemclient/fee"
	"github.com/mezonai/nemclient/logx"
	"github.com/mezonai/nemclient/monitoring"
	"github.com/mezonai/nemclient/signer"
	"github.com/mezonai/nemclient/transaction"
	"github.com/mezonai/nemclient/version"
	"github.com/pkg/errors"
)

// NemClient turns transaction intents into signed announce requests and submits them.
// Every operation derives the key pair, fetches the network time once, builds,
// encodes and signs the transaction, and only then announces it.
type NemClient struct {
	cfg       Config
	factory   *factory.Factory
	time      TimeSource
	announcer Announcer
}

func NewClient(cfg Config, ts TimeSource, announcer Announcer) *NemClient {
	if cfg.Versions == nil {
		cfg.Versions = version.Default()
	}
	if cfg.Fees == nil {
		cfg.Fees = fee.Default()
	}
	return &NemClient{
		cfg:       cfg,
		factory:   factory.New(cfg.Network, cfg.Versions, cfg.Fees),
		time:      ts,
		announcer: announcer,
	}
}

// Factory exposes the transaction factory the client builds with
func (c *NemClient) Factory() *factory.Factory {
	return c.factory
}

type buildFunc func(signerKey string, timeStamp int32) (transaction.Transaction, error)

func (c *NemClient) submit(ctx context.Context, privateKey string, build buildFunc) (AnnounceResult, error) {
	kp, err := signer.NewKeyPair(privateKey)
	if err != nil {
		monitoring.RecordRejectedTx(monitoring.TxInvalidKey)
		return AnnounceResult{}, err
	}

	timeStamp, err := c.time.NetworkTime(ctx)
	if err != nil {
		monitoring.RecordRejectedTx(monitoring.TxTimeUnavailable)
		return AnnounceResult{}, errors.Wrap(err, "fetch network time")
	}
	monitoring.SetNodeTime(timeStamp)

	tx, err := build(kp.PublicKey(), timeStamp)
	if err != nil {
		monitoring.RecordRejectedTx(buildFailureReason(err))
		return AnnounceResult{}, err
	}
	kind := tx.Kind().String()

	req, err := Prepare(kp, tx)
	if err != nil {
		monitoring.RecordRejectedTx(monitoring.TxEncodingViolation)
		return AnnounceResult{}, errors.Wrapf(err, "encode %s", kind)
	}
	monitoring.IncreaseSignedTxCount(kind)

	start := time.Now()
	res, err := c.announcer.Announce(ctx, req)
	monitoring.RecordAnnounceLatency(time.Since(start))
	if err != nil {
		monitoring.RecordRejectedTx(monitoring.TxTransportFailure)
		logx.Error("CLIENT", "announce ", kind, " failed: ", err)
		return AnnounceResult{}, errors.Wrapf(err, "announce %s", kind)
	}
	if nemerrors.AnnounceCode(res.Code) != nemerrors.CodeSuccess {
		monitoring.RecordRejectedTx(monitoring.TxNodeRejected)
		logx.Warn("CLIENT", "node rejected ", kind, ": ", res.Message)
		return res, nemerrors.NewAnnounceError(nemerrors.AnnounceCode(res.Code), res.Message)
	}

	monitoring.IncreaseAnnouncedTxCount(kind)
	logx.Info("CLIENT", "announced ", kind, " hash=", res.TransactionHash.Data, " deadline=", tx.Header().Deadline)
	return res, nil
}

// submitMultisig builds the inner transaction for multisigPublicKey and wraps it
// in a multisig transaction signed by the cosigner's private key.
func buildFailureReason(err error) monitoring.TxRejectedReason {
	if errors.Is(err, version.ErrUnsupportedCombination) {
		return monitoring.TxUnsupported
	}
	return monitoring.TxRejectedUnknown
}

func (c *NemClient) submitMultisig(ctx context.Context, privateKey, multisigPublicKey string, ttl int32, build buildFunc) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, func(cosigner string, timeStamp int32) (transaction.Transaction, error) {
		inner, err := build(multisigPublicKey, timeStamp)
		if err != nil {
			return nil, err
		}
		return c.factory.Wrap(cosigner, inner, timeStamp, ttl)
	})
}

func base(signerKey string, timeStamp, ttl int32) factory.Base {
	return factory.Base{Signer: signerKey, TimeStamp: timeStamp, TTL: ttl}
}

func modifications(kind transaction.ModificationType, cosignatories []string) []transaction.Modification {
	out := make([]transaction.Modification, 0, len(cosignatories))
	for _, key := range cosignatories {
		out = append(out, transaction.Modification{Type: kind, Cosignatory: key})
	}
	return out
}

func (c *NemClient) transferBuilder(recipient string, amount uint64, message *transaction.Message, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.Transfer(factory.TransferParams{
			Base:      base(signerKey, timeStamp, ttl),
			Recipient: recipient,
			Amount:    amount,
			Message:   message,
		})
	}
}

func (c *NemClient) mosaicTransferBuilder(recipient string, mosaics []transaction.Mosaic, multiplier uint64, message *transaction.Message, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.MosaicTransfer(factory.MosaicTransferParams{
			Base:       base(signerKey, timeStamp, ttl),
			Recipient:  recipient,
			Multiplier: multiplier,
			Mosaics:    mosaics,
			Message:    message,
		})
	}
}

func (c *NemClient) modificationBuilder(mods []transaction.Modification, relativeChange, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.AggregateModification(factory.AggregateModificationParams{
			Base:           base(signerKey, timeStamp, ttl),
			Modifications:  mods,
			RelativeChange: relativeChange,
		})
	}
}

func (c *NemClient) namespaceBuilder(parent, namespace string, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.ProvisionNamespace(factory.ProvisionNamespaceParams{
			Base:    base(signerKey, timeStamp, ttl),
			Parent:  parent,
			NewPart: namespace,
		})
	}
}

func (c *NemClient) mosaicBuilder(id transaction.MosaicID, description string, props transaction.MosaicProperties, levy *transaction.Levy, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.MosaicDefinition(factory.MosaicDefinitionParams{
			Base:        base(signerKey, timeStamp, ttl),
			ID:          id,
			Description: description,
			Properties:  props,
			Levy:        levy,
		})
	}
}

func (c *NemClient) supplyBuilder(id transaction.MosaicID, supplyType transaction.SupplyType, delta uint64, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.MosaicSupply(factory.MosaicSupplyParams{
			Base:       base(signerKey, timeStamp, ttl),
			MosaicID:   id,
			SupplyType: supplyType,
			Delta:      delta,
		})
	}
}

func (c *NemClient) importanceBuilder(mode transaction.ImportanceMode, remoteAccount string, ttl int32) buildFunc {
	return func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.ImportanceTransfer(factory.ImportanceTransferParams{
			Base:          base(signerKey, timeStamp, ttl),
			Mode:          mode,
			RemoteAccount: remoteAccount,
		})
	}
}

// TransferNem sends amount micro-XEM to recipient. message may be nil.
func (c *NemClient) TransferNem(ctx context.Context, privateKey, recipient string, amount uint64, message *transaction.Message, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.transferBuilder(recipient, amount, message, ttl))
}

// TransferMosaics sends multiplier times the given mosaic bundle to recipient
func (c *NemClient) TransferMosaics(ctx context.Context, privateKey, recipient string, mosaics []transaction.Mosaic, multiplier uint64, message *transaction.Message, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.mosaicTransferBuilder(recipient, mosaics, multiplier, message, ttl))
}

// CreateMultisigAccount converts the account of privateKey into a multisig account
func (c *NemClient) CreateMultisigAccount(ctx context.Context, privateKey string, cosignatories []string, minCosignatories int32, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.modificationBuilder(modifications(transaction.AddCosignatory, cosignatories), minCosignatories, ttl))
}

func (c *NemClient) AddCosignatories(ctx context.Context, privateKey string, cosignatories []string, relativeChange int32, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl,
		c.modificationBuilder(modifications(transaction.AddCosignatory, cosignatories), relativeChange, ttl))
}

func (c *NemClient) RemoveCosignatories(ctx context.Context, privateKey string, cosignatories []string, relativeChange int32, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl,
		c.modificationBuilder(modifications(transaction.RemoveCosignatory, cosignatories), relativeChange, ttl))
}

func (c *NemClient) MultisigTransferNem(ctx context.Context, privateKey, recipient string, amount uint64, message *transaction.Message, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl, c.transferBuilder(recipient, amount, message, ttl))
}

func (c *NemClient) MultisigTransferMosaics(ctx context.Context, privateKey, recipient string, mosaics []transaction.Mosaic, multiplier uint64, message *transaction.Message, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl, c.mosaicTransferBuilder(recipient, mosaics, multiplier, message, ttl))
}

func (c *NemClient) MultisigCreateNamespace(ctx context.Context, privateKey, parent, namespace, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl, c.namespaceBuilder(parent, namespace, ttl))
}

func (c *NemClient) MultisigCreateMosaic(ctx context.Context, privateKey string, id transaction.MosaicID, description string, props transaction.MosaicProperties, levy *transaction.Levy, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl, c.mosaicBuilder(id, description, props, levy, ttl))
}

func (c *NemClient) MultisigChangeMosaicSupply(ctx context.Context, privateKey string, id transaction.MosaicID, supplyType transaction.SupplyType, delta uint64, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl, c.supplyBuilder(id, supplyType, delta, ttl))
}

// MultisigImportanceTransfer delegates the multisig account's importance to remoteAccount
func (c *NemClient) MultisigImportanceTransfer(ctx context.Context, privateKey string, mode transaction.ImportanceMode, remoteAccount, multisigPublicKey string, ttl int32) (AnnounceResult, error) {
	return c.submitMultisig(ctx, privateKey, multisigPublicKey, ttl, c.importanceBuilder(mode, remoteAccount, ttl))
}

// CosignTransaction signs the pending multisig transaction whose inner hash is transactionHash
func (c *NemClient) CosignTransaction(ctx context.Context, privateKey, transactionHash, multisigAddress string, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, func(signerKey string, timeStamp int32) (transaction.Transaction, error) {
		return c.factory.Cosign(factory.CosignParams{
			Base:         base(signerKey, timeStamp, ttl),
			OtherHash:    transactionHash,
			OtherAccount: multisigAddress,
		})
	})
}

// CreateNamespace provisions namespace under parent, or a root namespace when parent is empty
func (c *NemClient) CreateNamespace(ctx context.Context, privateKey, parent, namespace string, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.namespaceBuilder(parent, namespace, ttl))
}

func (c *NemClient) ImportanceTransfer(ctx context.Context, privateKey string, mode transaction.ImportanceMode, remoteAccount string, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.importanceBuilder(mode, remoteAccount, ttl))
}

func (c *NemClient) CreateMosaic(ctx context.Context, privateKey string, id transaction.MosaicID, description string, props transaction.MosaicProperties, levy *transaction.Levy, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.mosaicBuilder(id, description, props, levy, ttl))
}

func (c *NemClient) ChangeMosaicSupply(ctx context.Context, privateKey string, id transaction.MosaicID, supplyType transaction.SupplyType, delta uint64, ttl int32) (AnnounceResult, error) {
	return c.submit(ctx, privateKey, c.supplyBuilder(id, supplyType, delta, ttl))
}
