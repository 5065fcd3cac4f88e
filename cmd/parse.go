package cmd

import (
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/mezonai/nemclient/common"
	"github.com/mezonai/nemclient/transaction"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// parseQuantity parses a decimal integer that may use '_' as a digit separator
func parseQuantity(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return 0, errors.New("quantity is required")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return 0, errors.Wrapf(err, "could not parse quantity %q", s)
	}
	if !v.IsUint64() {
		return 0, errors.Errorf("quantity %s overflows 64 bits", s)
	}
	return v.Uint64(), nil
}

// parseMosaicID parses namespace:name
func parseMosaicID(s string) (transaction.MosaicID, error) {
	idx := strings.LastIndex(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return transaction.MosaicID{}, errors.Errorf("mosaic id %q must be namespace:name", s)
	}
	return transaction.MosaicID{Namespace: s[:idx], Name: s[idx+1:]}, nil
}

// parseMosaic parses namespace:name=quantity[,supply=N][,divisibility=D].
// Supply and divisibility only feed the fee calculation.
func parseMosaic(s string) (transaction.Mosaic, error) {
	fields := strings.Split(s, ",")
	head := strings.SplitN(fields[0], "=", 2)
	if len(head) != 2 {
		return transaction.Mosaic{}, errors.Errorf("mosaic %q must be namespace:name=quantity", s)
	}
	id, err := parseMosaicID(strings.TrimSpace(head[0]))
	if err != nil {
		return transaction.Mosaic{}, err
	}
	quantity, err := parseQuantity(head[1])
	if err != nil {
		return transaction.Mosaic{}, err
	}
	m := transaction.Mosaic{ID: id, Quantity: quantity}

	for _, field := range fields[1:] {
		kv := strings.SplitN(strings.TrimSpace(field), "=", 2)
		if len(kv) != 2 {
			return transaction.Mosaic{}, errors.Errorf("mosaic attribute %q must be key=value", field)
		}
		switch kv[0] {
		case "supply":
			if m.Supply, err = parseQuantity(kv[1]); err != nil {
				return transaction.Mosaic{}, err
			}
		case "divisibility", "div":
			d, err := strconv.ParseUint(kv[1], 10, 8)
			if err != nil || d > 6 {
				return transaction.Mosaic{}, errors.Errorf("divisibility %q must be between 0 and 6", kv[1])
			}
			m.Divisibility = uint8(d)
		default:
			return transaction.Mosaic{}, errors.Errorf("unknown mosaic attribute %q", kv[0])
		}
	}
	return m, nil
}

func parseMosaics(values []string) ([]transaction.Mosaic, error) {
	if len(values) == 0 {
		return nil, errors.New("at least one --mosaic is required")
	}
	out := make([]transaction.Mosaic, 0, len(values))
	for _, v := range values {
		m, err := parseMosaic(v)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// MessageFlags describe an optional transfer message
type MessageFlags struct {
	Text   string
	Hex    string
	Secure bool
}

func addMessageFlags(cmd *cobra.Command, m *MessageFlags) {
	cmd.Flags().StringVarP(&m.Text, "message", "m", "", "plain text message")
	cmd.Flags().StringVar(&m.Hex, "message-hex", "", "message payload in hex, e.g. an already encrypted secure message")
	cmd.Flags().BoolVar(&m.Secure, "secure", false, "mark the payload as a secure message")
}

// message returns nil when no message was given
func (m MessageFlags) message() (*transaction.Message, error) {
	if m.Text != "" && m.Hex != "" {
		return nil, errors.New("--message and --message-hex are mutually exclusive")
	}
	msgType := transaction.MessagePlain
	if m.Secure {
		msgType = transaction.MessageSecure
	}
	switch {
	case m.Hex != "":
		payload, err := common.DecodeFromHex(m.Hex)
		if err != nil {
			return nil, errors.Wrap(err, "message payload")
		}
		return &transaction.Message{Type: msgType, Payload: payload}, nil
	case m.Text != "":
		if m.Secure {
			return nil, errors.New("secure messages must be supplied encrypted with --message-hex")
		}
		return transaction.PlainMessage(m.Text), nil
	default:
		return nil, nil
	}
}
