package dispatch

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pass-wallet/enclave/internal/coreerr"
	"github.com/pass-wallet/enclave/internal/kms"
	"github.com/pass-wallet/enclave/internal/ledger"
	"github.com/pass-wallet/enclave/internal/metrics"
	"github.com/pass-wallet/enclave/internal/model"
	"github.com/pass-wallet/enclave/internal/registry"
)

// ErrInvalidCommand is wrapped into every decode-time failure: a missing,
// duplicated, or unrecognized command tag, or a payload that does not
// match its declared shape.
var ErrInvalidCommand = errors.New("invalid command")

// Response is the tagged response envelope returned for every command.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Dispatcher routes decoded commands to the key manager and wallet
// registry. It holds no mutable state of its own beyond references to
// those two collaborators.
type Dispatcher struct {
	kms *kms.Manager
	reg *registry.Registry
	log zerolog.Logger
}

func New(keyManager *kms.Manager, reg *registry.Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{kms: keyManager, reg: reg, log: log}
}

// HandleRaw decodes one framed request body and returns one framed
// response body. It never returns an error: every failure, including a
// decode failure, is folded into a {"success":false,...} response so the
// transport layer always has exactly one JSON object to write back.
func (d *Dispatcher) HandleRaw(ctx context.Context, raw []byte) []byte {
	cmd, err := DecodeCommand(raw)
	if err != nil {
		return mustEncode(errorResponse(coreerr.New(coreerr.KindInvalidCommand, err.Error())))
	}

	resp := d.Dispatch(ctx, cmd)
	return mustEncode(resp)
}

// Dispatch routes a decoded command and returns its response envelope.
// Each call is tagged with a request id, present only in logs, so a run of
// commands on one connection can be correlated in an aggregated log sink.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) Response {
	start := time.Now()
	name := cmd.commandName()
	requestID := uuid.NewString()
	resp := d.route(ctx, cmd)
	metrics.ObserveCommand(name, resp.Success, time.Since(start))
	if !resp.Success {
		d.log.Warn().Str("command", name).Str("request_id", requestID).Str("error", resp.Error).Msg("command failed")
	}
	return resp
}

func (d *Dispatcher) route(ctx context.Context, cmd Command) Response {
	switch c := cmd.(type) {
	case KeygenCmd:
		addr, err := d.kms.GenerateAccount()
		if err != nil {
			return errorResponse(err)
		}
		return dataResponse(map[string]string{"address": addr.String()})

	case SignCmd:
		sig, err := d.kms.SignPersonalMessage(c.Address, c.Message)
		if err != nil {
			return errorResponse(err)
		}
		return dataResponse(map[string]string{"signature": "0x" + hex.EncodeToString(sig.Bytes())})

	case ListCmd:
		addrs := d.kms.ListAddresses()
		out := make([]string, len(addrs))
		for i, a := range addrs {
			out[i] = a.String()
		}
		return dataResponse(out)

	case CreateWalletCmd:
		addr, err := d.reg.Create(c.Name, c.Owner)
		if err != nil {
			return errorResponse(err)
		}
		return dataResponse(map[string]string{"address": addr.String()})

	case ListWalletsCmd:
		addrs := d.reg.List()
		out := make([]string, len(addrs))
		for i, a := range addrs {
			out[i] = a.String()
		}
		return dataResponse(out)

	case WalletStateCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Wallet, nil
		})

	case AddAssetCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			asset := model.Asset{
				AssetID:         c.AssetID,
				TokenType:       c.TokenType,
				ContractAddress: c.ContractAddress,
				TokenID:         c.TokenID,
				Symbol:          c.Symbol,
				Name:            c.Name,
				Decimals:        c.Decimals,
			}
			return nil, l.AddAsset(asset)
		})

	case ListAssetsCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Assets(), nil
		})

	case AddSubaccountCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			sub := model.Subaccount{SubaccountID: c.SubaccountID, Label: c.Label, Address: c.Address}
			return nil, l.AddSubaccount(sub)
		})

	case InboxDepositCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			entry := model.InboxEntry{
				DepositID:   c.DepositID,
				AssetID:     c.AssetID,
				Amount:      c.Amount,
				FromAddress: c.FromAddress,
				ToAddress:   c.ToAddress,
				TxHash:      c.TransactionHash,
				BlockNumber: c.BlockNumber,
			}
			return nil, l.RecordDeposit(entry)
		})

	case ClaimCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return nil, l.Claim(c.DepositID, c.SubaccountID)
		})

	case TransferCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return nil, l.Transfer(c.FromSubaccount, c.ToSubaccount, c.AssetID, c.Amount)
		})

	case WithdrawCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Withdraw(ledger.WithdrawRequest{
				SubaccountID: c.SubaccountID,
				AssetID:      c.AssetID,
				Amount:       c.Amount,
				Destination:  c.Destination,
				ChainID:      c.ChainID,
				GasPrice:     c.GasPrice,
				GasLimit:     c.GasLimit,
			})
		})

	case ListOutboxCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Wallet.Outbox, nil
		})

	case RemoveOutboxCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return nil, l.RemoveOutbox(c.OutboxID)
		})

	case BalanceCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Balance(c.SubaccountID, c.AssetID), nil
		})

	case SubaccountBalancesCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.BalancesForSubaccount(c.SubaccountID), nil
		})

	case SignGsmCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			// domain is accepted for host-side audit/rate-limiting context
			// only; the core signs message verbatim and keeps no record.
			sig, err := l.SignPersonalMessage([]byte(c.Message))
			if err != nil {
				return nil, err
			}
			return map[string]string{"signature": "0x" + hex.EncodeToString(sig.Bytes())}, nil
		})

	case ProvenanceCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Provenance(ledger.ProvenanceFilter{}), nil
		})

	case ProvenanceByAssetCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Provenance(ledger.ProvenanceFilter{AssetID: c.AssetID}), nil
		})

	case ProvenanceBySubaccountCmd:
		return d.withWallet(ctx, c.WalletAddress, func(l *ledger.Ledger) (interface{}, error) {
			return l.Provenance(ledger.ProvenanceFilter{SubaccountID: c.SubaccountID}), nil
		})

	default:
		return errorResponse(coreerr.New(coreerr.KindInvalidCommand, "unhandled command type"))
	}
}

// withWallet is the single call site through which every wallet-scoped
// command reaches the registry's lock discipline.
func (d *Dispatcher) withWallet(ctx context.Context, addr model.Address, fn func(*ledger.Ledger) (interface{}, error)) Response {
	var data interface{}
	err := d.reg.WithWallet(ctx, addr, func(l *ledger.Ledger) error {
		result, ferr := fn(l)
		data = result
		return ferr
	})
	if err != nil {
		return errorResponse(err)
	}
	return dataResponse(data)
}

func dataResponse(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func errorResponse(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

func mustEncode(resp Response) []byte {
	out, err := json.Marshal(resp)
	if err != nil {
		return []byte(`{"success":false,"error":"internal: failed to encode response"}`)
	}
	return out
}
