package model

import (
	"encoding/json"
	"fmt"
)

// Operation is the tagged variant recorded on every provenance entry. Each
// concrete type reports its own Kind and marshals with an injected "type"
// field so the wire format stays an exhaustive tag, matching the command
// surface's tagging discipline.
type Operation interface {
	OperationKind() string
}

type ClaimOp struct {
	DepositID    string `json:"deposit_id"`
	SubaccountID string `json:"subaccount_id"`
	AssetID      string `json:"asset_id"`
	Amount       Amount `json:"amount"`
}

func (ClaimOp) OperationKind() string { return "Claim" }

type TransferOp struct {
	FromSubaccount string `json:"from_subaccount"`
	ToSubaccount   string `json:"to_subaccount"`
	AssetID        string `json:"asset_id"`
	Amount         Amount `json:"amount"`
}

func (TransferOp) OperationKind() string { return "Transfer" }

type WithdrawOp struct {
	SubaccountID         string  `json:"subaccount_id"`
	AssetID              string  `json:"asset_id"`
	Amount               Amount  `json:"amount"`
	Destination          Address `json:"destination"`
	Nonce                uint64  `json:"nonce"`
	GasPrice             uint64  `json:"gas_price"`
	GasLimit             uint64  `json:"gas_limit"`
	ChainID              uint64  `json:"chain_id"`
	SignedRawTransaction string  `json:"signed_raw_transaction"`
}

func (WithdrawOp) OperationKind() string { return "Withdraw" }

// ProvenanceRecord is one append-only, strictly ordered entry in a wallet's
// audit log. Seq is the source of truth for balances: replaying records in
// Seq order against an empty ledger reproduces the current balance map.
type ProvenanceRecord struct {
	Seq         uint64    `json:"seq"`
	Timestamp   uint64    `json:"timestamp"`
	BlockNumber *string   `json:"block_number,omitempty"`
	Operation   Operation `json:"operation"`
}

// provenanceWire is the on-the-wire shape: Operation's concrete type is
// flattened into a {"type": ..., ...fields} object.
type provenanceWire struct {
	Seq         uint64          `json:"seq"`
	Timestamp   uint64          `json:"timestamp"`
	BlockNumber *string         `json:"block_number,omitempty"`
	Operation   json.RawMessage `json:"operation"`
}

func (p ProvenanceRecord) MarshalJSON() ([]byte, error) {
	opBytes, err := marshalOperation(p.Operation)
	if err != nil {
		return nil, err
	}
	return json.Marshal(provenanceWire{
		Seq:         p.Seq,
		Timestamp:   p.Timestamp,
		BlockNumber: p.BlockNumber,
		Operation:   opBytes,
	})
}

func marshalOperation(op Operation) (json.RawMessage, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	kindBytes, err := json.Marshal(op.OperationKind())
	if err != nil {
		return nil, err
	}
	fields["type"] = kindBytes
	return json.Marshal(fields)
}

func (p *ProvenanceRecord) UnmarshalJSON(data []byte) error {
	var wire provenanceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	op, err := unmarshalOperation(wire.Operation)
	if err != nil {
		return err
	}
	p.Seq = wire.Seq
	p.Timestamp = wire.Timestamp
	p.BlockNumber = wire.BlockNumber
	p.Operation = op
	return nil
}

func unmarshalOperation(data json.RawMessage) (Operation, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	switch tag.Type {
	case "Claim":
		var op ClaimOp
		if err := json.Unmarshal(data, &op); err != nil {
			return nil, err
		}
		return op, nil
	case "Transfer":
		var op TransferOp
		if err := json.Unmarshal(data, &op); err != nil {
			return nil, err
		}
		return op, nil
	case "Withdraw":
		var op WithdrawOp
		if err := json.Unmarshal(data, &op); err != nil {
			return nil, err
		}
		return op, nil
	default:
		return nil, fmt.Errorf("unknown provenance operation type: %q", tag.Type)
	}
}
