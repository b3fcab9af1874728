package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/pass-wallet/enclave/internal/coreerr"
)

// Address is a 20-byte Ethereum-compatible account identifier. It marshals
// to and from the lowercase 0x-prefixed hex form used across the command
// surface, and compares case-insensitively by construction since the
// underlying bytes are always stored, never the string form.
type Address [20]byte

// ParseAddress accepts a 0x-prefixed hex string in any case and returns the
// canonical Address, or InvalidAddress if the string isn't 20 bytes of hex.
func ParseAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return Address{}, coreerr.New(coreerr.KindInvalidAddress, fmt.Sprintf("not a valid address: %q", s))
	}
	return Address(common.HexToAddress(s)), nil
}

// String renders the address as lowercase 0x-prefixed hex.
func (a Address) String() string {
	return "0x" + strings.ToLower(common.Bytes2Hex(a[:]))
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
