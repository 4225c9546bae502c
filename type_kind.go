package fund

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the operation of a Transaction.
type Kind int

const (
	// Buy opens or increases a long position.
	Buy Kind = iota + 1
	// Sell reduces a long position.
	Sell
	// ShortSell opens or increases a short position.
	ShortSell
	// Cover buys back shares to close a short position.
	Cover
)

// Direction is the effect class shared by several kinds.
type Direction int

const (
	// Acquire increases the position and decreases cash.
	Acquire Direction = 1
	// Dispose decreases the position and increases cash.
	Dispose Direction = -1
)

// Direction returns the effect class of the kind, or 0 for an unknown kind.
//
// ShortSell has the same effect as Sell and Cover the same as Buy: they differ
// only by the counter they increment.
func (k Kind) Direction() Direction {
	switch k {
	case Buy, Cover:
		return Acquire
	case Sell, ShortSell:
		return Dispose
	default:
		return 0
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k.Direction() != 0 }

func (k Kind) String() string {
	switch k {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case ShortSell:
		return "short"
	case Cover:
		return "cover"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses an operation label. Labels are case-insensitive, and the
// French labels used by the source workbook are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "achat", "buy":
		return Buy, nil
	case "vente", "sell":
		return Sell, nil
	case "short", "shortsell", "short_sell":
		return ShortSell, nil
	case "rachat", "cover":
		return Cover, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}
