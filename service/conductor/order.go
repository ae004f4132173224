package conductor

import (
	"fmt"
	"strings"
)

// Order selects which phase a tick runs first.
type Order string

const (
	// OrderForward cycles then applies.
	OrderForward Order = "forward"
	// OrderInverse applies then cycles.
	OrderInverse Order = "inverse"
)

// ParseOrder converts a configuration value into an Order; empty means
// OrderForward.
func ParseOrder(value string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(value))) {
	case "", OrderForward:
		return OrderForward, nil
	case OrderInverse:
		return OrderInverse, nil
	}
	return "", fmt.Errorf("unsupported order: %q", value)
}
