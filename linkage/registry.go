package linkage

import (
	"fmt"
	"strings"
)

// registry maps stable names to constructors. Read-only after init.
var registry = map[string]func() Linkage{
	NameUPGMA:           UPGMA,
	NameWPGMA:           WPGMA,
	NameSingle:          Single,
	NameComplete:        Complete,
	NameNeighborJoining: NeighborJoining,
}

// names is the stable listing order for Names().
var names = []string{NameUPGMA, NameWPGMA, NameSingle, NameComplete, NameNeighborJoining}

// ByName returns the formula set registered under name (case-insensitive).
// Unknown names return ErrUnknownLinkage.
func ByName(name string) (Linkage, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Linkage{}, fmt.Errorf("%q: %w", name, ErrUnknownLinkage)
	}

	return ctor(), nil
}

// Names lists the registered linkage names in a stable order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)

	return out
}
