package netdev

import (
	"errors"
	"fmt"
	"strings"
)

// CommandKey is a stable command intent key, independent of the exact
// spelling typed at a device prompt.
type CommandKey string

// Supported command keys.
const (
	ShowVersion         CommandKey = "show_version"
	ShowInterfacesBrief CommandKey = "show_interfaces_brief"
	ShowInventory       CommandKey = "show_inventory"
	ShowBGPSummary      CommandKey = "show_bgp_summary"
	ShowIPRoute         CommandKey = "show_ip_route"
	ShowLLDPNeighbors   CommandKey = "show_lldp_neighbors"
)

// ErrUnknownCommandKey indicates a command resolved to no known key.
var ErrUnknownCommandKey = errors.New("unknown command key")

var commandAliases = map[string]CommandKey{
	"show_version":          ShowVersion,
	"show_interfaces_brief": ShowInterfacesBrief,
	"show_int_brief":        ShowInterfacesBrief,
	"show_inventory":        ShowInventory,
	"show_bgp_summary":      ShowBGPSummary,
	"show_ip_route":         ShowIPRoute,
	"show_lldp_neighbors":   ShowLLDPNeighbors,
}

// NormalizeCommand collapses a raw command string to lookup form: lowercase,
// runs of whitespace folded, spaces and hyphens replaced with underscores.
func NormalizeCommand(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	return strings.ReplaceAll(strings.Join(fields, "_"), "-", "_")
}

// ParseCommandKey resolves a raw command or command key to a known
// CommandKey, normalizing it first.
func ParseCommandKey(s string) (CommandKey, error) {
	if ck, ok := commandAliases[NormalizeCommand(s)]; ok {
		return ck, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommandKey, s)
}

// Slug returns the canonical slug.
func (c CommandKey) Slug() string { return string(c) }

// String implements fmt.Stringer.
func (c CommandKey) String() string { return string(c) }

// CommandKeys returns all supported command keys.
func CommandKeys() []CommandKey {
	return []CommandKey{
		ShowVersion,
		ShowInterfacesBrief,
		ShowInventory,
		ShowBGPSummary,
		ShowIPRoute,
		ShowLLDPNeighbors,
	}
}
