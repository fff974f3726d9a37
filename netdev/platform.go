package netdev

import (
	"errors"
	"fmt"
	"strings"
)

// Platform is a canonical network operating system slug.
type Platform string

// Supported platforms.
const (
	CiscoIOS      Platform = "cisco_ios"
	CiscoNXOS     Platform = "cisco_nxos"
	CiscoIOSXR    Platform = "cisco_iosxr"
	JuniperJunos  Platform = "juniper_junos"
	AristaEOS     Platform = "arista_eos"
	DrivenetsDNOS Platform = "drivenets_dnos"
)

// ErrUnknownPlatform indicates the platform identifier resolved to no known
// platform. Use errors.Is to test for it.
var ErrUnknownPlatform = errors.New("unknown platform")

// platformAliases maps every accepted spelling (after lowercasing and
// hyphen folding) to its canonical platform.
var platformAliases = map[string]Platform{
	"cisco_ios":      CiscoIOS,
	"ios":            CiscoIOS,
	"cisco_nxos":     CiscoNXOS,
	"nxos":           CiscoNXOS,
	"nx_os":          CiscoNXOS,
	"cisco_iosxr":    CiscoIOSXR,
	"iosxr":          CiscoIOSXR,
	"ios_xr":         CiscoIOSXR,
	"juniper_junos":  JuniperJunos,
	"junos":          JuniperJunos,
	"arista_eos":     AristaEOS,
	"eos":            AristaEOS,
	"drivenets_dnos": DrivenetsDNOS,
	"dnos":           DrivenetsDNOS,
	"drivenets":      DrivenetsDNOS,
}

// ParsePlatform resolves a platform identifier through the alias table.
func ParsePlatform(s string) (Platform, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if p, ok := platformAliases[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// Slug returns the canonical slug.
func (p Platform) Slug() string { return string(p) }

// String implements fmt.Stringer.
func (p Platform) String() string { return string(p) }

// Platforms returns all supported platforms.
func Platforms() []Platform {
	return []Platform{CiscoIOS, CiscoNXOS, CiscoIOSXR, JuniperJunos, AristaEOS, DrivenetsDNOS}
}
