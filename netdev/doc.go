// Package netdev normalizes the two identifiers that key template lookups:
// the device platform and the command.
//
// Platform identifiers arrive in many spellings ("ios", "IOS-XR",
// "cisco_ios"); ParsePlatform resolves them through an alias table to a
// canonical slug. Raw commands ("show  version", "show ip bgp summary")
// are collapsed to stable command keys ("show_version") by NormalizeCommand
// and resolved to a known key by ParseCommandKey.
package netdev
