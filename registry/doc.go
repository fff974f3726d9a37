// Package registry resolves (platform, command key) pairs to compiled
// templates.
//
// A Source supplies raw template text; the package ships filesystem, Redis
// and etcd backed sources. Registry wraps a Source with a compile-once
// cache: template text is compiled on first lookup and the immutable
// *textfsm.Template is reused by every later lookup and shared safely across
// concurrent parses. The registry is owned by the caller; the parsing engine
// itself holds no global state.
package registry
