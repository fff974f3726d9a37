// Package netcli parses the unstructured, tabular text emitted by network
// device CLIs into structured records, driven by TextFSM-style templates
// rather than hand-written per-command parsers.
//
// # Core Concepts
//
// The module is organized around a small set of concepts:
//
//   - Templates: a tiny DSL declaring value captures and a state/rule
//     automaton for one command's output format (package textfsm)
//   - Records: ordered name-to-value rows committed by a template run
//   - Platforms and command keys: normalized identifiers that key template
//     lookups (package netdev)
//   - Registry: a caller-owned, compile-once template cache over a
//     filesystem, Redis or etcd source (package registry)
//
// # Getting Started
//
// Create a Service and parse device output:
//
//	svc := netcli.New()
//	res, err := svc.ParseCommand(ctx, "ios", "show version", output)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, rec := range res.Records {
//		fmt.Println(rec.String("VERSION"))
//	}
//
// The JSON variants (ParseJSON and friends) never fail: every outcome is a
// complete envelope, either {"ok":true,...} with the records or
// {"ok":false,"error":{...}}. The C-callable boundary in ./capi builds on
// them.
package netcli
