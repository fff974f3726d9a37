// Package main is the foreign-callable boundary. Built with
//
//	go build -buildmode=c-shared -o libnetcli_parse.so ./capi
//
// it exposes the parsing service to C callers (and anything that can speak
// the C ABI) as flat functions over NUL-terminated UTF-8 strings. Every
// exported call returns a heap-allocated JSON envelope that the caller owns
// and must release with netcli_free. The functions never return NULL and
// never raise: failures, including recovered panics, come back as error
// envelopes.
//
// The matching declarations are in netcli_parse.h next to this file; the
// header generated by the Go toolchain works too.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"fmt"
	"unsafe"

	netcli "github.com/alaineid/netcli-parse"
)

// service is shared by all calls. It is immutable and safe for concurrent
// use, so callers may invoke the exports from any thread.
var service = netcli.New()

// goString copies a C string, treating NULL as the empty string so input
// validation reports it as a missing input rather than the process crashing.
func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// guarded runs fn and converts any panic into an InternalError envelope. The
// boundary contract is that a valid envelope always comes back.
func guarded(fn func() string) (out *C.char) {
	defer func() {
		if r := recover(); r != nil {
			out = C.CString(netcli.ErrorEnvelope(netcli.CodeInternalError, fmt.Sprintf("panic: %v", r)))
		}
	}()
	return C.CString(fn())
}

//export netcli_parse_json
func netcli_parse_json(platform, commandKey, outputText *C.char) *C.char {
	return guarded(func() string {
		return service.ParseJSON(context.Background(),
			goString(platform), goString(commandKey), goString(outputText))
	})
}

//export netcli_parse_command_json
func netcli_parse_command_json(platform, command, outputText *C.char) *C.char {
	return guarded(func() string {
		return service.ParseCommandJSON(context.Background(),
			goString(platform), goString(command), goString(outputText))
	})
}

//export netcli_parse_template_json
func netcli_parse_template_json(platform, commandKey, templateText, outputText *C.char) *C.char {
	return guarded(func() string {
		return service.ParseTemplateJSON(context.Background(),
			goString(platform), goString(commandKey), goString(templateText), goString(outputText))
	})
}

// netcli_free releases a string previously returned by one of the parse
// exports. Passing NULL is a no-op; passing the same pointer twice, or a
// pointer from anywhere else, is undefined behavior, as with free(3).
//
//export netcli_free
func netcli_free(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func main() {}
