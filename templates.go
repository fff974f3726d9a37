package netcli

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/alaineid/netcli-parse/registry"
)

//go:embed templates
var builtinFS embed.FS

var (
	builtinOnce sync.Once
	builtinReg  *registry.Registry
)

// BuiltinRegistry returns the registry over the templates embedded in this
// module. It is shared: templates compile once per process no matter how
// many Services use it.
func BuiltinRegistry() *registry.Registry {
	builtinOnce.Do(func() {
		sub, err := fs.Sub(builtinFS, "templates")
		if err != nil {
			panic("netcli: embedded templates missing: " + err.Error())
		}
		src, err := registry.NewFSSource(sub)
		if err != nil {
			panic("netcli: embedded template index invalid: " + err.Error())
		}
		builtinReg = registry.New(src)
	})
	return builtinReg
}
