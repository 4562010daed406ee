package diag

import (
	"encoding/json"
	"io/fs"
	"net"
	"net/url"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"sync"

	"errdiag/pkg/errx"
)

// Catalog resolves fully-qualified type names to type handles. Go cannot load
// a type by name, so every type reachable from a code lookup must be
// registered up front.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewCatalog returns a catalog holding the given types.
func NewCatalog(types ...reflect.Type) *Catalog {
	c := &Catalog{types: make(map[string]reflect.Type, len(types))}
	c.Register(types...)
	return c
}

// DefaultCatalog returns a catalog with the framework and common standard
// library error types registered.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		TypeOf[*errx.Error](),
		TypeOf[*errx.InvocationError](),
		TypeOf[*fs.PathError](),
		TypeOf[*os.SyscallError](),
		TypeOf[*os.LinkError](),
		TypeOf[*net.OpError](),
		TypeOf[*net.DNSError](),
		TypeOf[*net.AddrError](),
		TypeOf[*url.Error](),
		TypeOf[*exec.Error](),
		TypeOf[*exec.ExitError](),
		TypeOf[*strconv.NumError](),
		TypeOf[*json.SyntaxError](),
		TypeOf[*json.UnmarshalTypeError](),
	)
}

// Register adds types to the catalog. A later registration under the same
// name replaces the earlier one.
func (c *Catalog) Register(types ...reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range types {
		if t == nil {
			continue
		}
		c.types[TypeName(t)] = t
	}
}

// Resolve returns the type registered under name.
func (c *Catalog) Resolve(name string) (reflect.Type, error) {
	c.mu.RLock()
	t, ok := c.types[name]
	c.mu.RUnlock()
	if !ok {
		return nil, newWithSentinel(ErrUnknownType, "type "+name+" is not registered").
			WithContext("type", name)
	}
	return t, nil
}

// Len returns the number of registered types.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}
