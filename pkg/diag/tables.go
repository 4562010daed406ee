package diag

import (
	"embed"
	"errors"
	"io/fs"
	"path"

	"github.com/go-ini/ini"
)

// ResourceDir is the directory, inside every resource root, holding exception tables.
const ResourceDir = "services/exception"

const (
	codesResource   = "errdiag-exception-codes.properties"
	docsResource    = "errdiag-exception-config.properties"
	mappingsSuffix  = "-exception-mappings.properties"
	defaultRootName = "resources"
)

//go:embed resources
var embedded embed.FS

// DefaultResources returns the tables shipped with the module.
func DefaultResources() fs.FS {
	sub, err := fs.Sub(embedded, defaultRootName)
	if err != nil {
		panic(err)
	}
	return sub
}

// table is an immutable name/value table.
type table struct {
	keys   []string
	values map[string]string
}

func (t *table) get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[key]
	return v, ok
}

func (t *table) len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// loadTable reads name from every root that has it and merges them in root
// order, later roots overriding earlier keys. found is false when no root has
// the resource; a resource that exists but cannot be read or parsed is an error.
func loadTable(name string, roots []fs.FS) (t *table, found bool, err error) {
	p := path.Join(ResourceDir, name)
	var sources []any
	for _, root := range roots {
		data, err := fs.ReadFile(root, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		sources = append(sources, data)
	}
	if len(sources) == 0 {
		return nil, false, nil
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:  "=",
		IgnoreInlineComment: true,
	}, sources[0], sources[1:]...)
	if err != nil {
		return nil, true, err
	}

	sec := f.Section(ini.DefaultSection)
	t = &table{values: make(map[string]string)}
	for _, key := range sec.Keys() {
		if _, dup := t.values[key.Name()]; !dup {
			t.keys = append(t.keys, key.Name())
		}
		t.values[key.Name()] = key.Value()
	}
	return t, true, nil
}
