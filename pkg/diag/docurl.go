package diag

import (
	"reflect"
	"runtime"
	"strings"
)

const (
	docPrefix   = "doc."
	goDocPrefix = "godoc."
)

// DocURL returns the framework documentation page for t.
func (s *Service) DocURL(t reflect.Type) (string, bool) {
	return s.docURL(docPrefix, t)
}

// GoDocURL returns the API documentation page for t.
func (s *Service) GoDocURL(t reflect.Type) (string, bool) {
	return s.docURL(goDocPrefix, t)
}

// docURL looks up the base URL for t under prefix and appends the type's page.
// Standard library types try the Go-version key first and fall back to the
// unversioned one.
func (s *Service) docURL(prefix string, t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	name := TypeName(t)
	var (
		base string
		ok   bool
	)
	if isStdlib(t) && s.cfg.GoVersion != "" {
		base, ok = s.lookupDoc(prefix+s.cfg.GoVersion, name)
	}
	if !ok {
		base, ok = s.lookupDoc(prefix, name)
	}
	if !ok {
		return "", false
	}
	return docLink(base, t), true
}

// lookupDoc tries key+name, then drops trailing "." or "/" separated segments
// from name until an entry matches or nothing is left.
func (s *Service) lookupDoc(key, name string) (string, bool) {
	if !strings.HasSuffix(key, ".") {
		key += "."
	}
	for name != "" {
		if url, ok := s.docs.get(key + name); ok {
			return url, true
		}
		i := strings.LastIndexAny(name, "./")
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return "", false
}

func docLink(base string, t reflect.Type) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	e := elem(t)
	if e.PkgPath() == "" || e.Name() == "" {
		return base + e.String()
	}
	return base + e.PkgPath() + "#" + e.Name()
}

func isStdlib(t reflect.Type) bool {
	pkg := elem(t).PkgPath()
	if pkg == "" {
		return false
	}
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

// goMinorVersion turns "go1.24.6" into "go1.24". Development builds yield "".
func goMinorVersion(v string) string {
	if !strings.HasPrefix(v, "go") {
		return ""
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		return v
	}
	return parts[0] + "." + parts[1]
}

func runtimeGoVersion() string {
	return goMinorVersion(runtime.Version())
}
