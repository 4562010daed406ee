package diag

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// NoCode is returned for types without a registered code.
const NoCode = -1

// CodeEntry is one row of the code table.
type CodeEntry struct {
	Code     int
	TypeName string
}

// reverseEntry is either unresolved (only name set) or resolved (typ set).
// Entries are promoted once and never demoted.
type reverseEntry struct {
	name string
	typ  reflect.Type
}

type codeTable struct {
	codes   map[string]int
	entries []CodeEntry

	mu      sync.Mutex
	reverse map[string]*reverseEntry
}

func newCodeTable(t *table, logger *zap.Logger) (*codeTable, error) {
	ct := &codeTable{
		codes:   make(map[string]int, t.len()),
		reverse: make(map[string]*reverseEntry, t.len()),
	}
	for _, name := range t.keys {
		raw, _ := t.get(name)
		code, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, wrapWithSentinel(ErrInvalidCode, err, fmt.Sprintf("invalid error code %q for %s", raw, name)).
				WithContext("type", name)
		}
		ct.codes[name] = code
		ct.entries = append(ct.entries, CodeEntry{Code: code, TypeName: name})

		key := strconv.Itoa(code)
		if prev, dup := ct.reverse[key]; dup {
			logger.Debug("duplicate error code, keeping first type",
				zap.Int("code", code), zap.String("kept", prev.name), zap.String("ignored", name))
			continue
		}
		ct.reverse[key] = &reverseEntry{name: name}
	}
	sort.SliceStable(ct.entries, func(i, j int) bool {
		return ct.entries[i].Code < ct.entries[j].Code
	})
	return ct, nil
}

// CodeFor returns the code registered for t, or NoCode.
func (s *Service) CodeFor(t reflect.Type) int {
	return s.CodeForName(TypeName(t))
}

// CodeOf returns the code registered for err's dynamic type, or NoCode.
func (s *Service) CodeOf(err error) int {
	if err == nil {
		return NoCode
	}
	return s.CodeFor(reflect.TypeOf(err))
}

// CodeForName returns the code registered for a fully-qualified type name, or NoCode.
func (s *Service) CodeForName(name string) int {
	if code, ok := s.codes.codes[name]; ok {
		return code
	}
	return NoCode
}

// TypeFor returns the type registered for code. The type name is resolved
// through the catalog on first use and memoized. A name the catalog cannot
// resolve is logged and reported absent; it is retried on the next call.
func (s *Service) TypeFor(code int) (reflect.Type, bool) {
	key := strconv.Itoa(code)

	s.codes.mu.Lock()
	defer s.codes.mu.Unlock()

	entry, ok := s.codes.reverse[key]
	if !ok {
		return nil, false
	}
	if entry.typ != nil {
		return entry.typ, true
	}
	t, err := s.catalog.Resolve(entry.name)
	if err != nil {
		s.logger.Error("failed to resolve error type for code",
			zap.Int("code", code), zap.String("type", entry.name), zap.Error(err))
		return nil, false
	}
	entry.typ = t
	return t, true
}

// Codes returns the code table ordered by code.
func (s *Service) Codes() []CodeEntry {
	out := make([]CodeEntry, len(s.codes.entries))
	copy(out, s.codes.entries)
	return out
}
