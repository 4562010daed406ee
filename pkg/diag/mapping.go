package diag

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// mappingCache holds one table per protocol. A nil table records that the
// protocol has no mapping resource, so the roots are not searched again.
type mappingCache struct {
	mu     sync.RWMutex
	tables map[string]*table
	group  singleflight.Group
}

func newMappingCache() *mappingCache {
	return &mappingCache{tables: make(map[string]*table)}
}

// MappingResource returns the resource name holding the mappings for protocol.
func MappingResource(protocol string) string {
	return strings.ToLower(protocol) + mappingsSuffix
}

func (s *Service) mappings(protocol string) (*table, error) {
	c := s.protocols
	c.mu.RLock()
	t, ok := c.tables[protocol]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := c.group.Do(protocol, func() (any, error) {
		c.mu.RLock()
		t, ok := c.tables[protocol]
		c.mu.RUnlock()
		if ok {
			return t, nil
		}
		t, _, err := loadTable(MappingResource(protocol), s.roots)
		if err != nil {
			return nil, wrapWithSentinel(ErrMappingLoad, err,
				fmt.Sprintf("failed to load resource %s", MappingResource(protocol))).
				WithContext("protocol", protocol)
		}
		c.mu.Lock()
		c.tables[protocol] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*table), nil
}

// MappingFor translates t into the error token used by protocol.
//
// The protocol table is consulted for t and then for each type in its
// Ancestors chain. Failing that, the generic code of t is looked up in the
// same table and returned unchanged if unmapped. Without a table for the
// protocol the generic code is returned. Only a failure to read an existing
// mapping resource is reported as an error.
func (s *Service) MappingFor(protocol string, t reflect.Type) (string, error) {
	protocol = strings.ToLower(protocol)
	table, err := s.mappings(protocol)
	if err != nil {
		return "", err
	}
	code := strconv.Itoa(s.CodeFor(t))
	if table == nil {
		s.logger.Info("no exception mappings found for protocol", zap.String("protocol", protocol))
		return code, nil
	}

	for _, ancestor := range Ancestors(t) {
		if token, ok := table.get(TypeName(ancestor)); ok {
			return token, nil
		}
	}
	if token, ok := table.get(code); ok {
		return token, nil
	}
	return code, nil
}

// MappingOf is MappingFor applied to err's dynamic type.
func (s *Service) MappingOf(protocol string, err error) (string, error) {
	return s.MappingFor(protocol, reflect.TypeOf(err))
}
