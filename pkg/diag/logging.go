package diag

import (
	"errors"
	"reflect"
	"sort"

	"github.com/go-logr/logr"

	"errdiag/pkg/errx"
)

// LogError logs err with structured diagnostics fields for log aggregation:
//   - error.code: generic code of err's type, e.g. 30001
//   - error.type: "net.OpError"
//   - error.root: message of the innermost cause, when err wraps one
//   - error.category: category description when err wraps an *errx.Error
//   - error.info.<key>: every key of the merged chain info
//
// A nil s uses Default.
func LogError(logger logr.Logger, s *Service, err error, msg string) {
	if err == nil {
		return
	}
	if s == nil {
		s = Default()
	}

	keysAndValues := []any{
		"error.code", s.CodeOf(err),
		"error.type", TypeName(reflect.TypeOf(err)),
	}
	if chain := s.Chain(err); len(chain) > 1 {
		root := s.SanitizeIfNeeded(chain[0])
		keysAndValues = append(keysAndValues, "error.root", s.readers.Resolve(root).Message(root))
	}

	var xe *errx.Error
	if errors.As(err, &xe) {
		keysAndValues = append(keysAndValues, "error.category", xe.Description())
	}

	info := s.Info(err)
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		keysAndValues = append(keysAndValues, "error.info."+k, info[k])
	}

	logger.Error(err, msg, keysAndValues...)
}
