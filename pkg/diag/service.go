package diag

import (
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"

	"errdiag/pkg/errx"
)

// Config holds the externally owned switches consumed by the service.
type Config struct {
	// FullStackTraces disables frame filtering entirely.
	FullStackTraces bool
	// StackTraceFilter lists function-name prefixes treated as internal frames.
	// The first matching prefix removes the frame.
	StackTraceFilter []string
	// ExceptionThreshold caps the entries of ChainSummary; 0 means unlimited.
	ExceptionThreshold int
	// Verbose adds the innermost frame and a documentation link to each summary entry.
	Verbose bool
	// GoVersion selects version-specific documentation keys, e.g. "go1.24".
	GoVersion string
}

// DefaultConfig returns the configuration used by Default.
func DefaultConfig() Config {
	return Config{
		StackTraceFilter: []string{
			"errdiag/pkg/errx.",
			"errdiag/pkg/diag.",
			"runtime.",
		},
		Verbose:   true,
		GoVersion: runtimeGoVersion(),
	}
}

// Service answers every diagnostics query. It is built once by New and is
// safe for concurrent use; its lazily filled caches are internally synchronized.
type Service struct {
	cfg       Config
	logger    *zap.Logger
	readers   *Readers
	extra     []Reader
	catalog   *Catalog
	framework func(error) bool
	roots     []fs.FS

	codes     *codeTable
	docs      *table
	protocols *mappingCache
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for lookup misses and resolution failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReader registers reader after the built-in readers, in option order.
func WithReader(reader Reader) Option {
	return func(s *Service) {
		s.extra = append(s.extra, reader)
	}
}

// WithCatalog replaces the catalog used to resolve type names.
func WithCatalog(c *Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithResources adds resource roots searched after the embedded defaults.
// Keys in later roots override earlier ones.
func WithResources(roots ...fs.FS) Option {
	return func(s *Service) {
		s.roots = append(s.roots, roots...)
	}
}

// WithOnlyResources replaces the resource roots, dropping the embedded defaults.
func WithOnlyResources(roots ...fs.FS) Option {
	return func(s *Service) {
		s.roots = append([]fs.FS(nil), roots...)
	}
}

// WithFrameworkMarker replaces the predicate telling framework errors apart
// from application errors. The default is errx.IsFramework.
func WithFrameworkMarker(marker func(error) bool) Option {
	return func(s *Service) {
		if marker != nil {
			s.framework = marker
		}
	}
}

// New loads the code and documentation tables and returns a ready Service.
// Missing or invalid tables are a configuration error wrapping ErrTablesUnavailable
// or ErrInvalidCode; no degraded mode exists.
func New(cfg Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:       cfg,
		logger:    zap.NewNop(),
		catalog:   DefaultCatalog(),
		framework: errx.IsFramework,
		roots:     []fs.FS{DefaultResources()},
		protocols: newMappingCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.StackTraceFilter = append([]string(nil), cfg.StackTraceFilter...)

	s.readers = NewReaders(builtinReaders()...)
	for _, r := range s.extra {
		s.readers.Register(r)
	}

	codes, err := s.requireTable(codesResource)
	if err != nil {
		return nil, err
	}
	if s.codes, err = newCodeTable(codes, s.logger); err != nil {
		return nil, err
	}
	if s.docs, err = s.requireTable(docsResource); err != nil {
		return nil, err
	}

	s.logger.Debug("exception tables loaded",
		zap.Int("codes", codes.len()), zap.Int("docs", s.docs.len()), zap.Int("readers", s.readers.Len()))
	return s, nil
}

func (s *Service) requireTable(name string) (*table, error) {
	t, found, err := loadTable(name, s.roots)
	if err != nil {
		return nil, wrapWithSentinel(ErrTablesUnavailable, err, fmt.Sprintf("failed to load %s", name)).
			WithContext("resource", name)
	}
	if !found {
		return nil, newWithSentinel(ErrTablesUnavailable, fmt.Sprintf("required resource %s not found", name)).
			WithContext("resource", name)
	}
	return t, nil
}

// Config returns the configuration the service was built with.
func (s *Service) Config() Config {
	cfg := s.cfg
	cfg.StackTraceFilter = append([]string(nil), s.cfg.StackTraceFilter...)
	return cfg
}

// Reader returns the reader that understands err. It never returns nil.
func (s *Service) Reader(err error) Reader {
	return s.readers.Resolve(err)
}

// RegisterReader appends a reader after startup. Readers should be registered
// before the service is shared; see WithReader.
func (s *Service) RegisterReader(r Reader) {
	s.readers.Register(r)
}

// Catalog returns the catalog used to resolve type names.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

var defaultService = sync.OnceValues(func() (*Service, error) {
	return New(DefaultConfig())
})

// Default returns the process-wide service built from DefaultConfig and the
// embedded tables. It is built exactly once; if the tables cannot be loaded
// it panics with the configuration error.
func Default() *Service {
	s, err := defaultService()
	if err != nil {
		panic(err)
	}
	return s
}
