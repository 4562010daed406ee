package cli

// This file implements the diagnostics commands: listing the code table and
// looking up codes, types, protocol mappings and documentation links.

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"errdiag/pkg/diag"
)

// Options are the persistent flags shared by every diagnostics command.
type Options struct {
	ConfigPath      string
	Resources       []string
	FullStackTraces bool
	Quiet           bool
}

// Bind registers the options as persistent flags of cmd.
func (o *Options) Bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.ConfigPath, "config", "", "Config file (default ~/.errdiag/config.yaml)")
	f.StringSliceVar(&o.Resources, "resources", nil, "Extra resource directories; later ones override earlier ones")
	f.BoolVar(&o.FullStackTraces, "full-stack-traces", false, "Keep internal frames in stack traces")
	f.BoolVarP(&o.Quiet, "quiet", "q", false, "Print only tables and values")
}

// Inspector runs diagnostics commands against a service built from the
// resolved configuration.
type Inspector struct {
	opts   *Options
	logger *zap.Logger
	lookup func(string) (string, bool)
}

// NewInspector returns an Inspector reading options at command run time.
func NewInspector(opts *Options, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{opts: opts, logger: logger, lookup: os.LookupEnv}
}

// Service resolves the configuration and builds a diagnostics service.
func (in *Inspector) Service() (*diag.Service, error) {
	cfg, err := resolveConfig(in.opts, in.lookup)
	if err != nil {
		return nil, err
	}
	roots, err := cfg.resourceRoots()
	if err != nil {
		return nil, err
	}
	svc, err := diag.New(cfg.serviceConfig(), diag.WithLogger(in.logger), diag.WithResources(roots...))
	if err != nil {
		return nil, wrapWithSentinel(ErrServiceInitFailed, err, fmt.Sprintf("failed to initialize diagnostics service: %v", err))
	}
	return svc, nil
}

// Commands returns the diagnostics subcommands.
func (in *Inspector) Commands() []*cobra.Command {
	return []*cobra.Command{
		in.newCodesCmd(),
		in.newCodeCmd(),
		in.newTypeCmd(),
		in.newMappingCmd(),
		in.newDocCmd(),
	}
}

// run builds the service and a printer for cmd, then calls fn. Errors are
// printed and logged the same way for every command.
func (in *Inspector) run(cmd *cobra.Command, msg string, fn func(svc *diag.Service, p *Printer) error) error {
	p := NewPrinter(cmd.OutOrStdout())
	p.Quiet = in.opts.Quiet
	svc, err := in.Service()
	if err == nil {
		err = fn(svc, p)
	}
	if err != nil {
		NewPrinter(cmd.ErrOrStderr()).Error(msg)
		logStructuredError(in.logger, svc, err, msg)
	}
	return err
}

func (in *Inspector) newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List registered error codes",
		Long:  "List every error type with its stable integer code, ordered by code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return in.run(cmd, "Failed to list codes", func(svc *diag.Service, p *Printer) error {
				entries := svc.Codes()
				data := make([][]string, 0, len(entries)+1)
				data = append(data, []string{"Code", "Type"})
				for _, e := range entries {
					data = append(data, []string{strconv.Itoa(e.Code), e.TypeName})
				}
				p.Section("Error codes")
				p.TableBoxed(data)
				p.Info(fmt.Sprintf("%d codes registered", len(entries)))
				return nil
			})
		},
	}
}

func (in *Inspector) newCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code <type>",
		Short: "Show the code of an error type",
		Long:  "Show the code registered for a fully-qualified error type name, e.g. io/fs.PathError",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return in.run(cmd, "Unknown error type", func(svc *diag.Service, p *Printer) error {
				code := svc.CodeForName(args[0])
				if code == diag.NoCode {
					return wrapWithSentinelAndContext(ErrUnknownTypeName, nil,
						fmt.Sprintf("no code registered for %s", args[0]), map[string]any{"type": args[0]})
				}
				p.Printf("%d\n", code)
				return nil
			})
		},
	}
}

func (in *Inspector) newTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "type <code>",
		Short: "Show the error type registered for a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return in.run(cmd, "Code lookup failed", func(svc *diag.Service, p *Printer) error {
				code, err := strconv.Atoi(args[0])
				if err != nil {
					return wrapWithSentinelAndContext(ErrInvalidCodeArgument, err,
						fmt.Sprintf("invalid error code %q", args[0]), map[string]any{"code": args[0]})
				}
				t, ok := svc.TypeFor(code)
				if !ok {
					return wrapWithSentinelAndContext(ErrCodeNotFound, nil,
						fmt.Sprintf("no error type registered for code %d", code), map[string]any{"code": code})
				}
				p.Printf("%s\n", diag.TypeName(t))
				return nil
			})
		},
	}
}

func (in *Inspector) newMappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mapping <protocol> <type>",
		Short: "Show the protocol error token for an error type",
		Long: `Show the token a protocol uses for an error type, e.g. "errdiag mapping grpc io/fs.PathError".
Types without a protocol mapping fall back to their generic code.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			protocol, name := args[0], args[1]
			return in.run(cmd, "Mapping lookup failed", func(svc *diag.Service, p *Printer) error {
				t, err := resolveType(svc, name)
				if err != nil {
					return err
				}
				token, err := svc.MappingFor(protocol, t)
				if err != nil {
					return wrapWithSentinelAndContext(ErrMappingFailed, err,
						fmt.Sprintf("failed to map %s for %s", name, protocol),
						map[string]any{"protocol": protocol, "type": name})
				}
				p.Printf("%s\n", token)
				return nil
			})
		},
	}
}

func (in *Inspector) newDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc <type>",
		Short: "Show documentation links for an error type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return in.run(cmd, "Documentation lookup failed", func(svc *diag.Service, p *Printer) error {
				t, err := resolveType(svc, args[0])
				if err != nil {
					return err
				}
				data := [][]string{{"Kind", "URL"}}
				if url, ok := svc.DocURL(t); ok {
					data = append(data, []string{"doc", url})
				}
				if url, ok := svc.GoDocURL(t); ok {
					data = append(data, []string{"godoc", url})
				}
				if len(data) == 1 {
					return wrapWithSentinelAndContext(ErrDocNotFound, nil,
						fmt.Sprintf("no documentation entry for %s", args[0]), map[string]any{"type": args[0]})
				}
				p.Section(diag.TypeName(t))
				p.TableBoxed(data)
				return nil
			})
		},
	}
}

func resolveType(svc *diag.Service, name string) (reflect.Type, error) {
	t, err := svc.Catalog().Resolve(name)
	if err != nil {
		return nil, wrapWithSentinelAndContext(ErrUnknownTypeName, err,
			fmt.Sprintf("unknown error type %s", name), map[string]any{"type": name})
	}
	return t, nil
}
