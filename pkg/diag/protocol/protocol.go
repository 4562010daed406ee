// Package protocol translates errors into transport status values using the
// per-protocol mapping tables of a diagnostics service.
package protocol

import (
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"errdiag/pkg/diag"
)

// Protocol names used to select mapping tables.
const (
	GRPC = "grpc"
	HTTP = "http"
)

// Mapper is the part of *diag.Service the adapters need.
type Mapper interface {
	MappingOf(protocol string, err error) (string, error)
	Reader(err error) diag.Reader
}

// GRPCStatus maps err to a gRPC status. The mapped token may be a code name
// such as NOT_FOUND or a code number; anything else yields codes.Unknown.
// The status message is the message reported by err's reader.
func GRPCStatus(m Mapper, err error) (*status.Status, error) {
	if err == nil {
		return status.New(codes.OK, ""), nil
	}
	token, merr := m.MappingOf(GRPC, err)
	if merr != nil {
		return nil, merr
	}
	return status.New(parseGRPCCode(token), m.Reader(err).Message(err)), nil
}

// GRPCError is GRPCStatus(m, err).Err(). A mapping failure is returned as is.
func GRPCError(m Mapper, err error) error {
	st, serr := GRPCStatus(m, err)
	if serr != nil {
		return serr
	}
	return st.Err()
}

func parseGRPCCode(token string) codes.Code {
	token = strings.TrimSpace(token)
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(token)))); err == nil {
		return c
	}
	if err := c.UnmarshalJSON([]byte(token)); err == nil && token != "null" {
		return c
	}
	return codes.Unknown
}

// HTTPStatus maps err to an HTTP status code. A token that is not a known
// status code yields http.StatusInternalServerError.
func HTTPStatus(m Mapper, err error) (int, error) {
	if err == nil {
		return http.StatusOK, nil
	}
	token, merr := m.MappingOf(HTTP, err)
	if merr != nil {
		return 0, merr
	}
	code, cerr := strconv.Atoi(strings.TrimSpace(token))
	if cerr != nil || http.StatusText(code) == "" {
		return http.StatusInternalServerError, nil
	}
	return code, nil
}
