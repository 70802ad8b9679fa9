// Package toolenv holds what the command-line tools share: the reference
// catalog, the localized string bundle and user-facing error rendering.
package toolenv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb/sqlite"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
	errori18n "github.com/louisbranch/pkmnkit/internal/platform/errors/i18n"
	"github.com/louisbranch/pkmnkit/internal/platform/i18n/catalog"
)

// Env is the configuration every tool reads from the environment.
type Env struct {
	DBPath string `env:"PKMN_DB_PATH" envDefault:"data/pkmn.db"`
	Locale string `env:"PKMN_LOCALE" envDefault:"en-US"`
}

// OpenCatalog migrates the reference database at path and loads it. The
// store is closed before returning; the catalog is an in-memory snapshot.
func OpenCatalog(ctx context.Context, path string) (*refdb.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("reference database path is required")
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open reference database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close reference database: %v", err)
		}
	}()
	cat, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference catalog: %w", err)
	}
	return cat, nil
}

// Describe renders err for the user in locale. Domain errors use the
// localized template of their code; other errors print as they are.
func Describe(bundle *catalog.Bundle, locale string, err error) string {
	var domainErr *apperrors.Error
	if err == nil {
		return ""
	}
	if !errors.As(err, &domainErr) || bundle == nil {
		return err.Error()
	}
	msgs := errori18n.FromBundle(bundle, bundle.Match(locale))
	return msgs.Format(string(domainErr.Code), domainErr.Metadata)
}

// UserError is an error whose text is already localized for the user.
type UserError struct {
	Text string
	Err  error

	// status is set for domain errors.
	status error
}

func (e *UserError) Error() string { return e.Text }

func (e *UserError) Unwrap() error { return e.Err }

// GRPCStatus reports the error as a status whose details carry the domain
// code and the localized text.
func (e *UserError) GRPCStatus() *status.Status {
	if e.status == nil {
		return status.New(codes.Unknown, e.Text)
	}
	return status.Convert(e.status)
}

// Localize wraps err so it prints as Describe renders it, keeping the
// original error in the chain.
func Localize(bundle *catalog.Bundle, locale string, err error) error {
	if err == nil {
		return nil
	}
	out := &UserError{Text: Describe(bundle, locale, err), Err: err}
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		out.status = domainErr.ToGRPCStatus(locale, out.Text)
	}
	return out
}

// ExitCode maps err to a process exit status: 0 for nil, the gRPC code of a
// domain error, and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return 1
	}
	return int(code.GRPCCode())
}
