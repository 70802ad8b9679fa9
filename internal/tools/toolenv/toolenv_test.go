package toolenv

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
	"github.com/louisbranch/pkmnkit/internal/platform/i18n/catalog"
)

func TestOpenCatalog(t *testing.T) {
	if _, err := OpenCatalog(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty path")
	}
	cat, err := OpenCatalog(context.Background(), filepath.Join(t.TempDir(), "refdb.sqlite"))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	if _, err := cat.Species("Pikachu"); err != nil {
		t.Fatalf("expected seeded species: %v", err)
	}
}

func TestDescribe(t *testing.T) {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	tests := []struct {
		name   string
		locale string
		err    error
		want   string
	}{
		{"nil", "en-US", nil, ""},
		{"plain", "en-US", errors.New("disk full"), "disk full"},
		{"out of range", "en-US", apperrors.OutOfRange("level", 1, 100), "level must be between 1 and 100."},
		{"wrapped unsupported", "en-US", apperrors.Wrap(apperrors.CodeInvalidFormat, "decode", apperrors.Unsupported("ability", "Red")), "The file is not a recognized save"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(bundle, tt.locale, tt.err); !strings.HasPrefix(got, tt.want) {
				t.Fatalf("expected prefix %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLocalizeCarriesStatus(t *testing.T) {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	domainErr := apperrors.OutOfRange("level", 1, 100)
	localized := Localize(bundle, "en-US", domainErr)
	if !apperrors.HasCode(localized, apperrors.CodeOutOfRange) {
		t.Fatalf("expected domain code kept in chain, got %v", localized)
	}
	st, ok := status.FromError(localized)
	if !ok {
		t.Fatalf("expected status from %v", localized)
	}
	if st.Code() != codes.OutOfRange {
		t.Fatalf("expected %s, got %s", codes.OutOfRange, st.Code())
	}
	var msg *errdetails.LocalizedMessage
	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.LocalizedMessage:
			msg = v
		case *errdetails.ErrorInfo:
			info = v
		}
	}
	if msg == nil || msg.Locale != "en-US" || msg.Message != localized.Error() {
		t.Fatalf("expected localized message %q, got %+v", localized.Error(), msg)
	}
	if info == nil || info.Reason != string(apperrors.CodeOutOfRange) {
		t.Fatalf("expected reason %s, got %+v", apperrors.CodeOutOfRange, info)
	}

	st, _ = status.FromError(Localize(bundle, "en-US", errors.New("disk full")))
	if st.Code() != codes.Unknown || st.Message() != "disk full" {
		t.Fatalf("expected unknown disk full status, got %s %q", st.Code(), st.Message())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("disk full"), 1},
		{"out of range", apperrors.OutOfRange("level", 1, 100), int(codes.OutOfRange)},
		{"unsupported", apperrors.Unsupported("ability", "Red"), int(codes.Unimplemented)},
		{"localized checksum", Localize(nil, "en-US", apperrors.New(apperrors.CodeChecksumMismatch, "bad")), int(codes.DataLoss)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("expected exit code %d, got %d", tt.want, got)
			}
		})
	}
}
