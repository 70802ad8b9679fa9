// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidArgument marks a well-formed value that is not a member of
	// the valid set for a game, species or pocket.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeOutOfRange marks a numeric value outside its declared bound.
	CodeOutOfRange Code = "OUT_OF_RANGE"
	// CodeUnsupported marks an attribute or operation the game does not have.
	CodeUnsupported Code = "FEATURE_NOT_IN_GAME"
	// CodeInvalidFormat marks bytes that match no known layout or fail a checksum.
	CodeInvalidFormat Code = "INVALID_FORMAT"
	// CodeChecksumMismatch marks a recognized layout whose checksum is wrong.
	CodeChecksumMismatch Code = "CHECKSUM_MISMATCH"

	// CodeNotFound marks a missing reference entry or file.
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode returns the appropriate gRPC status code for this error code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeOutOfRange:
		return codes.OutOfRange
	case CodeUnsupported:
		return codes.Unimplemented
	case CodeInvalidFormat, CodeChecksumMismatch:
		return codes.DataLoss
	case CodeNotFound:
		return codes.NotFound
	default:
		return codes.Internal
	}
}
