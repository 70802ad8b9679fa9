package errors

import (
	"fmt"
	"strconv"
)

// OutOfRange reports a numeric field outside [min, max].
func OutOfRange(field string, min, max int) *Error {
	return WithMetadata(CodeOutOfRange,
		fmt.Sprintf("%s: valid values %d-%d", field, min, max),
		map[string]string{"Field": field, "Min": strconv.Itoa(min), "Max": strconv.Itoa(max)},
	)
}

// InvalidArgument reports a value that is not in the valid set for field.
func InvalidArgument(field, value string) *Error {
	return WithMetadata(CodeInvalidArgument,
		fmt.Sprintf("invalid %s: %s", field, value),
		map[string]string{"Field": field, "Value": value},
	)
}

// Unsupported reports an attribute or operation game does not have.
func Unsupported(feature, game string) *Error {
	return WithMetadata(CodeUnsupported,
		fmt.Sprintf("%s not in %s", feature, game),
		map[string]string{"Feature": feature, "Game": game},
	)
}

// InvalidFormat reports bytes that do not match any supported layout.
func InvalidFormat(reason string) *Error {
	return WithMetadata(CodeInvalidFormat, "invalid format: "+reason, map[string]string{"Reason": reason})
}

// NotFound reports a missing reference entry.
func NotFound(field, value string) *Error {
	return WithMetadata(CodeNotFound,
		fmt.Sprintf("%s not found: %s", field, value),
		map[string]string{"Field": field, "Value": value},
	)
}
