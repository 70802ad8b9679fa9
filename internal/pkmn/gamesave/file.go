package gamesave

import (
	"log"
	"os"
	"path/filepath"

	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pkmnsave-*")
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "create temp save", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err == nil {
			return
		}
		if closeErr := tmp.Close(); closeErr != nil && !os.IsNotExist(closeErr) {
			log.Printf("close temp save %s: %v", tmpName, closeErr)
		}
		if removeErr := os.Remove(tmpName); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("remove temp save %s: %v", tmpName, removeErr)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "write temp save", err)
	}
	if err = tmp.Sync(); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "sync temp save", err)
	}
	if err = tmp.Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "close temp save", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "replace save", err)
	}
	return nil
}
