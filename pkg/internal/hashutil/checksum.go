// Package hashutil computes content checksums in the "sha256:<hex>" form
// stored in the lock file.
package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Prefix marks the digest algorithm of a checksum
const Prefix = "sha256:"

// Bytes returns the checksum of data
func Bytes(data []byte) string {
	return fmt.Sprintf("%s%x", Prefix, sha256.Sum256(data))
}

// File returns the checksum of the file at path
func File(fsys afero.Fs, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", Prefix, hash.Sum(nil)), nil
}
