package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/wsdeps/internal/core/domain"
	"go.trai.ch/wsdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints scan sets.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ScanSetDigest computes a single hash over the manifests of the scanned
// packages and the resulting resolver keys. Package locations are not part
// of the digest, so relocating a workspace keeps it stable.
func (h *Hasher) ScanSetDigest(set *domain.ScanSet) (string, error) {
	hasher := xxhash.New()

	for _, pkg := range set.Packages {
		_, _ = hasher.WriteString(pkg.Name.String())
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(filepath.Join(pkg.Path, ManifestName))
		if err != nil {
			return "", zerr.With(err, "package", pkg.Name.String())
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], sum)
		_, _ = hasher.Write(buf[:])
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	writeNames(hasher, set.Keys)
	writeNames(hasher, set.Skipped)

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeNames(hasher *xxhash.Digest, names []domain.InternedString) {
	for _, name := range names {
		_, _ = hasher.WriteString(name.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}
