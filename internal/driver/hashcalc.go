package driver

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"svlower/internal/ast"
	"svlower/internal/hir"
)

// Digest is a blake3-256 content hash.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// filesDigest: H(path_0 || 0 || H(content_0) || ...) over the bundle files in
// order. Spans of cached diagnostics are file IDs, so order matters too.
func filesDigest(files []ast.BundleFile) Digest {
	h := blake3.New()
	for _, f := range files {
		_, _ = h.Write([]byte(f.Path))
		_, _ = h.Write([]byte{0})
		sum := blake3.Sum256([]byte(f.Content))
		_, _ = h.Write(sum[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// optionsFingerprint lists every option that changes a unit's output.
func optionsFingerprint(opts hir.Options) string {
	return fmt.Sprintf("svlower/%d pair=%t xz=%t", diskCacheSchemaVersion, opts.PairNonAnsiPorts, opts.WarnDecimalXZ)
}

// combineDigest: H(fingerprint || 0 || files || unit).
func combineDigest(unit []byte, files Digest, fingerprint string) Digest {
	h := blake3.New()
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(files[:])
	_, _ = h.Write(unit)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// unitDigest keys the lowering result of one unit: the canonical encoding of
// its syntax, the file set it quotes from and the options changing output.
func unitDigest(u *ast.Root, files Digest, fingerprint string) (Digest, error) {
	data, err := ast.EncodeUnit(u)
	if err != nil {
		return Digest{}, fmt.Errorf("encode unit: %w", err)
	}
	return combineDigest(data, files, fingerprint), nil
}
