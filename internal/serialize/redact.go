package serialize

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// shortHashLen is the number of hex characters kept from a BLAKE3
// digest for redaction: non-cryptographic in purpose, but
// collision-resistant in practice at this length (spec.md §9).
const shortHashLen = 16

// ShortHash returns the first shortHashLen hex characters of
// BLAKE3(s). The same input always redacts to the same hash within
// (and across) a run, keeping a redacted report internally
// consistent.
func ShortHash(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:shortHashLen]
}

// RedactPath replaces path with its short hash (plus the original
// extension, if any) when mode requires it; otherwise it returns path
// unchanged.
func RedactPath(path string, mode types.RedactMode) string {
	if mode == types.RedactNone {
		return path
	}
	hash := ShortHash(path)
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return hash
	}
	return hash + "." + ext
}

// RedactModuleKey hashes a module key, but only under RedactAll; the
// literal "(root)" sentinel is never hashed (it carries no path
// information to leak) under any mode.
func RedactModuleKey(key string, mode types.RedactMode) string {
	if mode != types.RedactAll || key == "(root)" {
		return key
	}
	return ShortHash(key)
}

// RedactedFields reports which envelope field names were touched by
// mode, for Envelope.Redacted.
func RedactedFields(mode types.RedactMode) []string {
	switch mode {
	case types.RedactPaths:
		return []string{"path"}
	case types.RedactAll:
		return []string{"path", "module"}
	default:
		return nil
	}
}
