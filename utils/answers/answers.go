// Package answers holds the shared answer-normalization and verification
// pipeline. The sync job computes commitments with the same Normalize and
// Commit calls the verifier uses at submission time; the two sides must
// never diverge or every hash-mode puzzle becomes unsolvable.
package answers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrUnknownAnswerMode is returned when a puzzle row carries a mode
	// other than "hash" or "regex". This is invalid puzzle data, not a
	// wrong answer.
	ErrUnknownAnswerMode = errors.New("unknown answer mode")

	// ErrBadPattern is returned when a stored answer regex does not
	// compile. Operator-facing: the puzzle was published broken.
	ErrBadPattern = errors.New("invalid answer pattern")

	// ErrMissingAnswer is returned when a puzzle row lacks the answer
	// material its mode requires (no hash in hash mode, no pattern in
	// regex mode). Also invalid puzzle data.
	ErrMissingAnswer = errors.New("missing answer material")
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize canonicalizes free-text input: NFKC composition, trimmed,
// lowercased, whitespace runs collapsed to a single space. Idempotent.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRun.ReplaceAllString(s, " ")
}

// Commit returns the lowercase hex SHA-256 digest of s. Callers pass
// normalized text; the stored commitment for a puzzle answer is always
// Commit(Normalize(plaintext)).
func Commit(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CompilePattern compiles a stored answer pattern. Patterns are matched
// case-insensitively and are implicitly anchored: the whole normalized
// submission must match. Authors who want substring acceptance must write
// `.*` themselves.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`(?i)\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	return re, nil
}

// Verify grades a raw submission against a puzzle's stored answer material.
// mode selects the path: hash compares commitments of the normalized text,
// regex matches the compiled pattern against the normalized text.
func Verify(mode string, answerHash *string, answerRegex *string, raw string) (bool, error) {
	normalized := Normalize(raw)

	switch mode {
	case "hash":
		if answerHash == nil {
			return false, fmt.Errorf("%w: hash mode without stored hash", ErrMissingAnswer)
		}
		return Commit(normalized) == *answerHash, nil
	case "regex":
		if answerRegex == nil {
			return false, fmt.Errorf("%w: regex mode without stored pattern", ErrMissingAnswer)
		}
		re, err := CompilePattern(*answerRegex)
		if err != nil {
			return false, err
		}
		return re.MatchString(normalized), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownAnswerMode, mode)
	}
}
