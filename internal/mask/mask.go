// Package mask derives the per-mail mask string and classifier from a block
// timestamp, a caller phrase and the ledger's rolling state.
//
// Everything here is pure: the caller owns the rolling state and stores the
// NextState returned by Derive. All offsets and splits work on raw bytes, so
// the transform is reproducible for any input, including invalid UTF-8.
package mask

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/amail/internal/common"
)

const (
	// MinPhraseLen is the shortest phrase for which positions 1, len/2+1
	// and len-2 all exist.
	MinPhraseLen = 3

	// MaxStateLen caps the rolling state after every update.
	MaxStateLen = 49

	// ClassifierModulus bounds every classifier value to [0, ClassifierModulus).
	ClassifierModulus = 3
)

// Classifier is the three-value tag attached to a mail.
type Classifier [3]uint8

// Sum returns the total of the three values.
func (c Classifier) Sum() int {
	return int(c[0]) + int(c[1]) + int(c[2])
}

// Result is the output of a single derivation.
type Result struct {
	Mask       string
	Classifier Classifier
	NextState  string
}

// ValidatePhrase reports common.ErrorInvalidPhrase for phrases too short to
// derive from.
func ValidatePhrase(phrase string) error {
	if len(phrase) < MinPhraseLen {
		return fmt.Errorf("%w: need at least %d bytes, got %d", common.ErrorInvalidPhrase, MinPhraseLen, len(phrase))
	}
	return nil
}

// Classify computes the classifier from bytes 0, len/2 and len-1 of phrase.
func Classify(phrase string) (Classifier, error) {
	if err := ValidatePhrase(phrase); err != nil {
		return Classifier{}, err
	}
	n := len(phrase)
	return Classifier{
		phrase[0] % ClassifierModulus,
		phrase[n/2] % ClassifierModulus,
		phrase[n-1] % ClassifierModulus,
	}, nil
}

// Derive computes the mask, classifier and the rolling state that replaces
// state once the mail is recorded.
//
// The mask splices six fragments in a fixed order:
//
//	tsLeft + phraseLeft + stateLeft + tsRight + stateRight + phraseRight
//
// where each pair is split at an offset taken from bytes 1, len/2+1 and
// len-2 of phrase, reduced modulo the length of the piece being split.
func Derive(timestamp int64, phrase, state string) (Result, error) {
	classifier, err := Classify(phrase)
	if err != nil {
		return Result{}, err
	}
	if state == "" {
		return Result{}, common.ErrorInvalidState
	}

	ts := strconv.FormatInt(timestamp, 10)
	n := len(phrase)

	tsLeft, tsRight := splitAt(ts, int(phrase[1]))
	phraseLeft, phraseRight := splitAt(phrase, int(phrase[n/2+1]))
	stateLeft, stateRight := splitAt(state, int(phrase[n-2]))

	buf := make([]byte, 0, len(ts)+len(phrase)+len(state))
	buf = append(buf, tsLeft...)
	buf = append(buf, phraseLeft...)
	buf = append(buf, stateLeft...)
	buf = append(buf, tsRight...)
	buf = append(buf, stateRight...)
	buf = append(buf, phraseRight...)

	return Result{
		Mask:       string(buf),
		Classifier: classifier,
		NextState:  NextState(state, phraseRight),
	}, nil
}

// NextState builds the rolling state that follows state: its second half
// with phraseRight appended, whitespace removed, capped at MaxStateLen bytes.
func NextState(state, phraseRight string) string {
	next := stripWhitespace(state[len(state)/2:] + phraseRight)
	if len(next) > MaxStateLen {
		next = next[:MaxStateLen]
	}
	return next
}

// splitAt cuts s at offset mod len(s). s must not be empty.
func splitAt(s string, offset int) (string, string) {
	i := offset % len(s)
	return s[:i], s[i:]
}

// stripWhitespace drops Unicode whitespace runes and keeps every other byte,
// including bytes that are not valid UTF-8.
func stripWhitespace(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			out = append(out, s[i])
			i++
			continue
		}
		if !unicode.IsSpace(r) {
			out = append(out, s[i:i+size]...)
		}
		i += size
	}
	return string(out)
}
