package phono

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits transcription strings into the segments of one inventory
// using maximal munch: at every position the longest matching symbol wins.
// This matters because symbols share prefixes: a plain consonant and the
// same consonant with a diacritic, a single stop and an affricate written
// with a tie bar.
//
// A tokenizer snapshots the inventory's symbol list at construction, so a
// given tokenizer always produces identical output for identical input.
// Construct it after the inventory is sealed.
type Tokenizer struct {
	inv     *Inventory
	symbols []string
	logger  *Logger
}

// NewTokenizer builds a tokenizer over inv's segments.
//
// Candidate symbols are ordered by byte length descending, then
// lexicographically: no symbol that is a prefix of another is ever tried
// before the longer one, and the order is stable across runs. Empty symbols
// (the Null sentinel, should it ever be inserted) are excluded, since a
// zero-length match would stall the scan.
func NewTokenizer(inv *Inventory) *Tokenizer {
	symbols := inv.Symbols()
	symbols = slices.DeleteFunc(symbols, func(s string) bool { return s == "" })
	slices.SortFunc(symbols, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return &Tokenizer{inv: inv, symbols: symbols, logger: inv.logger}
}

// Parse splits text into an ordered sequence of inventory segments.
//
// The input is NFC-normalized before scanning. Whitespace between tokens
// (including leading and trailing) is consumed silently. If no symbol
// matches at some position, Parse returns an *ErrNoMatch carrying the byte
// offset into the normalized input, never a partial result.
func (t *Tokenizer) Parse(text string) ([]*Segment, error) {
	input := norm.NFC.String(text)

	var out []*Segment
	pos := skipSpace(input, 0)
	for pos < len(input) {
		matched := ""
		for _, symbol := range t.symbols {
			if strings.HasPrefix(input[pos:], symbol) {
				matched = symbol
				break
			}
		}
		if matched == "" {
			err := &ErrNoMatch{Offset: pos, Snippet: snippet(input[pos:])}
			t.logger.LogParse(len(input), len(out), err)
			return nil, err
		}
		out = append(out, t.inv.segments[matched])
		pos = skipSpace(input, pos+len(matched))
	}

	t.logger.LogParse(len(input), len(out), nil)
	return out, nil
}

// ParseAll tokenizes texts concurrently, preserving input order. The first
// failure cancels the remaining work and is returned, wrapped with the index
// of the offending text.
func (t *Tokenizer) ParseAll(ctx context.Context, texts []string) ([][]*Segment, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	out := make([][]*Segment, len(texts))
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			segs, err := t.Parse(text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			out[i] = segs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// snippet trims the unmatched remainder to a few runes for error messages.
func snippet(s string) string {
	const maxRunes = 8
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
