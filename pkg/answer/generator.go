// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package answer generates random strings that satisfy a regular expression.
package answer

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/babooppa6/gleamSolver/pkg/common"
)

const (
	// DefaultRepeatCap bounds how far any repetition may exceed its minimum.
	DefaultRepeatCap = 3
	// MaxRepeatCap is the largest accepted repeat cap.
	MaxRepeatCap = 3

	defaultAttempts = 16
)

var (
	// ErrInvalidPattern is returned for patterns that cannot be parsed.
	ErrInvalidPattern = errors.New("invalid answer pattern")
	// ErrUnsatisfiable is returned when no generated candidate matches.
	ErrUnsatisfiable = errors.New("could not generate a matching answer")
)

// printable is used for "any character" nodes.
const printable = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces random strings matching a pattern.
type Generator struct {
	cap      int
	attempts int
	rand     common.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRepeatCap sets the repeat cap, clamped to [1, MaxRepeatCap].
func WithRepeatCap(n int) Option {
	return func(g *Generator) {
		switch {
		case n < 1:
			n = 1
		case n > MaxRepeatCap:
			n = MaxRepeatCap
		}
		g.cap = n
	}
}

// WithRand sets the random source.
func WithRand(r common.Rand) Option {
	return func(g *Generator) {
		g.rand = r
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		cap:      DefaultRepeatCap,
		attempts: defaultAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = common.NewRand(0)
	}
	return g
}

// RepeatCap returns the configured repeat cap.
func (g *Generator) RepeatCap() int {
	return g.cap
}

// Generate returns one random string that fully matches pattern.
func (g *Generator) Generate(pattern string) (string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	check, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	// Hosts reject blank answers, so an empty match is only returned when
	// no attempt produced anything else.
	emptyMatched := false
	for i := 0; i < g.attempts; i++ {
		var sb strings.Builder
		if err := g.walk(&sb, re); err != nil {
			return "", err
		}
		s := sb.String()
		if !check.MatchString(s) {
			continue
		}
		if s == "" {
			emptyMatched = true
			continue
		}
		return s, nil
	}
	if emptyMatched {
		return "", nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsatisfiable, pattern)
}

// MaxLength returns an upper bound, in runes, of any string Generate can
// return for pattern. It is -1 for patterns that cannot be parsed.
func (g *Generator) MaxLength(pattern string) int {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return -1
	}
	return g.maxLen(re)
}

func (g *Generator) walk(sb *strings.Builder, re *syntax.Regexp) error {
	switch re.Op {
	case syntax.OpNoMatch:
		return fmt.Errorf("%w: pattern never matches", ErrUnsatisfiable)
	case syntax.OpEmptyMatch,
		syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return nil
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			sb.WriteRune(r)
		}
		return nil
	case syntax.OpCharClass:
		sb.WriteRune(g.pickClass(re.Rune))
		return nil
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		sb.WriteByte(printable[g.rand.IntN(len(printable))])
		return nil
	case syntax.OpCapture:
		return g.walk(sb, re.Sub[0])
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		lo, hi := g.bounds(re)
		n := lo + g.rand.IntN(hi-lo+1)
		for i := 0; i < n; i++ {
			if err := g.walk(sb, re.Sub[0]); err != nil {
				return err
			}
		}
		return nil
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if err := g.walk(sb, sub); err != nil {
				return err
			}
		}
		return nil
	case syntax.OpAlternate:
		return g.walk(sb, re.Sub[g.rand.IntN(len(re.Sub))])
	}
	return fmt.Errorf("%w: unsupported construct %v", ErrInvalidPattern, re.Op)
}

// bounds returns the inclusive repetition count range for a repeat node.
func (g *Generator) bounds(re *syntax.Regexp) (int, int) {
	switch re.Op {
	case syntax.OpStar:
		return 0, g.cap
	case syntax.OpPlus:
		return 1, 1 + g.cap
	case syntax.OpQuest:
		return 0, 1
	}

	lo, hi := re.Min, re.Min+g.cap
	if re.Max >= 0 && re.Max < hi {
		hi = re.Max
	}
	return lo, hi
}

// pickClass draws a rune from a class, preferring printable ASCII.
func (g *Generator) pickClass(ranges []rune) rune {
	if r, ok := g.pickRanges(clip(ranges, 0x21, 0x7e)); ok {
		return r
	}
	if r, ok := g.pickRanges(clip(ranges, 0x20, utf8.MaxRune)); ok {
		return r
	}
	if r, ok := g.pickRanges(ranges); ok {
		return r
	}
	return 'a'
}

func (g *Generator) pickRanges(ranges []rune) (rune, bool) {
	var total int64
	for i := 0; i+1 < len(ranges); i += 2 {
		total += int64(ranges[i+1]-ranges[i]) + 1
	}
	if total == 0 {
		return 0, false
	}

	n := g.rand.Int64N(total)
	for i := 0; i+1 < len(ranges); i += 2 {
		size := int64(ranges[i+1]-ranges[i]) + 1
		if n < size {
			return ranges[i] + rune(n), true
		}
		n -= size
	}
	return 0, false
}

// clip intersects a sorted range list with [lo, hi].
func clip(ranges []rune, lo, hi rune) []rune {
	var out []rune
	for i := 0; i+1 < len(ranges); i += 2 {
		a, b := max(ranges[i], lo), min(ranges[i+1], hi)
		if a <= b {
			out = append(out, a, b)
		}
	}
	return out
}

func (g *Generator) maxLen(re *syntax.Regexp) int {
	switch re.Op {
	case syntax.OpLiteral:
		return len(re.Rune)
	case syntax.OpCharClass, syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return 1
	case syntax.OpCapture:
		return g.maxLen(re.Sub[0])
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		_, hi := g.bounds(re)
		return hi * g.maxLen(re.Sub[0])
	case syntax.OpConcat:
		n := 0
		for _, sub := range re.Sub {
			n += g.maxLen(sub)
		}
		return n
	case syntax.OpAlternate:
		n := 0
		for _, sub := range re.Sub {
			n = max(n, g.maxLen(sub))
		}
		return n
	}
	return 0
}
