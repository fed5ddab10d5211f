// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package answer

import (
	"errors"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babooppa6/gleamSolver/pkg/common"
)

func TestGenerate_MatchesPattern(t *testing.T) {
	patterns := []string{
		`.+`,
		`[0-9]{4}`,
		`[A-Z][a-z]{3,8}( [a-z]{2,8}){2,5}[.!]`,
		`https://www\.youtube\.com/watch\?v=[A-Za-z0-9_-]{11}`,
		`^(yes|no|maybe)$`,
		`\d+-\w*`,
		`[^aeiou]{2}x?`,
		`(?i)hello`,
		`a{2,}b*`,
		`[a-z]+@[a-z]+\.com`,
		`\bword\b`,
	}

	g := New(WithRand(common.NewRand(42)))
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			check := regexp.MustCompile(`^(?:` + pattern + `)$`)
			for i := 0; i < 50; i++ {
				got, err := g.Generate(pattern)
				require.NoError(t, err)
				assert.Truef(t, check.MatchString(got), "%q does not match %q", got, pattern)
			}
		})
	}
}

func TestGenerate_BoundedLength(t *testing.T) {
	tests := []struct {
		pattern string
		cap     int
		max     int
	}{
		{`.*`, 3, 3},
		{`.+`, 3, 4},
		{`.+`, 1, 2},
		{`a{5,}`, 3, 8},
		{`(ab)+`, 2, 6},
		{`x{2,3}`, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			g := New(WithRepeatCap(tt.cap), WithRand(common.NewRand(7)))
			assert.Equal(t, tt.max, g.MaxLength(tt.pattern))

			for i := 0; i < 100; i++ {
				got, err := g.Generate(tt.pattern)
				require.NoError(t, err)
				assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.max)
			}
		})
	}
}

func TestWithRepeatCap_Clamped(t *testing.T) {
	assert.Equal(t, 1, New(WithRepeatCap(0)).RepeatCap())
	assert.Equal(t, 3, New(WithRepeatCap(10)).RepeatCap())
	assert.Equal(t, 2, New(WithRepeatCap(2)).RepeatCap())
	assert.Equal(t, DefaultRepeatCap, New().RepeatCap())
}

func TestGenerate_InvalidPattern(t *testing.T) {
	_, err := New().Generate(`([a-z`)
	assert.True(t, errors.Is(err, ErrInvalidPattern))
}

func TestGenerate_Unsatisfiable(t *testing.T) {
	_, err := New().Generate(`[^\x00-\x{10FFFF}]`)
	assert.Error(t, err)
}

func TestGenerate_PrefersNonEmpty(t *testing.T) {
	for _, pattern := range []string{`[a-z]*`, `.*`, `(foo)?`, `\d{0,4}`} {
		t.Run(pattern, func(t *testing.T) {
			for seed := uint64(1); seed <= 200; seed++ {
				got, err := New(WithRand(common.NewRand(seed))).Generate(pattern)
				require.NoError(t, err)
				assert.NotEmptyf(t, got, "seed %d", seed)
			}
		})
	}
}

func TestGenerate_OnlyEmptyMatch(t *testing.T) {
	for _, pattern := range []string{``, `^$`, `(?:)`} {
		got, err := New(WithRand(common.NewRand(3))).Generate(pattern)
		require.NoError(t, err, pattern)
		assert.Empty(t, got, pattern)
	}
}
