package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// ParseVersionNumbers
// ---------------------------------------------------------------------------

func TestParseVersionNumbers(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"1", []int{1}},
		{"1.2.3", []int{1, 2, 3}},
		{"0.0.0", []int{0, 0, 0}},
		{"10.20", []int{10, 20}},
		{"1.2.3.4", []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got, ok := ParseVersionNumbers(tt.text)
		require.True(t, ok, "text %q", tt.text)
		assert.Equal(t, tt.want, got, "text %q", tt.text)
	}
}

func TestParseVersionNumbersRejectsMalformed(t *testing.T) {
	for _, text := range []string{"", "a.b", "1..2", "1.2.", ".1", "1.-2", "1.+2", "1.2a"} {
		_, ok := ParseVersionNumbers(text)
		assert.False(t, ok, "text %q", text)
	}
}

// ---------------------------------------------------------------------------
// VersionComponents.FirstNonZero
// ---------------------------------------------------------------------------

func TestFirstNonZero(t *testing.T) {
	tests := []struct {
		numbers []int
		want    int
	}{
		{[]int{1, 2, 3}, 0},
		{[]int{0, 1, 0}, 1},
		{[]int{0, 0, 1}, 2},
		{[]int{0, 0, 0}, -1},
		{nil, -1},
	}
	for _, tt := range tests {
		version := VersionComponents{Numbers: tt.numbers}
		assert.Equal(t, tt.want, version.FirstNonZero(), "numbers %v", tt.numbers)
	}
}

// ---------------------------------------------------------------------------
// VersionComponents.Bumped
// ---------------------------------------------------------------------------

func TestBumped(t *testing.T) {
	tests := []struct {
		name  string
		in    VersionComponents
		index int
		want  VersionComponents
	}{
		{
			name:  "last component",
			in:    VersionComponents{Numbers: []int{1, 2, 3}},
			index: 2,
			want:  VersionComponents{Numbers: []int{1, 2, 4}},
		},
		{
			name:  "middle component resets later ones",
			in:    VersionComponents{Numbers: []int{1, 2, 3}},
			index: 1,
			want:  VersionComponents{Numbers: []int{1, 3, 0}},
		},
		{
			name:  "first component resets the rest",
			in:    VersionComponents{Numbers: []int{1, 2, 3}},
			index: 0,
			want:  VersionComponents{Numbers: []int{2, 0, 0}},
		},
		{
			name:  "single component",
			in:    VersionComponents{Numbers: []int{10}},
			index: 0,
			want:  VersionComponents{Numbers: []int{11}},
		},
		{
			name:  "suffix with numeric tail increments the tail",
			in:    VersionComponents{Numbers: []int{0, 0, 3}, Suffix: "-alpha.2"},
			index: 2,
			want:  VersionComponents{Numbers: []int{0, 0, 3}, Suffix: "-alpha.3"},
		},
		{
			name:  "suffix without numeric tail is dropped",
			in:    VersionComponents{Numbers: []int{0, 0, 3}, Suffix: "-alpha"},
			index: 2,
			want:  VersionComponents{Numbers: []int{0, 0, 4}},
		},
		{
			name:  "suffix is dropped when bumping above the last component",
			in:    VersionComponents{Numbers: []int{1, 0, 0}, Suffix: "-alpha"},
			index: 0,
			want:  VersionComponents{Numbers: []int{2, 0, 0}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Bumped(tt.index))
		})
	}
}

func TestBumpedDoesNotMutateReceiver(t *testing.T) {
	version := VersionComponents{Numbers: []int{1, 2, 3}, Suffix: "-rc1"}
	_ = version.Bumped(0)
	assert.Equal(t, []int{1, 2, 3}, version.Numbers)
	assert.Equal(t, "-rc1", version.Suffix)
}

// ---------------------------------------------------------------------------
// VersionComponents.Truncated
// ---------------------------------------------------------------------------

func TestTruncated(t *testing.T) {
	version := VersionComponents{Numbers: []int{2, 0, 0}}

	assert.Equal(t, VersionComponents{Numbers: []int{2}}, version.Truncated(0))
	assert.Equal(t, VersionComponents{Numbers: []int{2, 0}}, version.Truncated(1))
	// At or past the last component the value is unchanged.
	assert.Equal(t, version, version.Truncated(2))
	assert.Equal(t, version, version.Truncated(5))
}

func TestTruncatedKeepsSuffixAtLastComponent(t *testing.T) {
	version := VersionComponents{Numbers: []int{0, 0, 3}, Suffix: "-alpha.3"}
	assert.Equal(t, version, version.Truncated(2))
}

// ---------------------------------------------------------------------------
// VersionComponents.String
// ---------------------------------------------------------------------------

func TestVersionComponentsString(t *testing.T) {
	tests := []struct {
		in   VersionComponents
		want string
	}{
		{VersionComponents{Numbers: []int{1, 2, 3}}, "1.2.3"},
		{VersionComponents{Numbers: []int{2}}, "2"},
		{VersionComponents{Numbers: []int{0, 0, 3}, Suffix: "-alpha.3"}, "0.0.3-alpha.3"},
		{VersionComponents{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}

// ---------------------------------------------------------------------------
// splitSuffixTail
// ---------------------------------------------------------------------------

func TestSplitSuffixTail(t *testing.T) {
	tests := []struct {
		suffix   string
		wantHead string
		wantTail int
		wantOK   bool
	}{
		{"-alpha.2", "-alpha.", 2, true},
		{"-rc10", "-rc", 10, true},
		{"+build.7", "+build.", 7, true},
		{"-alpha", "", 0, false},
		{"+build", "", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		head, tail, ok := splitSuffixTail(tt.suffix)
		assert.Equal(t, tt.wantOK, ok, "suffix %q", tt.suffix)
		assert.Equal(t, tt.wantHead, head, "suffix %q", tt.suffix)
		assert.Equal(t, tt.wantTail, tail, "suffix %q", tt.suffix)
	}
}
