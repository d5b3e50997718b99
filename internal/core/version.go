package core

import (
	"strconv"
	"strings"
)

// VersionComponents is a dot-separated numeric version with an optional
// pre-release or build suffix attached to the last numeric component.
// All operations return new values; nothing mutates in place, so a
// parsed version can feed several boundary computations safely.
type VersionComponents struct {
	Numbers []int
	Suffix  string
}

// ParseVersionNumbers parses dot-separated non-negative integers such
// as "1.2.3". Returns false on empty input, empty segments or any
// non-numeric segment.
func ParseVersionNumbers(text string) ([]int, bool) {
	if text == "" {
		return nil, false
	}
	segments := strings.Split(text, ".")
	numbers := make([]int, 0, len(segments))
	for _, segment := range segments {
		// Atoi tolerates a leading sign; version segments must not.
		if segment == "" || segment[0] < '0' || segment[0] > '9' {
			return nil, false
		}
		value, err := strconv.Atoi(segment)
		if err != nil {
			return nil, false
		}
		numbers = append(numbers, value)
	}
	return numbers, true
}

// FirstNonZero returns the index of the first non-zero component, or -1
// when every given component is zero.
func (v VersionComponents) FirstNonZero() int {
	for i, number := range v.Numbers {
		if number != 0 {
			return i
		}
	}
	return -1
}

// Bumped returns the next version boundary above v at the given
// component index: the component is incremented and all later
// components reset to zero. When the increment lands on the last given
// component and the suffix carries a numeric tail, the tail is
// incremented instead and the numbers stay untouched; any other
// increment discards the suffix, since the boundary has moved past the
// pre-release.
func (v VersionComponents) Bumped(index int) VersionComponents {
	numbers := append([]int(nil), v.Numbers...)
	if index == len(numbers)-1 && v.Suffix != "" {
		if head, tail, ok := splitSuffixTail(v.Suffix); ok {
			return VersionComponents{Numbers: numbers, Suffix: head + strconv.Itoa(tail+1)}
		}
	}
	numbers[index]++
	for i := index + 1; i < len(numbers); i++ {
		numbers[i] = 0
	}
	return VersionComponents{Numbers: numbers}
}

// Truncated returns v limited to components [0..index] inclusive. The
// suffix is carried along; callers that truncate below the original
// last component have already dropped it through Bumped.
func (v VersionComponents) Truncated(index int) VersionComponents {
	if index >= len(v.Numbers)-1 {
		return v
	}
	return VersionComponents{
		Numbers: append([]int(nil), v.Numbers[:index+1]...),
		Suffix:  v.Suffix,
	}
}

func (v VersionComponents) String() string {
	parts := make([]string, len(v.Numbers))
	for i, number := range v.Numbers {
		parts[i] = strconv.Itoa(number)
	}
	return strings.Join(parts, ".") + v.Suffix
}

// splitSuffixTail splits a suffix like "-alpha.2" into its head
// "-alpha." and numeric tail 2. Returns false when the suffix does not
// end in digits.
func splitSuffixTail(suffix string) (string, int, bool) {
	end := len(suffix)
	start := end
	for start > 0 && suffix[start-1] >= '0' && suffix[start-1] <= '9' {
		start--
	}
	if start == end {
		return "", 0, false
	}
	tail, err := strconv.Atoi(suffix[start:end])
	if err != nil {
		return "", 0, false
	}
	return suffix[:start], tail, true
}
