package naming

import (
	"math"

	m "shroud.dev/pkg/shroud/internal/model"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	letters   = lowercase + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Capacity returns how many candidates exist for the given length,
// saturating at math.MaxInt.
func Capacity(length int) int {
	if length <= 1 {
		return len(lowercase)
	}

	total := 1
	for range length {
		if total > math.MaxInt/len(letters) {
			return math.MaxInt
		}

		total *= len(letters)
	}

	return total
}

// Candidate returns the index-th generated name of the given length.
//
// Lengths up to 1 draw from the 26 lowercase letters. Longer lengths
// enumerate the lexicographic product of a-z then A-Z taken length times.
func Candidate(index, length int) (string, error) {
	capacity := Capacity(length)
	if index < 0 || index >= capacity {
		return "", &m.CapacityError{Complexity: length, Needed: index + 1, Available: capacity}
	}

	if length <= 1 {
		return lowercase[index : index+1], nil
	}

	buf := make([]byte, length)
	for pos := length - 1; pos >= 0; pos-- {
		buf[pos] = letters[index%len(letters)]
		index /= len(letters)
	}

	return string(buf), nil
}
