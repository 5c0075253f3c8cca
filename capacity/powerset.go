package capacity

import (
	"fmt"
	"strings"
)

// MaxOutcomes bounds the number of discretized outcomes accepted by Enumerate.
// Every non-empty subset of the outcome space is materialized, so memory and
// downstream model size grow as 2^n.
const MaxOutcomes = 20

// Subset is a set of outcome indices in {0,...,n-1}, kept sorted ascending.
type Subset []int

// Contains reports whether outcome i belongs to the subset.
func (s Subset) Contains(i int) bool {
	for _, v := range s {
		if v == i {
			return true
		}
	}
	return false
}

// Bits returns the bitmask representation of the subset.
func (s Subset) Bits() uint32 {
	var b uint32
	for _, v := range s {
		b |= 1 << uint(v)
	}
	return b
}

func (s Subset) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Enumerate returns every non-empty subset of {0,...,n-1}, ordered by
// increasing cardinality and lexicographically within each cardinality.
// The order is fixed: index i < n is exactly the singleton {i}, and the model
// builder relies on that when bounding singleton variables. The result has
// 2^n - 1 entries.
func Enumerate(n int) ([]Subset, error) {
	if n < 1 {
		return nil, fmt.Errorf("capacity: need at least 1 outcome, got %d", n)
	}
	if n > MaxOutcomes {
		return nil, fmt.Errorf("capacity: %d outcomes exceed the limit of %d (2^n subsets)", n, MaxOutcomes)
	}
	out := make([]Subset, 0, (1<<uint(n))-1)
	for k := 1; k <= n; k++ {
		combinations(n, k, func(c []int) {
			s := make(Subset, k)
			copy(s, c)
			out = append(out, s)
		})
	}
	return out, nil
}

// combinations visits every k-combination of {0,...,n-1} in lexicographic order.
func combinations(n, k int, visit func([]int)) {
	c := make([]int, k)
	for i := range c {
		c[i] = i
	}
	for {
		visit(c)
		i := k - 1
		for i >= 0 && c[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		c[i]++
		for j := i + 1; j < k; j++ {
			c[j] = c[j-1] + 1
		}
	}
}
