package property

import (
	"math"
	"math/bits"
	"strconv"
)

const maxInt64 = math.MaxInt64

// magnitude returns |n| as uint64 without overflowing on math.MinInt64.
func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// Digits returns the decimal digits of |n|, most significant first.
// Every call returns a fresh slice.
func Digits(n int64) []int {
	m := magnitude(n)
	if m == 0 {
		return []int{0}
	}
	var buf [20]int
	i := len(buf)
	for m > 0 {
		i--
		buf[i] = int(m % 10)
		m /= 10
	}
	out := make([]int, len(buf)-i)
	copy(out, buf[i:])
	return out
}

// ISqrt returns floor(sqrt(x)) using integer Newton iteration.
func ISqrt(x uint64) uint64 {
	if x < 2 {
		return x
	}
	// Start above the root so the iteration decreases monotonically.
	r := uint64(1) << ((bits.Len64(x) + 1) / 2)
	for {
		next := (r + x/r) / 2
		if next >= r {
			return r
		}
		r = next
	}
}

func isSquareUint(x uint64) bool {
	r := ISqrt(x)
	return r*r == x
}

func isSquare(n int64) bool {
	if n < 0 {
		return false
	}
	return isSquareUint(uint64(n))
}

func isEven(n int64) bool {
	return n%2 == 0
}

func isOdd(n int64) bool {
	return n%2 != 0
}

func isBuzz(n int64) bool {
	return n%7 == 0 || magnitude(n)%10 == 7
}

func isDuck(n int64) bool {
	for _, d := range Digits(n) {
		if d == 0 {
			return true
		}
	}
	return false
}

func isPalindromic(n int64) bool {
	s := strconv.FormatInt(n, 10)
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}

func isGapful(n int64) bool {
	d := Digits(n)
	if len(d) < 3 {
		return false
	}
	divisor := int64(d[0]*10 + d[len(d)-1])
	return n%divisor == 0
}

func isSpy(n int64) bool {
	var sum, product uint64 = 0, 1
	for _, d := range Digits(n) {
		sum += uint64(d)
		product *= uint64(d)
	}
	return sum == product
}

func isJumping(n int64) bool {
	d := Digits(n)
	for i := 0; i+1 < len(d); i++ {
		diff := d[i] - d[i+1]
		if diff != 1 && diff != -1 {
			return false
		}
	}
	return true
}

// isHappy iterates the digit-square sum until it reaches 1 or a value that
// is known never to reach 1. Every unhappy orbit enters the cycle
// 4 -> 16 -> 37 -> 58 -> 89 -> 145 -> 42 -> 20 -> 4, so the loop terminates.
func isHappy(n int64) bool {
	current := n
	for {
		next := digitSquareSum(current)
		if next == 1 {
			return true
		}
		if next == n || (next >= 2 && next <= 6) {
			return false
		}
		current = next
	}
}

func digitSquareSum(n int64) int64 {
	var sum int64
	for _, d := range Digits(n) {
		sum += int64(d * d)
	}
	return sum
}
