// Package primes finds prime numbers in an inclusive uint32 range.
//
// Primality is decided by plain trial division against every candidate in
// [2, n). The package keeps two historical quirks of the service: both 0 and
// 1 are reported as prime.
package primes

// IsPrime reports whether num has no divisor in [2, num).
//
// 1 is special-cased to true. 0 falls through the empty divisor loop and is
// also true.
func IsPrime(num uint32) bool {
	if num == 1 {
		return true
	}
	for i := uint32(2); i < num; i++ {
		if num%i == 0 {
			return false
		}
	}
	return true
}
