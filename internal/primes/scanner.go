package primes

import "context"

// checkWork is how many trial divisions ScanContext performs between
// context checks.
const checkWork = 1 << 20

// Scan returns every value in [start, end] that IsPrime accepts, in ascending
// order. An inverted range yields an empty, non-nil slice.
func Scan(start, end uint32) []uint32 {
	result := make([]uint32, 0)
	if start > end {
		return result
	}
	for i := start; ; i++ {
		if IsPrime(i) {
			result = append(result, i)
		}
		// end may be MaxUint32, so stop before i wraps.
		if i == end {
			break
		}
	}
	return result
}

// ScanContext is Scan with cancellation. It returns ctx.Err() and no partial
// result once ctx is done, including when ctx expires during the last
// candidate.
func ScanContext(ctx context.Context, start, end uint32) ([]uint32, error) {
	result := make([]uint32, 0)
	if start > end {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sc := scanner{ctx: ctx}
	for i := start; ; i++ {
		prime, err := sc.isPrime(i)
		if err != nil {
			return nil, err
		}
		if prime {
			result = append(result, i)
		}
		if i == end {
			break
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanner counts trial divisions across candidates so a single large
// candidate still observes cancellation.
type scanner struct {
	ctx  context.Context
	work int
}

func (s *scanner) poll() error {
	if s.work++; s.work < checkWork {
		return nil
	}
	s.work = 0
	return s.ctx.Err()
}

// isPrime agrees with IsPrime but gives up with ctx.Err() mid-division.
func (s *scanner) isPrime(num uint32) (bool, error) {
	if num == 1 {
		return true, nil
	}
	for i := uint32(2); i < num; i++ {
		if err := s.poll(); err != nil {
			return false, err
		}
		if num%i == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Span returns the number of candidates in [start, end], or 0 when the range
// is inverted. The result is widened so the full uint32 range fits.
func Span(start, end uint32) uint64 {
	if start > end {
		return 0
	}
	return uint64(end) - uint64(start) + 1
}
