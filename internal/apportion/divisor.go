package apportion

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// Apportion distributes target seats among the keys of weights in proportion
// to their weight, using the Sainte-Laguë divisor method.
//
// The initial divisor is sum(weights)/target. Quotients are rounded with the
// configured policy; while the rounded sum is below target the divisor shrinks
// by ShrinkStep, while above it grows by GrowStep. If a single step jumps over
// the target, the search bisects between the last divisors on either side.
//
// A zero target yields an all-zero allocation. A negative target, a negative
// weight, or all-zero weights with a positive target yield a
// DegenerateInputError. Exact ties that make the target unreachable yield a
// ConvergenceError.
func Apportion[K comparable](weights map[K]float64, target int, opts Options) (map[K]int, error) {
	opts = opts.withDefaults()
	op := opts.operation(MethodSainteLague)

	total, err := totalWeight(weights, op)
	if err != nil {
		return nil, err
	}
	if target < 0 {
		return nil, apperrors.DegenerateInputError{Operation: op, Reason: fmt.Sprintf("negative target %d", target)}
	}
	if target == 0 {
		return zeros(weights), nil
	}
	if total == 0 {
		return nil, apperrors.DegenerateInputError{Operation: op, Reason: "all weights are zero"}
	}

	eval := func(divisor float64) int {
		sum := 0
		for _, w := range weights {
			sum += roundQuotient(opts.Rounding, w, divisor)
		}
		return sum
	}

	divisor, iterations, err := search(eval, total/float64(target), target, opts, op)
	if err != nil {
		return nil, err
	}
	opts.notify(MethodSainteLague, target, divisor, iterations)

	seats := make(map[K]int, len(weights))
	for k, w := range weights {
		seats[k] = roundQuotient(opts.Rounding, w, divisor)
	}
	return seats, nil
}

// search adjusts the divisor until eval returns target. eval must be
// non-increasing in the divisor.
func search(eval func(float64) int, initial float64, target int, opts Options, op string) (float64, int, error) {
	divisor := initial
	sum := eval(divisor)
	if sum == target {
		return divisor, 0, nil
	}

	iterations := 0
	// lo always yields a sum above target, hi a sum below it.
	var lo, hi float64
	if sum < target {
		hi = divisor
		for sum < target {
			if iterations >= opts.MaxIterations {
				return 0, iterations, convergenceError(op, iterations, target, sum)
			}
			divisor *= opts.ShrinkStep
			iterations++
			sum = eval(divisor)
			if sum < target {
				hi = divisor
			}
		}
		if sum == target {
			return divisor, iterations, nil
		}
		lo = divisor
	} else {
		lo = divisor
		for sum > target {
			if iterations >= opts.MaxIterations {
				return 0, iterations, convergenceError(op, iterations, target, sum)
			}
			divisor *= opts.GrowStep
			iterations++
			sum = eval(divisor)
			if sum > target {
				lo = divisor
			}
		}
		if sum == target {
			return divisor, iterations, nil
		}
		hi = divisor
	}

	for iterations < opts.MaxIterations {
		mid := lo + (hi-lo)/2
		if mid <= lo || mid >= hi {
			// No representable divisor left between the brackets: exact tie.
			break
		}
		iterations++
		sum = eval(mid)
		switch {
		case sum == target:
			return mid, iterations, nil
		case sum < target:
			hi = mid
		default:
			lo = mid
		}
	}
	return 0, iterations, convergenceError(op, iterations, target, sum)
}

func convergenceError(op string, iterations, target, reached int) error {
	return apperrors.ConvergenceError{Operation: op, Iterations: iterations, Target: target, Reached: reached}
}

func roundQuotient(r Rounding, weight, divisor float64) int {
	if weight == 0 {
		return 0
	}
	return int(r.Round(weight / divisor))
}

func totalWeight[K comparable](weights map[K]float64, op string) (float64, error) {
	var total float64
	for k, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, apperrors.DegenerateInputError{Operation: op, Reason: fmt.Sprintf("invalid weight %v for %v", w, k)}
		}
		total += w
	}
	return total, nil
}

func zeros[K comparable](weights map[K]float64) map[K]int {
	seats := make(map[K]int, len(weights))
	for k := range weights {
		seats[k] = 0
	}
	return seats
}
