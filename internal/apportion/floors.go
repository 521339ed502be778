package apportion

import (
	"fmt"

	apperrors "github.com/agbru/seatcalc/internal/errors"
)

// ApportionWithFloors distributes target seats like Apportion, except that
// after each trial rounding every key is lifted to its floor before the sum
// is compared with target. The returned allocation is the lifted one, so
// every key receives at least its floor and the values sum to target.
//
// Keys present only in floors take part with weight zero.
func ApportionWithFloors[K comparable](weights map[K]float64, floors map[K]int, target int, opts Options) (map[K]int, error) {
	opts = opts.withDefaults()
	op := opts.operation(MethodFloored)

	total, err := totalWeight(weights, op)
	if err != nil {
		return nil, err
	}
	keys, floorSum, err := unionKeys(weights, floors, op)
	if err != nil {
		return nil, err
	}
	if target < 0 {
		return nil, apperrors.DegenerateInputError{Operation: op, Reason: fmt.Sprintf("negative target %d", target)}
	}
	if floorSum > target {
		return nil, apperrors.DegenerateInputError{
			Operation: op,
			Reason:    fmt.Sprintf("floors sum to %d, above target %d", floorSum, target),
		}
	}
	if floorSum == target && (total == 0 || target == 0) {
		return lifted(keys, floors), nil
	}
	if total == 0 {
		return nil, apperrors.DegenerateInputError{Operation: op, Reason: "all weights are zero"}
	}

	allocate := func(divisor float64) map[K]int {
		seats := make(map[K]int, len(keys))
		for _, k := range keys {
			seats[k] = max(roundQuotient(opts.Rounding, weights[k], divisor), floors[k])
		}
		return seats
	}
	eval := func(divisor float64) int {
		sum := 0
		for _, k := range keys {
			sum += max(roundQuotient(opts.Rounding, weights[k], divisor), floors[k])
		}
		return sum
	}

	divisor, iterations, err := search(eval, total/float64(target), target, opts, op)
	if err != nil {
		return nil, err
	}
	opts.notify(MethodFloored, target, divisor, iterations)
	return allocate(divisor), nil
}

// SatisfyFloors lowers the divisor from sum(weights)/sum(floors) in
// FloorStep increments until every key's rounded quotient is at least its
// floor, and returns those rounded quotients. The total is not fixed in
// advance: it is whatever the first floor-satisfying divisor produces.
func SatisfyFloors[K comparable](weights map[K]float64, floors map[K]int, opts Options) (map[K]int, error) {
	opts = opts.withDefaults()
	op := opts.operation(MethodFloorSatisfying)

	total, err := totalWeight(weights, op)
	if err != nil {
		return nil, err
	}
	keys, floorSum, err := unionKeys(weights, floors, op)
	if err != nil {
		return nil, err
	}
	if floorSum == 0 {
		return nil, apperrors.DegenerateInputError{Operation: op, Reason: "floors sum to zero"}
	}
	if total == 0 {
		return nil, apperrors.DegenerateInputError{Operation: op, Reason: "all weights are zero"}
	}
	for _, k := range keys {
		if floors[k] > 0 && weights[k] == 0 {
			return nil, apperrors.DegenerateInputError{
				Operation: op,
				Reason:    fmt.Sprintf("%v has floor %d but zero weight", k, floors[k]),
			}
		}
	}

	divisor := total / float64(floorSum)
	iterations := 0
	for {
		seats := make(map[K]int, len(keys))
		satisfied := true
		sum := 0
		for _, k := range keys {
			seats[k] = roundQuotient(opts.Rounding, weights[k], divisor)
			sum += seats[k]
			if seats[k] < floors[k] {
				satisfied = false
			}
		}
		if satisfied {
			opts.notify(MethodFloorSatisfying, sum, divisor, iterations)
			return seats, nil
		}
		if iterations >= opts.MaxIterations {
			return nil, convergenceError(op, iterations, floorSum, sum)
		}
		divisor *= opts.FloorStep
		iterations++
	}
}

// unionKeys returns the keys of weights and floors combined, plus the floor sum.
func unionKeys[K comparable](weights map[K]float64, floors map[K]int, op string) ([]K, int, error) {
	keys := make([]K, 0, len(weights)+len(floors))
	for k := range weights {
		keys = append(keys, k)
	}
	floorSum := 0
	for k, f := range floors {
		if f < 0 {
			return nil, 0, apperrors.DegenerateInputError{Operation: op, Reason: fmt.Sprintf("negative floor %d for %v", f, k)}
		}
		floorSum += f
		if _, ok := weights[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys, floorSum, nil
}

func lifted[K comparable](keys []K, floors map[K]int) map[K]int {
	seats := make(map[K]int, len(keys))
	for _, k := range keys {
		seats[k] = floors[k]
	}
	return seats
}
