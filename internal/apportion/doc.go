// Package apportion implements divisor-method seat apportionment
// (Sainte-Laguë/Webster) by iterative divisor search.
//
// Three searches are provided, all sharing the same rounding policy and
// iteration budget:
//
//   - Apportion distributes an exact target among weighted keys.
//   - ApportionWithFloors does the same while lifting every key to a
//     per-key minimum before the sum is compared with the target.
//   - SatisfyFloors has no fixed target: it lowers the divisor until every
//     key's rounded quotient reaches its floor, letting the total grow.
//
// The rounding rule is a policy (see Rounding). HalfEven is the default and
// changes outcomes at exact .5 quotients compared with HalfUp.
package apportion
