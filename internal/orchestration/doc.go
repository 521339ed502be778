// Package orchestration runs the seat-allocation stages in order, threading
// each stage's output into the next. It decouples the pipeline from
// presentation via the StageReporter and ResultPresenter interfaces and
// wraps every stage in a trace span.
package orchestration
