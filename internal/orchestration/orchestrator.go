package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
	"github.com/agbru/seatcalc/internal/logging"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageDirectMandates Stage = "direct-mandates"
	StageBaseline       Stage = "region-baseline"
	StageQualification  Stage = "qualification"
	StageListSeats      Stage = "region-list"
	StageMinimumSeats   Stage = "minimum-seats"
	StageNationalTotals Stage = "national-totals"
	StageFinal          Stage = "final-distribution"
)

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageDirectMandates,
		StageBaseline,
		StageQualification,
		StageListSeats,
		StageMinimumSeats,
		StageNationalTotals,
		StageFinal,
	}
}

// EventBufferSize is the capacity of the stage event channel. It holds every
// event of a run so stages never block on a slow reporter.
const EventBufferSize = 16

const tracerName = "github.com/agbru/seatcalc/internal/orchestration"

// StageStat records how long a stage took.
type StageStat struct {
	Stage    Stage
	Duration time.Duration
}

// Result holds the output of a run together with every intermediate table.
type Result struct {
	// RunID identifies the run in logs and exports.
	RunID string
	// NominalSeats is the configured parliament size before enlargement.
	NominalSeats int
	// Direct counts constituency wins per party and region, for all parties.
	Direct election.SeatTable
	// Ties lists constituencies decided by the tie policy.
	Ties []election.Tie
	// Baseline is each region's share of the nominal seats.
	Baseline      map[election.Region]int
	Qualification election.Qualification
	List          election.SeatTable
	Minimum       election.SeatTable
	// NationalTotals is each qualified party's final national total.
	NationalTotals map[election.Party]int
	// Final is the party-by-region seat table, qualified parties only.
	Final     election.SeatTable
	Summaries []election.PartySummary
	// UnqualifiedDirect holds direct mandates won by parties that did not
	// qualify. They are reported here and not seated in Final.
	UnqualifiedDirect election.SeatTable
	// TotalSeats is the size of the enlarged parliament.
	TotalSeats int
	Stages     []StageStat
	Duration   time.Duration
}

// Options configures a run.
type Options struct {
	// Seats is the nominal number of seats. It must be positive.
	Seats    int
	Election election.Options
	// RunID overrides the generated run identifier.
	RunID    string
	Logger   logging.Logger
	Reporter StageReporter
	// Out is handed to the reporter.
	Out io.Writer
}

func (o Options) withDefaults() Options {
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger{}
	}
	if o.Reporter == nil {
		o.Reporter = NullStageReporter{}
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	return o
}

// Run validates the election and executes the stages in order. A stage
// failure is returned as an apperrors.CalculationError naming the stage;
// later stages do not run.
func Run(ctx context.Context, e election.Election, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := e.Validate(); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "seatcalc.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", opts.RunID),
		attribute.Int("seats.nominal", opts.Seats),
		attribute.Int("constituencies", len(e.Constituencies)),
	)

	events := make(chan StageEvent, EventBufferSize)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go opts.Reporter.DisplayStages(&displayWg, events, len(Stages()), opts.Out)

	p := &pipeline{e: e, opts: opts, events: events, res: &Result{RunID: opts.RunID, NominalSeats: opts.Seats}}
	start := time.Now()
	err := p.run(ctx)
	close(events)
	displayWg.Wait()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		opts.Logger.Error("seat allocation failed", err, logging.String("run_id", opts.RunID))
		return nil, err
	}
	p.res.Duration = time.Since(start)
	span.SetAttributes(attribute.Int("seats.total", p.res.TotalSeats))
	opts.Logger.Info("seat allocation complete",
		logging.String("run_id", opts.RunID),
		logging.Int("nominal_seats", opts.Seats),
		logging.Int("total_seats", p.res.TotalSeats),
		logging.Int("qualified_parties", len(p.res.Qualification.Parties)),
	)
	return p.res, nil
}

type pipeline struct {
	e      election.Election
	opts   Options
	events chan<- StageEvent
	res    *Result
	index  int
}

func (p *pipeline) run(ctx context.Context) error {
	eopts := p.opts.Election
	res := p.res
	byRegion := p.e.SecondVotesByRegion()

	steps := []struct {
		stage Stage
		fn    func(ctx context.Context) ([]logging.Field, error)
	}{
		{StageDirectMandates, func(context.Context) ([]logging.Field, error) {
			direct, ties, err := election.TallyDirectMandates(p.e, eopts.TiePolicy)
			if err != nil {
				return nil, err
			}
			res.Direct, res.Ties = direct, ties
			return []logging.Field{logging.Int("mandates", direct.Total()), logging.Int("ties", len(ties))}, nil
		}},
		{StageBaseline, func(context.Context) ([]logging.Field, error) {
			baseline, err := election.RegionBaseline(p.e.Population, p.opts.Seats, eopts)
			if err != nil {
				return nil, err
			}
			res.Baseline = baseline
			return []logging.Field{logging.Int("regions", len(baseline))}, nil
		}},
		{StageQualification, func(context.Context) ([]logging.Field, error) {
			res.Qualification = election.Qualify(p.e, res.Direct, eopts.Qualification)
			if len(res.Qualification.Parties) == 0 {
				return nil, apperrors.DegenerateInputError{Operation: string(StageQualification), Reason: "no party qualifies for list seats"}
			}
			res.UnqualifiedDirect = res.Direct.Filter(func(party election.Party) bool {
				return !res.Qualification.Parties.Contains(party)
			})
			return []logging.Field{
				logging.Int("qualified", len(res.Qualification.Parties)),
				logging.Int("unqualified_mandates", res.UnqualifiedDirect.Total()),
			}, nil
		}},
		{StageListSeats, func(ctx context.Context) ([]logging.Field, error) {
			list, err := election.RegionListSeats(ctx, byRegion, res.Baseline, res.Qualification.Parties, eopts)
			if err != nil {
				return nil, err
			}
			res.List = list
			return []logging.Field{logging.Int("seats", list.Total())}, nil
		}},
		{StageMinimumSeats, func(context.Context) ([]logging.Field, error) {
			qualifiedDirect := res.Direct.Filter(res.Qualification.Parties.Contains)
			res.Minimum = election.MinimumSeats(qualifiedDirect, res.List)
			return []logging.Field{logging.Int("floor", res.Minimum.Total())}, nil
		}},
		{StageNationalTotals, func(context.Context) ([]logging.Field, error) {
			totals, err := election.NationalTotals(res.Minimum, p.e.NationalSecondVotes(), res.Qualification.Parties, eopts)
			if err != nil {
				return nil, err
			}
			res.NationalTotals = totals
			for _, n := range totals {
				res.TotalSeats += n
			}
			return []logging.Field{logging.Int("total_seats", res.TotalSeats)}, nil
		}},
		{StageFinal, func(ctx context.Context) ([]logging.Field, error) {
			final, err := election.FinalDistribution(ctx, byRegion, res.Direct, res.NationalTotals, p.e.Regions(), eopts)
			if err != nil {
				return nil, err
			}
			res.Final = final
			res.Summaries = election.Summarize(res.Direct, res.List, res.NationalTotals)
			return []logging.Field{logging.Int("seats", final.Total())}, nil
		}},
	}

	for _, step := range steps {
		if err := p.stage(ctx, step.stage, step.fn); err != nil {
			return err
		}
	}
	return nil
}

// stage runs fn inside a span, emits start and finish events, and records
// the duration.
func (p *pipeline) stage(ctx context.Context, s Stage, fn func(ctx context.Context) ([]logging.Field, error)) error {
	if err := ctx.Err(); err != nil {
		return apperrors.CalculationError{Stage: string(s), Cause: err}
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "seatcalc.stage."+string(s))
	defer span.End()

	idx := p.index
	p.index++
	p.events <- StageEvent{Stage: s, Index: idx}
	start := time.Now()
	fields, err := fn(ctx)
	d := time.Since(start)
	p.events <- StageEvent{Stage: s, Index: idx, Done: true, Duration: d, Err: err}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return apperrors.CalculationError{Stage: string(s), Cause: err}
	}
	p.res.Stages = append(p.res.Stages, StageStat{Stage: s, Duration: d})
	span.SetAttributes(attribute.Int64("duration_us", d.Microseconds()))

	fields = append([]logging.Field{
		logging.String("run_id", p.opts.RunID),
		logging.String("stage", string(s)),
		logging.String("duration", d.String()),
	}, fields...)
	p.opts.Logger.Info(fmt.Sprintf("stage %d/%d done", idx+1, len(Stages())), fields...)
	return nil
}
