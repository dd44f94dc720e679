package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"contract-compliance/internal/compliance"
	"contract-compliance/internal/dates"
	"contract-compliance/internal/expiration"
	"contract-compliance/internal/model"
	"contract-compliance/internal/store"
)

// ErrNoStore is returned by store-backed operations when no contract source is configured.
var ErrNoStore = errors.New("contract store not configured")

// maxConcurrentLoads bounds concurrent renewal history reads.
const maxConcurrentLoads = 8

// ContractSource is the contract data provider. It only returns approved,
// unarchived contracts.
type ContractSource interface {
	ListExpiringContracts(ctx context.Context, from, to time.Time) ([]model.ContractRecord, error)
	RenewalHistory(ctx context.Context, contractID string) (model.RenewalHistory, error)
}

// ConfigSource supplies the notification config and never fails.
type ConfigSource interface {
	Config(ctx context.Context) model.ExpirationNotificationConfig
}

type Options struct {
	Limits        compliance.Limits
	Now           compliance.Clock
	Contracts     ContractSource
	Notifications ConfigSource
	Logger        *zap.Logger
}

type Engine struct {
	evaluator     *compliance.Evaluator
	limits        compliance.Limits
	now           compliance.Clock
	contracts     ContractSource
	notifications ConfigSource
	logger        *zap.Logger
}

func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		evaluator:     compliance.New(opts.Limits, opts.Now),
		limits:        opts.Limits,
		now:           opts.Now,
		contracts:     opts.Contracts,
		notifications: opts.Notifications,
		logger:        opts.Logger,
	}
}

func (e *Engine) Evaluator() *compliance.Evaluator {
	return e.evaluator
}

// Today is the current calendar date.
func (e *Engine) Today() time.Time {
	return dates.Midnight(e.now())
}

// HasStore reports whether store-backed operations are available.
func (e *Engine) HasStore() bool {
	return e.contracts != nil
}

// EvaluateBatch evaluates every item. Invalid items are reported as CRITICAL
// messages and skipped; the remaining items are still evaluated.
func (e *Engine) EvaluateBatch(req *model.EvaluationRequest) *model.EvaluationResponse {
	start := time.Now()

	b := newBatch(len(req.Items))
	for i, item := range req.Items {
		e.evaluateItem(b, i, item)
	}
	return b.response(req.TenantID, start)
}

func (e *Engine) evaluateItem(b *batch, index int, item model.EvaluationItem) {
	msgIndexes, hasCritical := b.record(ValidateItem(item))
	evaluated := model.EvaluatedItem{
		Index:                     index,
		Reference:                 item.Reference,
		CalculationMessageIndexes: msgIndexes,
	}
	if hasCritical {
		b.outcome = model.OutcomeFailure
		b.evaluations = append(b.evaluations, evaluated)
		return
	}

	proposed := parseProposed(item.ProposedEndDate)
	alert := e.evaluator.Evaluate(item.Status, proposed)
	summary := e.evaluator.Summary(item.Status, proposed)
	evaluated.Alert = &alert
	evaluated.Summary = &summary
	b.evaluations = append(b.evaluations, evaluated)
}

// EvaluateContract derives the renewal status of a stored contract and evaluates it.
func (e *Engine) EvaluateContract(ctx context.Context, contractID string, proposed *time.Time) (model.SingleEvaluationResponse, error) {
	if e.contracts == nil {
		return model.SingleEvaluationResponse{}, ErrNoStore
	}
	history, err := e.contracts.RenewalHistory(ctx, contractID)
	if err != nil {
		return model.SingleEvaluationResponse{}, err
	}
	status := compliance.NewStatus(history, e.now(), e.limits)
	return model.SingleEvaluationResponse{
		Alert:   e.evaluator.Evaluate(status, proposed),
		Summary: e.evaluator.Summary(status, proposed),
	}, nil
}

// EvaluateContracts loads the renewal histories of the targets concurrently
// and evaluates each. Unknown contracts become CONTRACT_NOT_FOUND messages;
// any other store failure aborts the whole batch.
func (e *Engine) EvaluateContracts(ctx context.Context, tenantID string, targets []model.ContractTarget) (*model.EvaluationResponse, error) {
	if e.contracts == nil {
		return nil, ErrNoStore
	}
	start := time.Now()

	histories := make([]*model.RenewalHistory, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			h, err := e.contracts.RenewalHistory(gctx, target.ContractID)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load contract %s: %w", target.ContractID, err)
			}
			histories[i] = &h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := newBatch(len(targets))
	for i, target := range targets {
		if histories[i] == nil {
			msgIndexes, _ := b.record([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeContractNotFound,
				Message: fmt.Sprintf("Contract %s not found or not eligible", target.ContractID),
			}})
			b.outcome = model.OutcomeFailure
			b.evaluations = append(b.evaluations, model.EvaluatedItem{
				Index:                     i,
				Reference:                 target.ContractID,
				CalculationMessageIndexes: msgIndexes,
			})
			continue
		}
		e.evaluateItem(b, i, model.EvaluationItem{
			Reference:       target.ContractID,
			Status:          compliance.NewStatus(*histories[i], e.now(), e.limits),
			ProposedEndDate: target.ProposedEndDate,
		})
	}
	return b.response(tenantID, start), nil
}

// ScanStored loads the notification config and the contracts ending inside
// its window, then scans them. It returns the date the scan ran for.
func (e *Engine) ScanStored(ctx context.Context) ([]model.ExpiringContractEntry, time.Time, error) {
	today := e.Today()
	if e.contracts == nil {
		return nil, today, ErrNoStore
	}

	var cfg model.ExpirationNotificationConfig
	if e.notifications != nil {
		cfg = e.notifications.Config(ctx)
	}

	from, to, ok := expiration.Window(cfg, today)
	if !ok {
		return []model.ExpiringContractEntry{}, today, nil
	}

	contracts, err := e.contracts.ListExpiringContracts(ctx, from, to)
	if err != nil {
		return nil, today, err
	}

	entries := expiration.Scan(contracts, cfg, today)
	e.logger.Info("expiration scan completed",
		zap.String("today", dates.Format(today)),
		zap.Ints("days_before_expiration", cfg.DaysBeforeExpiration),
		zap.Int("candidates", len(contracts)),
		zap.Int("expiring", len(entries)),
	)
	return entries, today, nil
}

// batch accumulates messages and per-item results for one calculation.
type batch struct {
	messages    []model.CalculationMessage
	evaluations []model.EvaluatedItem
	outcome     string
}

func newBatch(n int) *batch {
	return &batch{
		evaluations: make([]model.EvaluatedItem, 0, n),
		outcome:     model.OutcomeSuccess,
	}
}

// record numbers msgs, appends them and reports whether any is CRITICAL.
func (b *batch) record(msgs []model.CalculationMessage) ([]int, bool) {
	var indexes []int
	critical := false
	for _, m := range msgs {
		m.ID = len(b.messages)
		b.messages = append(b.messages, m)
		indexes = append(indexes, m.ID)
		if m.Level == model.LevelCritical {
			critical = true
		}
	}
	return indexes, critical
}

func (b *batch) response(tenantID string, start time.Time) *model.EvaluationResponse {
	if b.messages == nil {
		b.messages = []model.CalculationMessage{}
	}
	return &model.EvaluationResponse{
		CalculationMetadata: metadata(tenantID, start, b.outcome),
		CalculationResult: model.CalculationResult{
			Messages:    b.messages,
			Evaluations: b.evaluations,
		},
	}
}

// ValidateItem checks an item before evaluation. CRITICAL messages mean the
// item cannot be evaluated.
func ValidateItem(item model.EvaluationItem) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	s := item.Status

	if s.TotalPeriods < 0 || s.CurrentPeriod < 0 || s.NextPeriod < 0 || s.TotalYearsWorked < 0 {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidStatus,
			Message: "Periods and years worked must be non-negative",
		})
		return msgs
	}

	if item.ProposedEndDate != "" {
		if _, ok := dates.Parse(item.ProposedEndDate); !ok {
			msgs = append(msgs, model.CalculationMessage{
				Level:   model.LevelCritical,
				Code:    model.CodeInvalidProposedDate,
				Message: fmt.Sprintf("Proposed end date %q is not a YYYY-MM-DD date", item.ProposedEndDate),
			})
			return msgs
		}
	}

	// Evaluated with the supplied value anyway
	if s.NextPeriod != s.CurrentPeriod+1 {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeNextPeriodMismatch,
			Message: fmt.Sprintf("Next period %d does not follow current period %d", s.NextPeriod, s.CurrentPeriod),
		})
	}

	return msgs
}

func parseProposed(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, ok := dates.Parse(s)
	if !ok {
		return nil
	}
	return &t
}

func metadata(tenantID string, start time.Time, outcome string) model.CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	return model.CalculationMetadata{
		CalculationID:          uuid.New().String(),
		TenantID:               tenantID,
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
		CalculationOutcome:     outcome,
	}
}
