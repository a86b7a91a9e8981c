package websmith

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/wait"

	"websmith/pkg/apperr"
	"websmith/pkg/logg"
)

const (
	ConditionPresent = "present"
	ConditionVisible = "visible"
	ConditionSettled = "settled"
)

// settleProbes report pending async work when they evaluate to a positive
// number. A probe that errors (library absent, page mid-navigation) counts as
// idle.
var settleProbes = []string{
	`jQuery.active`,
	`angular.element(document).injector().get("$http").pendingRequests.length`,
}

// Waiter polls a Driver until an element condition holds.
type Waiter struct {
	driver   Driver
	cfg      WaitConfig
	logger   *zap.Logger
	observer Observer
}

func NewWaiter(driver Driver, cfg WaitConfig, logger *zap.Logger, observer Observer) *Waiter {
	if logger == nil {
		logger = zap.NewNop()
	}

	if observer == nil {
		observer = nopObserver{}
	}

	return &Waiter{
		driver:   driver,
		cfg:      cfg.withDefaults(),
		logger:   logger.With(zap.String(logg.Layer, "Waiter")),
		observer: observer,
	}
}

func (w *Waiter) Config() WaitConfig {
	return w.cfg
}

// UntilPresent returns the first element matching loc once it exists in the
// DOM and async page activity has settled. On timeout it logs a diagnostic
// and returns a nil element with ErrWaitTimeout.
func (w *Waiter) UntilPresent(ctx context.Context, loc Locator) (Element, error) {
	return w.until(ctx, loc, ConditionPresent)
}

// UntilVisible is UntilPresent with the extra requirement that the element
// is rendered visibly.
func (w *Waiter) UntilVisible(ctx context.Context, loc Locator) (Element, error) {
	return w.until(ctx, loc, ConditionVisible)
}

func (w *Waiter) until(ctx context.Context, loc Locator, condition string) (el Element, err error) {
	const op = "Wait"
	logger := w.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.Locator, loc.String()),
		zap.String("condition", condition),
	)

	start := time.Now()
	defer func() {
		w.observer.ObserveWait(condition, time.Since(start), err)
	}()

	var found Element

	pollErr := wait.PollUntilContextTimeout(ctx, w.cfg.PollInterval, w.cfg.Timeout, true, func(ctx context.Context) (bool, error) {
		candidate, err := w.driver.FindOne(ctx, loc)
		if errors.Is(err, ErrElementNotFound) {
			return false, nil
		}

		if err != nil {
			return false, err
		}

		if condition == ConditionVisible {
			visible, err := candidate.Visible()
			if err != nil || !visible {
				return false, nil
			}
		}

		found = candidate

		return true, nil
	})
	if pollErr != nil {
		return nil, w.pollFailure(ctx, logger, op, loc, condition, start, pollErr)
	}

	if err := w.Settle(ctx); err != nil {
		logger.Warn("Element found but page did not settle",
			zap.Duration(logg.Elapsed, time.Since(start)),
			zap.Error(err))

		return nil, err
	}

	return found, nil
}

func (w *Waiter) pollFailure(ctx context.Context, logger *zap.Logger, op string, loc Locator, condition string, start time.Time, pollErr error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperr.Wrap(op, apperr.CodeInternal, ctxErr, map[string]any{
			apperr.MetaReason:  "context_done",
			apperr.MetaStage:   apperr.StageWait,
			apperr.MetaLocator: loc.String(),
		})
	}

	if wait.Interrupted(pollErr) {
		logger.Warn("Timed out waiting for element",
			zap.Duration(logg.Elapsed, time.Since(start)),
			zap.Duration("timeout", w.cfg.Timeout))

		return apperr.Wrap(op, apperr.CodeTimeout, fmt.Errorf("element %s is not %s: %w", loc, condition, ErrWaitTimeout), map[string]any{
			apperr.MetaReason:  "element_not_" + condition,
			apperr.MetaStage:   apperr.StageWait,
			apperr.MetaLocator: loc.String(),
		})
	}

	return apperr.Wrap(op, apperr.CodeActionFailed, pollErr, map[string]any{
		apperr.MetaReason:  "driver_fault",
		apperr.MetaStage:   apperr.StageWait,
		apperr.MetaLocator: loc.String(),
	})
}

// Settle blocks until no settle probe reports pending async work, using the
// settle timeout and the poll interval.
func (w *Waiter) Settle(ctx context.Context) (err error) {
	const op = "Settle"

	start := time.Now()
	defer func() {
		w.observer.ObserveWait(ConditionSettled, time.Since(start), err)
	}()

	pollErr := wait.PollUntilContextTimeout(ctx, w.cfg.PollInterval, w.cfg.SettleTimeout, true, func(ctx context.Context) (bool, error) {
		return !w.asyncActive(ctx), nil
	})
	if pollErr == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperr.Wrap(op, apperr.CodeInternal, ctxErr, map[string]any{
			apperr.MetaReason: "context_done",
			apperr.MetaStage:  apperr.StageSettle,
		})
	}

	w.logger.Warn("Timeout waiting for page to load",
		zap.String(logg.Operation, op),
		zap.Duration("timeout", w.cfg.SettleTimeout))

	return apperr.Wrap(op, apperr.CodeTimeout, fmt.Errorf("async activity still pending: %w", ErrWaitTimeout), map[string]any{
		apperr.MetaReason: "async_activity_pending",
		apperr.MetaStage:  apperr.StageSettle,
	})
}

func (w *Waiter) asyncActive(ctx context.Context) bool {
	for _, probe := range settleProbes {
		result, err := w.driver.ExecuteScript(ctx, probe)
		if err != nil {
			continue
		}

		if n, ok := asNumber(result); ok && n > 0 {
			return true
		}
	}

	return false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
