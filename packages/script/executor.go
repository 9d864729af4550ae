package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/testconsole/packages/console"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrUnknownMethod is returned for calls naming a method the console does
	// not provide.
	ErrUnknownMethod = errors.New("unknown console method")

	// ErrMissingValue is returned for assert calls without a value.
	ErrMissingValue = errors.New("assert requires a value")
)

// Result summarises a replay. FailedAssertions counts assert calls whose
// value was false; they are reported, not returned as errors.
type Result struct {
	Path             string
	Executed         int
	FailedAssertions int
	Duration         time.Duration
}

// Executor replays calls onto a console.
type Executor struct {
	console *console.Console
	logger  *zap.Logger
	limiter *rate.Limiter

	failedAssertions int
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRate paces replay to at most callsPerSecond calls. Zero or negative
// disables pacing.
func WithRate(callsPerSecond float64) ExecutorOption {
	return func(e *Executor) {
		if callsPerSecond > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(callsPerSecond), 1)
		} else {
			e.limiter = nil
		}
	}
}

// NewExecutor creates an Executor writing to c.
func NewExecutor(c *console.Console, opts ...ExecutorOption) *Executor {
	e := &Executor{
		console: c,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run replays every call in s. It stops at the first invalid call or when
// ctx is done.
func (e *Executor) Run(ctx context.Context, s *Script) (*Result, error) {
	start := time.Now()
	result := &Result{Path: s.Path}
	e.failedAssertions = 0
	defer func() {
		result.FailedAssertions = e.failedAssertions
	}()
	e.logger.Debug("replaying script", zap.String("path", s.Path), zap.Int("calls", len(s.Calls)))

	for _, call := range s.Calls {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				result.Duration = time.Since(start)
				return result, err
			}
		} else if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}

		if err := e.Apply(call); err != nil {
			e.logger.Debug("call rejected", zap.Int("line", call.Line), zap.String("method", call.Method), zap.Error(err))
			result.Duration = time.Since(start)
			if call.Line > 0 {
				return result, fmt.Errorf("line %d: %w", call.Line, err)
			}
			return result, err
		}
		result.Executed++
	}

	result.Duration = time.Since(start)
	e.logger.Debug("script finished", zap.Int("executed", result.Executed), zap.Duration("duration", result.Duration))
	return result, nil
}

// Apply performs a single call.
func (e *Executor) Apply(call Call) error {
	c := e.console
	switch call.Method {
	case MethodLog:
		c.Log(call.Args...)
	case MethodInfo:
		c.Info(call.Args...)
	case MethodDebug:
		c.Debug(call.Args...)
	case MethodDirxml:
		c.Dirxml(call.Args...)
	case MethodDir:
		var value any
		if len(call.Args) > 0 {
			value = call.Args[0]
		}
		c.Dir(value, console.InspectOptions{
			Depth:      call.Options.Depth,
			ShowHidden: call.Options.ShowHidden,
			Compact:    call.Options.Compact,
		})
	case MethodError:
		c.Error(call.Args...)
	case MethodWarn:
		c.Warn(call.Args...)
	case MethodAssert:
		if call.Value == nil {
			return ErrMissingValue
		}
		if !*call.Value {
			e.failedAssertions++
		}
		c.Assert(*call.Value, call.Args...)
	case MethodCount:
		c.Count(call.Label)
	case MethodCountReset:
		c.CountReset(call.Label)
	case MethodGroup:
		c.Group(call.Args...)
	case MethodGroupCollapsed:
		c.GroupCollapsed(call.Args...)
	case MethodGroupEnd:
		c.GroupEnd()
	case MethodTime:
		c.Time(call.Label)
	case MethodTimeEnd:
		c.TimeEnd(call.Label)
	case MethodTimeLog:
		c.TimeLog(call.Label, call.Args...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, call.Method)
	}
	return nil
}
