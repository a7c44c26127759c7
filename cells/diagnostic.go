package cells

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrStop ends a chain run silently.
	ErrStop = errors.New("stop")
	// ErrCycle is returned when a run loops back too often in one turn.
	ErrCycle = errors.New("entry cycle limit exceeded")
)

type Kind uint8

const (
	KindInfo Kind = iota
	KindWarn
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindWarn:
		return "warn"
	case KindError:
		return "err"
	}
	return "info"
}

func (k Kind) level() slog.Level {
	switch k {
	case KindWarn:
		return slog.LevelWarn
	case KindError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Diagnostic is a rejection reason with an explicit severity.
type Diagnostic struct {
	Kind Kind
	Msg  string
}

var _ error = new(Diagnostic)

func (d *Diagnostic) Error() string {
	return d.Kind.String() + ": " + d.Msg
}

func Infof(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindInfo, Msg: fmt.Sprintf(format, args...)}
}

func Warnf(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindWarn, Msg: fmt.Sprintf(format, args...)}
}

func Errorf(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindError, Msg: fmt.Sprintf(format, args...)}
}

// ParseDiagnostic reads the severity prefix of a string reason.
// The second result is false for reasons that stop silently.
func ParseDiagnostic(reason string, fallback Kind) (*Diagnostic, bool) {
	if reason == "" {
		return nil, false
	}
	if msg, ok := strings.CutPrefix(reason, "warn:"); ok {
		return &Diagnostic{Kind: KindWarn, Msg: strings.TrimSpace(msg)}, true
	}
	if msg, ok := strings.CutPrefix(reason, "err:"); ok {
		return &Diagnostic{Kind: KindError, Msg: strings.TrimSpace(msg)}, true
	}
	return &Diagnostic{Kind: fallback, Msg: reason}, true
}

// isFatal reports whether err must escape the run.
func isFatal(err error) bool {
	return errors.Is(err, ErrCycle)
}

// classify maps a rejection reason to a diagnostic. Silent reasons return
// nil. Reasons that are neither strings nor errors return nil and true.
func classify(reason any) (diag *Diagnostic, dump bool) {
	switch r := reason.(type) {
	case nil:
		return nil, false
	case bool:
		if !r {
			return nil, false
		}
		return nil, true
	case string:
		diag, _ = ParseDiagnostic(r, KindInfo)
		return diag, false
	case *Diagnostic:
		return r, false
	case error:
		if errors.Is(r, ErrStop) {
			return nil, false
		}
		var d *Diagnostic
		if errors.As(r, &d) {
			return d, false
		}
		diag, _ = ParseDiagnostic(r.Error(), KindError)
		return diag, false
	}
	return nil, true
}

// route logs a rejection that ended a run.
func (e *Env) route(ctx context.Context, reason any) {
	if !e.Diagnostics || e.Logger == nil {
		return
	}
	diag, dump := classify(reason)
	if dump {
		e.Logger.DebugContext(ctx, "chain rejected",
			"reason", fmt.Sprintf("%#v", reason),
		)
		return
	}
	if diag == nil {
		return
	}
	e.Logger.Log(ctx, diag.Kind.level(), diag.Msg)
}
