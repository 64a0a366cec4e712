package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/knightfall/internal/platform/errors/i18n"
	"github.com/louisbranch/knightfall/internal/services/game/domain/action"
	"github.com/louisbranch/knightfall/internal/services/game/domain/catalog"
	"github.com/louisbranch/knightfall/internal/services/game/domain/command"
	"github.com/louisbranch/knightfall/internal/services/game/domain/event"
	"github.com/louisbranch/knightfall/internal/services/game/domain/game"
	"github.com/louisbranch/knightfall/internal/services/game/domain/validator"
)

const tracerName = "github.com/louisbranch/knightfall/internal/services/game/domain/engine"

var (
	// ErrRegistriesRequired indicates a dispatcher without registries.
	ErrRegistriesRequired = errors.New("registries are required")
	// ErrCatalogRequired indicates a dispatcher without a catalog.
	ErrCatalogRequired = errors.New("catalog is required")
)

// Dispatcher validates and applies actions.
type Dispatcher struct {
	Catalog    catalog.Catalog
	Registries Registries
	// Logger receives invariant violations. Defaults to log.Default.
	Logger *log.Logger
	// Tracer defaults to the global provider's tracer.
	Tracer trace.Tracer
	Now    func() time.Time
}

// Result is the outcome of a dispatch. A rejected action returns the
// session unchanged, no events and the failing validation.
type Result struct {
	Session    Session
	Events     []event.Event
	Validation validator.Result
}

// Accepted reports whether the action passed validation.
func (r Result) Accepted() bool {
	return r.Validation.OK()
}

// NewDispatcher returns a dispatcher over the standard registries for cat.
func NewDispatcher(cat catalog.Catalog) (*Dispatcher, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	regs, err := BuildRegistries(cat)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{Catalog: cat, Registries: regs}, nil
}

// Dispatch validates a for playerID and, when legal, executes it against
// s. The returned session replaces s.
func (d *Dispatcher) Dispatch(ctx context.Context, s Session, playerID string, a action.Action) (Result, error) {
	kind := action.Kind("")
	if a != nil {
		kind = a.Kind()
	}
	_, span := d.tracer().Start(ctx, "engine.dispatch", trace.WithAttributes(
		attribute.String("action.kind", string(kind)),
		attribute.String("player.id", playerID),
	))
	defer span.End()

	if d.Registries.Validators == nil || d.Registries.Factories == nil || d.Registries.Events == nil {
		return d.fail(span, s, kind, playerID, ErrRegistriesRequired)
	}
	if v := d.Registries.Validators.Validate(s.State, playerID, a); !v.OK() {
		span.SetAttributes(attribute.String("rejection.code", string(v.Code)))
		return Result{Session: s, Validation: v}, nil
	}
	if kind == action.KindUndo {
		return d.undo(span, s, playerID)
	}

	cmds, err := d.Registries.Factories.Build(s.State, playerID, a)
	if err != nil {
		return d.fail(span, s, kind, playerID, err)
	}
	st, history, at := s.State, s.History, d.now()
	var events []event.Event
	for _, c := range cmds {
		out, err := c.Execute(st)
		if err != nil {
			return d.fail(span, s, kind, playerID, fmt.Errorf("%s: %w", c.Type(), err))
		}
		st = out.State
		events = append(events, out.Events...)
		history = history.Record(c, at)
	}
	st, events, err = d.number(st, events)
	if err != nil {
		return d.fail(span, s, kind, playerID, err)
	}
	span.SetAttributes(attribute.Int("events", len(events)))
	return Result{Session: Session{State: st, History: history}, Events: events}, nil
}

// Undo reverses the newest command in the history.
func (d *Dispatcher) Undo(ctx context.Context, s Session, playerID string) (Result, error) {
	return d.Dispatch(ctx, s, playerID, action.Undo{})
}

func (d *Dispatcher) undo(span trace.Span, s Session, playerID string) (Result, error) {
	c, rest, err := s.History.Pop()
	if errors.Is(err, command.ErrStackEmpty) {
		v := validator.Invalid(validator.CodeNothingToUndo, "nothing to undo since the last checkpoint").
			With("Reason", string(s.History.Checkpoint().Reason))
		span.SetAttributes(attribute.String("rejection.code", string(v.Code)))
		return Result{Session: s, Validation: v}, nil
	}
	out, err := c.Undo(s.State)
	if err != nil {
		return d.fail(span, s, action.KindUndo, playerID, fmt.Errorf("undo %s: %w", c.Type(), err))
	}
	st, events, err := d.number(out.State, out.Events)
	if err != nil {
		return d.fail(span, s, action.KindUndo, playerID, err)
	}
	span.SetAttributes(attribute.String("command.type", string(c.Type())))
	return Result{Session: Session{State: st, History: rest}, Events: events}, nil
}

// number checks events against the event registry and assigns their
// sequence numbers.
func (d *Dispatcher) number(st game.State, events []event.Event) (game.State, []event.Event, error) {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if err := d.Registries.Events.Validate(e); err != nil {
			return st, nil, err
		}
		st.EventSeq++
		e.Seq = st.EventSeq
		out = append(out, e)
	}
	return st, out, nil
}

func (d *Dispatcher) fail(span trace.Span, s Session, kind action.Kind, playerID string, err error) (Result, error) {
	err = wrapInvariant(kind, playerID, err)
	d.logger().Printf("engine: invariant violation: %v", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, "invariant violation")
	return Result{Session: s}, err
}

// Localize returns the message for a rejected result in locale, falling
// back to the result's own message when the locale has none.
func Localize(locale string, r validator.Result) string {
	if r.OK() {
		return ""
	}
	cat := i18n.GetCatalog(locale, i18n.NamespaceRules)
	if !cat.Has(string(r.Code)) {
		return r.Message
	}
	return cat.Format(string(r.Code), r.Metadata)
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func (d *Dispatcher) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

func (d *Dispatcher) tracer() trace.Tracer {
	if d.Tracer != nil {
		return d.Tracer
	}
	return otel.Tracer(tracerName)
}
