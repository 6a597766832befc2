package mapology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/viant/mapology/conv"
)

// maxDepth bounds nested model recursion
const maxDepth = 512

var (
	errNull             = errors.New("null value")
	errVetoed           = errors.New("transform vetoed")
	errNotTransformable = errors.New("not transformable")
	errTooDeep          = errors.New("max depth exceeded")
)

// session holds state of one mapping call
type session struct {
	ctx        context.Context
	options    *Options
	logger     *slog.Logger
	converters map[string]*conv.Converter
	depth      int
}

func newSession(ctx context.Context, options *Options) *session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &session{ctx: ctx, options: options, logger: loggerFor(ctx, options)}
}

// converter returns scalar converter for a field time layout, empty layout uses the call layout
func (s *session) converter(layout string) *conv.Converter {
	if layout == "" {
		layout = s.options.timeLayout
	}
	if ret, ok := s.converters[layout]; ok {
		return ret
	}
	if s.converters == nil {
		s.converters = map[string]*conv.Converter{}
	}
	ret := conv.NewConverter(conv.Options{TimeLayout: layout})
	registerCodecs(ret)
	s.converters[layout] = ret
	return ret
}

func (s *session) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if !enabled(level) {
		return
	}
	s.logger.LogAttrs(s.ctx, level, msg, attrs...)
}

func (s *session) skip(owner reflect.Type, field *Field, reason SkipReason, err error) {
	level := slog.LevelDebug
	if reason == SkipNoKey {
		level = LevelVerbose
	}
	if !enabled(level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("type", owner.String()),
		slog.String("field", field.Name),
		slog.String("reason", string(reason)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(s.ctx, level, "field skipped", attrs...)
}

func (s *session) enter(t reflect.Type) error {
	s.depth++
	if s.depth > maxDepth {
		return fmt.Errorf("%w: %v", errTooDeep, t)
	}
	return nil
}

func (s *session) leave() {
	s.depth--
}

func (s *session) unresolvable(t reflect.Type, err error) error {
	s.log(slog.LevelError, "unresolvable type", slog.String("type", fmt.Sprint(t)), slog.String("error", err.Error()))
	return &TypeError{Type: t, Err: fmt.Errorf("%w: %w", ErrUnresolvableType, err)}
}

func skipReason(err error) SkipReason {
	switch {
	case errors.Is(err, errNull):
		return SkipNoKey
	case errors.Is(err, errVetoed):
		return SkipVetoed
	case errors.Is(err, errNotTransformable):
		return SkipNotTransformable
	}
	return SkipConversion
}
