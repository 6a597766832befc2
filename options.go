package mapology

import (
	"log/slog"
	"sync/atomic"

	"github.com/viant/mapology/conv"
	"github.com/viant/tagly/format/text"
)

// DefaultTagName is the struct tag used for key names
const DefaultTagName = "json"

type (
	// Options represents mapping options
	Options struct {
		logger           *slog.Logger
		tagName          string
		caseFormat       text.CaseFormat
		timeLayout       string
		accessUnexported bool
		designatedPath   string
		prettyPrint      bool
		comments         bool
	}

	//Option represents mapping option
	Option func(o *Options)
)

var defaultOptions atomic.Pointer[Options]

func init() {
	defaultOptions.Store(&Options{tagName: DefaultTagName, timeLayout: conv.DefaultTimeLayout})
}

func newOptions(opts []Option) *Options {
	ret := *defaultOptions.Load()
	for _, opt := range opts {
		if opt != nil {
			opt(&ret)
		}
	}
	if ret.tagName == "" {
		ret.tagName = DefaultTagName
	}
	if ret.timeLayout == "" {
		ret.timeLayout = conv.DefaultTimeLayout
	}
	return &ret
}

func (o *Options) resolverKey() resolverKey {
	return resolverKey{tagName: o.tagName, caseFormat: o.caseFormat, unexported: o.accessUnexported}
}

// WithLogger returns option setting call logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithTagName returns option setting the struct tag used for key names
func WithTagName(name string) Option {
	return func(o *Options) {
		o.tagName = name
	}
}

// WithCaseFormat returns option formatting untagged field names with supplied case format
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *Options) {
		o.caseFormat = caseFormat
	}
}

// WithTimeLayout returns option setting time layout
func WithTimeLayout(layout string) Option {
	return func(o *Options) {
		o.timeLayout = layout
	}
}

// WithAccessUnexported returns option including unexported fields
func WithAccessUnexported(flag bool) Option {
	return func(o *Options) {
		o.accessUnexported = flag
	}
}

// WithDesignatedPath returns option selecting a nested node (i.e. data.user) before JSON text mapping
func WithDesignatedPath(path string) Option {
	return func(o *Options) {
		o.designatedPath = path
	}
}

// WithPrettyPrint returns option indenting JSON text output
func WithPrettyPrint(flag bool) Option {
	return func(o *Options) {
		o.prettyPrint = flag
	}
}

// WithComments returns option accepting JSON text with comments and trailing commas
func WithComments(flag bool) Option {
	return func(o *Options) {
		o.comments = flag
	}
}
