package ui

// Option configures a UI widget.
type Option func(*options)

// options holds widget configuration keyed by OptKey name.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for widget options.
//
// Example:
//
//	var OptPrecision = ui.NewOptKey("precision", -1)
//	ctx.DragFloat("x", &v, ui.WithOpt(OptPrecision, 3))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name.
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value, falling back to the key's default.
func GetOpt[T any](o options, key OptKey[T]) T {
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	_, ok := o.extensions[key.name]
	return ok
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Built-in option keys.
var (
	OptID       = NewOptKey("id", "")
	OptDisabled = NewOptKey("disabled", false)
	OptWidth    = NewOptKey("width", float32(0))
	OptFormat   = NewOptKey("format", "")
	OptStep     = NewOptKey("step", 0.0)
	OptSpeed    = NewOptKey("speed", 0.0)
	OptMin      = NewOptKey("min", 0.0)
	OptMax      = NewOptKey("max", 0.0)
	OptAlpha    = NewOptKey("alpha", false)
	OptTooltip  = NewOptKey("tooltip", "")
	OptOpen     = NewOptKey("open", true)
)

// WithID sets an explicit widget ID, for labels that repeat.
func WithID(id string) Option { return WithOpt(OptID, id) }

// WithDisabled disables interaction.
func WithDisabled(disabled bool) Option { return WithOpt(OptDisabled, disabled) }

// WithWidth sets the widget's control width.
func WithWidth(w float32) Option { return WithOpt(OptWidth, w) }

// WithFormat sets a printf-style value format (e.g. "%.3f").
func WithFormat(format string) Option { return WithOpt(OptFormat, format) }

// WithStep sets the value increment.
func WithStep(step float64) Option { return WithOpt(OptStep, step) }

// WithDragSpeed sets value change per dragged pixel.
func WithDragSpeed(speed float64) Option { return WithOpt(OptSpeed, speed) }

// WithRange clamps drag widgets to [min, max].
func WithRange(minVal, maxVal float64) Option {
	return func(o *options) {
		WithOpt(OptMin, minVal)(o)
		WithOpt(OptMax, maxVal)(o)
	}
}

// WithMin clamps drag widgets from below only.
func WithMin(minVal float64) Option { return WithOpt(OptMin, minVal) }

// WithMax clamps drag widgets from above only.
func WithMax(maxVal float64) Option { return WithOpt(OptMax, maxVal) }

// WithAlpha makes ColorEdit show an alpha channel.
func WithAlpha() Option { return WithOpt(OptAlpha, true) }

// WithTooltip shows text while the widget is hovered.
func WithTooltip(text string) Option { return WithOpt(OptTooltip, text) }

// DefaultOpen sets the initial state of a collapsing header.
func DefaultOpen(open bool) Option { return WithOpt(OptOpen, open) }
