package chef

// OutputFormatter renders a single popped Value for Serves/Refrigerate
// output. Adapted from the teacher's RecipeRenderer/RendererFunc pair
// (renderer.go): a one-method interface plus a func adapter, but
// dispatching on a Value's Kind tag rather than on renderer identity.
type OutputFormatter interface {
	FormatValue(v Value) string
}

// OutputFormatterFunc adapts a plain func to OutputFormatter.
type OutputFormatterFunc func(Value) string

func (f OutputFormatterFunc) FormatValue(v Value) string { return f(v) }

// DefaultFormatter implements spec.md §4.4's Serves formatting rule:
// wet values print as the Unicode scalar equal to Amount mod 0x110000,
// dry values print as an unpadded decimal integer.
var DefaultFormatter OutputFormatter = OutputFormatterFunc(func(v Value) string {
	return v.Format()
})
