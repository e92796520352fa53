package transform

// StackBuilderOption is a functional option for configuring a Stack.
type StackBuilderOption func(*stackImpl)

// WithSink attaches a Sink that receives every change to a channel's top matrix.
//
// Parameters:
//   - sink: the receiver, typically the draw API
//
// Returns:
//   - StackBuilderOption: option function to apply
func WithSink(sink Sink) StackBuilderOption {
	return func(s *stackImpl) {
		s.sink = sink
	}
}

// WithMaxDepth sets the per-channel depth limit. Values below 2 are ignored.
//
// Parameters:
//   - depth: the maximum number of entries per channel (default 32)
//
// Returns:
//   - StackBuilderOption: option function to apply
func WithMaxDepth(depth int) StackBuilderOption {
	return func(s *stackImpl) {
		if depth >= 2 {
			s.maxDepth = depth
		}
	}
}
