package core

import "context"

// StreamRequest carries one outbound generation call to the provider.
type StreamRequest struct {
	// Instruction is the full user prompt, source text included.
	Instruction string
	// SystemPrompt frames the provider's role for the whole call.
	SystemPrompt string
	// Temperature in [0, 1]; translation wants the low end.
	Temperature float32
}

// FragmentStream yields translated fragments in arrival order. Recv returns
// io.EOF once the provider signals a clean end of stream; any other error
// means the stream died mid-flight and will yield nothing further. Streams
// are never restartable.
type FragmentStream interface {
	Recv() (string, error)
}

// StreamProvider opens streaming generation calls against a hosted model.
type StreamProvider interface {
	// Stream starts one generation. Cancelling ctx tears the stream down;
	// the next Recv then fails.
	Stream(ctx context.Context, req StreamRequest) (FragmentStream, error)
}
