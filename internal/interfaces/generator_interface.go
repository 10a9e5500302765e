package interfaces

import "context"

// TextGenerator completes a prompt under a system instruction.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ImageGenerator returns the encoded image and its content type.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// SpeechSynthesizer returns the encoded audio and its content type.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, string, error)
}
