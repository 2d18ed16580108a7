package argmap

import "errors"

var (
	// ErrEmptyTranscript is returned when an operation needs a transcript and got none.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrEmptyDiagram is returned when an operation needs a diagram and got none.
	ErrEmptyDiagram = errors.New("diagram is empty")

	// ErrEmptyInstruction is returned by EditDiagram for a blank edit instruction.
	ErrEmptyInstruction = errors.New("edit instruction is empty")

	// ErrEmptyAudio is returned when audio input has no bytes.
	ErrEmptyAudio = errors.New("audio is empty")

	// ErrNoTranscriber is returned by audio operations when no transcriber is configured.
	ErrNoTranscriber = errors.New("no transcriber configured - use WithAssemblyAITranscriber or WithCustomTranscriber")

	// ErrPromptTooLong is returned when a prompt exceeds the configured token budget.
	ErrPromptTooLong = errors.New("prompt exceeds token budget")

	// ErrUnparsableScore is returned when the model's similarity reply has no leading number.
	ErrUnparsableScore = errors.New("similarity reply is not a number")
)
