package refiner

import (
	"transcriptflow/internal/gemini"
	"transcriptflow/internal/logger"
)

type implRefiner struct {
	generator gemini.Generator
	l         logger.Logger
	language  string
}

// New builds a Refiner that renders each chunk through the generator in the
// given output language.
func New(generator gemini.Generator, l logger.Logger, language string) Refiner {
	return &implRefiner{
		generator: generator,
		l:         l,
		language:  language,
	}
}
