package config

import "github.com/firebase/genkit/go/ai"

// BasicText describes chat models that take text in and out and can call tools.
var BasicText = ai.ModelSupports{
	Multiturn:  true,
	Tools:      true,
	SystemRole: true,
	Media:      false,
}
