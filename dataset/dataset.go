// Package dataset generates and handles (raw input, formatted output)
// training pairs for the issue formatter. The demo corpus is synthetic and
// covers the issue shapes the formatter is expected to pattern-match
// against; real deployments can feed their own datasets through Save/Load.
package dataset

import (
	"fmt"
	"os"

	"github.com/hupe1980/lazymode/codec"
)

// Example is a single training pair: the free-form input and the Markdown
// the model should reproduce for inputs like it.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Pairs splits examples into parallel input/output slices.
func Pairs(examples []Example) (inputs, outputs []string) {
	inputs = make([]string, len(examples))
	outputs = make([]string, len(examples))
	for i, ex := range examples {
		inputs[i] = ex.Input
		outputs[i] = ex.Output
	}
	return inputs, outputs
}

// Split divides examples into training and validation sets by a front/back
// cut at trainRatio. Deterministic: no shuffling.
func Split(examples []Example, trainRatio float64) (train, validation []Example) {
	if trainRatio < 0 {
		trainRatio = 0
	}
	if trainRatio > 1 {
		trainRatio = 1
	}
	cut := int(float64(len(examples)) * trainRatio)
	return examples[:cut], examples[cut:]
}

// Save writes examples to path as JSON.
func Save(path string, examples []Example) error {
	data, err := codec.Default.Marshal(examples)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads examples from a JSON file written by Save.
func Load(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var examples []Example
	if err := codec.Default.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return examples, nil
}

// Demo returns the built-in synthetic training corpus.
func Demo() []Example {
	return demoExamples
}
