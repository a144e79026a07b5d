package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lazymode"
	"github.com/hupe1980/lazymode/dataset"
)

func newTrainCmd() *cobra.Command {
	var (
		demo      bool
		noAccel   bool
		noGPU     bool
		modelPath string
		dataPath  string
		runDemo   bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model and save its snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			var examples []dataset.Example
			switch {
			case demo || dataPath == "":
				examples = dataset.Demo()
				if dataPath != "" {
					if err := dataset.Save(dataPath, examples); err != nil {
						return fmt.Errorf("save training data: %w", err)
					}
				}
			default:
				var err error
				examples, err = dataset.Load(dataPath)
				if err != nil {
					return fmt.Errorf("load training data: %w", err)
				}
			}

			train, validation := dataset.Split(examples, 0.9)
			if len(train) == 0 {
				train = examples
				validation = nil
			}

			model, err := lazymode.New(
				lazymode.WithAcceleration(!noAccel && !noGPU),
				lazymode.WithLogger(logger),
			)
			if err != nil {
				return err
			}

			inputs, outputs := dataset.Pairs(train)
			stats, err := model.Train(inputs, outputs)
			if err != nil {
				return err
			}

			if len(validation) > 0 {
				valInputs, valOutputs := dataset.Pairs(validation)
				eval, err := model.Evaluate(valInputs, valOutputs)
				if err != nil {
					return err
				}
				if !quiet {
					fmt.Printf("Structural accuracy: %.2f%%\n", eval.StructuralAccuracy*100)
					fmt.Printf("Section coverage:    %.2f%%\n", eval.SectionCoverage*100)
				}
			}

			if err := model.SaveFile(modelPath); err != nil {
				return fmt.Errorf("save model: %w", err)
			}
			if !quiet {
				fmt.Printf("Trained on %d examples (vocabulary %d) in %s\n",
					stats.Examples, stats.VocabularySize, stats.Duration.Round(1e6))
				fmt.Printf("Model saved to %s\n", modelPath)
			}

			if runDemo {
				return demoPredictions(model)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "train on the built-in demo corpus")
	cmd.Flags().BoolVar(&noAccel, "no-accel", false, "disable SIMD-accelerated distance kernels")
	cmd.Flags().BoolVar(&noGPU, "no-gpu", false, "disable accelerated distance kernels")
	cmd.Flags().MarkHidden("no-gpu")
	cmd.Flags().MarkDeprecated("no-gpu", "use --no-accel")
	cmd.Flags().StringVar(&modelPath, "model-path", lazymode.DefaultModelPath(), "output location for the saved model")
	cmd.Flags().StringVar(&dataPath, "data-path", "", "training data JSON file (written when used with --demo)")
	cmd.Flags().BoolVar(&runDemo, "run-demo", false, "print sample predictions after training")

	return cmd
}

func demoPredictions(model *lazymode.Model) error {
	samples := []string{
		"Application freezes when loading dashboard",
		"API returns 500 error on user registration",
		"Need to add dark mode support",
		"Login session expires too quickly",
	}
	for _, sample := range samples {
		out, err := model.Predict(sample)
		if err != nil {
			return err
		}
		fmt.Printf("\nInput: %s\n%s\n%s\n", sample, delimiter, out)
	}
	return nil
}

const delimiter = "------------------------------------------------------------"
