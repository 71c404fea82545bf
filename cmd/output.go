package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/eflow-hydraulics/hdf-inspector/pkg/config"
	"github.com/eflow-hydraulics/hdf-inspector/pkg/inspector"
)

var outputFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write the JSON result to a file instead of stdout")
}

// newInspector builds an inspector from the loaded configuration for
// one-shot CLI invocations.
func newInspector() (*inspector.Inspector, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return inspector.New(cfg, GetLogger())
}

// emit pretty-prints the result as JSON to stdout or --output. Operation
// failures are emitted as a tagged {"error": ...} record and do not
// change the exit code; only invalid usage exits non-zero.
func emit(result interface{}, opErr error) error {
	if opErr != nil {
		result = map[string]string{"error": opErr.Error()}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	out = append(out, '\n')

	if outputFile != "" {
		if err := os.WriteFile(outputFile, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		GetLogger().WithFields(logrus.Fields{"path": outputFile}).Info("Result written")
		return nil
	}

	_, err = os.Stdout.Write(out)
	return err
}
