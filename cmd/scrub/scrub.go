package scrub

import (
	"bufio"
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"

	"posapi/src/redact"
)

// Scrubber rewrites log text through the redaction filter. It exists
// for logs produced before the redaction hook was deployed, so they can
// be sanitized before shipping.
type Scrubber struct {
	Filter *redact.Filter
}

// Run reads input line by line and writes the redacted lines to output.
// Returns how many lines were changed.
func (s *Scrubber) Run(input io.Reader, output io.Writer) (int, error) {
	filter := s.Filter
	if filter == nil {
		filter = redact.NewDefaultFilter()
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	writer := bufio.NewWriter(output)
	defer writer.Flush()

	changed := 0
	for scanner.Scan() {
		line := scanner.Text()
		redacted := filter.Redact(line)
		if redacted != line {
			changed++
		}
		if _, err := fmt.Fprintln(writer, redacted); err != nil {
			return changed, err
		}
	}
	if err := scanner.Err(); err != nil {
		return changed, fmt.Errorf("failed to read input: %w", err)
	}

	return changed, nil
}

// RunFiles opens the named input and output, with "-" meaning stdin and
// stdout respectively.
func (s *Scrubber) RunFiles(inPath, outPath string) error {
	input := io.Reader(os.Stdin)
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		input = f
	}

	output := io.Writer(os.Stdout)
	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to open output: %w", err)
		}
		defer f.Close()
		output = f
	}

	changed, err := s.Run(input, output)
	if err != nil {
		return err
	}

	logger.WithField("lines_changed", changed).Info("scrub completed")
	return nil
}
