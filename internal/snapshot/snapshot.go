package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Encode writes projects as an indented JSON envelope.
func Encode(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Parse decodes and validates a payload, reporting every problem found.
func Parse(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if errs := ValidateEnvelope(&env); len(errs) > 0 {
		return nil, fmt.Errorf("invalid snapshot: %w", errors.Join(errs...))
	}
	return &env, nil
}

// Decode is the lenient counterpart of Parse: a malformed, foreign or
// invalid payload yields an empty envelope. The reason is logged when
// logger is non-nil.
func Decode(data []byte, logger *slog.Logger) Envelope {
	env, err := Parse(data)
	if err != nil {
		if logger != nil {
			logger.Warn("snapshot_discarded", slog.String("error", err.Error()))
		}
		return Envelope{Key: StorageKey, Projects: []ProjectRecord{}}
	}
	return *env
}
