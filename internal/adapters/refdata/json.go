package refdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// unmarshalJSON decodes b into out and reports syntax and type errors with
// their line and character position.
func unmarshalJSON[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	position := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &synErr):
		line, char := position(synErr.Offset)
		return fmt.Errorf("line %d, character %d: %w", line, char, err)
	case errors.As(err, &typeErr):
		line, char := position(typeErr.Offset)
		return fmt.Errorf("line %d, character %d: %s value for %s invalid for type %s",
			line, char, typeErr.Value, typeErr.Field, typeErr.Type)
	default:
		return err
	}
}

func readJSON[T any](path string, out *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := unmarshalJSON(b, out); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}
