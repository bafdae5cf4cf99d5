// Package iojson reads and writes the JSON forms of command input and output.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// marshalFailure is written in place of a value that could not be encoded.
func marshalFailure(err error) string {
	msg, _ := json.Marshal("error marshaling output")
	detail, _ := json.Marshal(err.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msg, detail)
}

// WriteLine writes obj as a single compact JSON line to w.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// on ew as a JSON error body.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		if _, werr := fmt.Fprintln(ew, marshalFailure(err)); werr != nil {
			return werr
		}
		return fmt.Errorf("marshal json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
