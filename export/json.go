// Package export serializes outlines and reports for downstream
// consumers.
package export

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/tsawler/contour/model"
)

// JSON marshals v to compact JSON.
func JSON(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// JSONIndent marshals v to indented JSON suitable for files meant to
// be read by people.
func JSONIndent(v any) ([]byte, error) {
	return sonic.ConfigDefault.MarshalIndent(v, "", "  ")
}

// WriteJSON streams v as JSON to w.
func WriteJSON(w io.Writer, v any) error {
	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// ReadJSON decodes an outline previously produced by this package.
func ReadJSON(data []byte) (model.Outline, error) {
	var o model.Outline
	err := sonic.Unmarshal(data, &o)
	return o, err
}
