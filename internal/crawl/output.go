package crawl

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Param is one entry of the static-generation parameter list.
type Param struct {
	ID string `json:"id" yaml:"id"`
}

// Params converts ids to generation parameters, preserving order.
func Params(ids []int64) []Param {
	params := make([]Param, 0, len(ids))
	for _, id := range ids {
		params = append(params, Param{ID: strconv.FormatInt(id, 10)})
	}
	return params
}

// Write renders ids to w as "text" (one id per line), "json" or "yaml"
// generation parameters.
func Write(w io.Writer, ids []int64, format string) error {
	switch format {
	case "", "text":
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Params(ids))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Params(ids)); err != nil {
			return fmt.Errorf("failed to encode params: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
