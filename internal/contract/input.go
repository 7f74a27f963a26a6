package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var errMissingInput = errors.New("input is required")

// Input is the undecoded argument of an invocation: either a JSON document or
// a set of plain query parameters.
type Input struct {
	Raw    json.RawMessage
	Params map[string]string
}

func JSONInput(raw json.RawMessage) Input {
	return Input{Raw: raw}
}

// ParamsInput keeps the first value of each query parameter.
func ParamsInput(values url.Values) Input {
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return Input{Params: params}
}

func (in Input) empty() bool {
	raw := bytes.TrimSpace(in.Raw)
	return len(in.Params) == 0 && (len(raw) == 0 || bytes.Equal(raw, []byte("null")))
}

// decode fills target from the input. Every field of target must be present
// in the input; extra keys are ignored. Plain query parameters are converted
// to the field types, JSON values must already match them.
func (in Input) decode(target any) error {
	if in.empty() {
		return errMissingInput
	}

	var source map[string]any
	weak := len(in.Params) > 0
	if weak {
		source = make(map[string]any, len(in.Params))
		for k, v := range in.Params {
			source[k] = v
		}
	} else if err := json.Unmarshal(in.Raw, &source); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		Metadata:         &md,
		WeaklyTypedInput: weak,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	if len(md.Unset) > 0 {
		sort.Strings(md.Unset)
		return fmt.Errorf("%s: required", strings.Join(md.Unset, ", "))
	}
	return nil
}
