// Package records turns persisted JSON of any past shape into the current
// record types. Reading never fails on bad data: unusable parts are dropped
// and reported through a Corrupted flag.
package records

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode copies loosely typed input (usually a decoded JSON object) into out
// using mapstructure tags. Fields absent from input keep their current value
// in out, so callers can pre-fill defaults.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(timeLayout),
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}
