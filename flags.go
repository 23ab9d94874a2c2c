package svgaxis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ValueFlags is a repeatable flag collecting domain, tick or label values.
// Numbers are kept as float64, anything else as the string given. The
// first use on the command line replaces the default values.
type ValueFlags struct {
	Values  []interface{}
	beenSet bool
}

func (f *ValueFlags) Set(valueStr string) error {
	valueStr = strings.TrimSpace(valueStr)
	if valueStr == "" {
		return errors.New("empty value")
	}

	if !f.beenSet {
		f.beenSet = true
		f.Values = nil
	}

	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		f.Values = append(f.Values, value)
		return nil
	}
	f.Values = append(f.Values, valueStr)
	return nil
}

func (f *ValueFlags) String() string {
	return fmt.Sprint(f.Values)
}

func (f *ValueFlags) Type() string {
	return "value"
}
