package svgaxis

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFlags(t *testing.T) {
	f := ValueFlags{Values: []interface{}{0.0, 10.0}}
	assert.Equal(t, "[0 10]", f.String())
	assert.Equal(t, "value", f.Type())

	require.NoError(t, f.Set("5"))
	require.NoError(t, f.Set(" b "))
	assert.Equal(t, []interface{}{5.0, "b"}, f.Values)
	assert.Error(t, f.Set(""))
}

func TestValueFlagsParse(t *testing.T) {
	f := ValueFlags{Values: []interface{}{0.0, 10.0}}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&f, "domain", "domain value")
	require.NoError(t, fs.Parse([]string{"--domain", "1", "--domain=2020-01-01"}))
	assert.Equal(t, []interface{}{1.0, "2020-01-01"}, f.Values)

	untouched := ValueFlags{Values: []interface{}{0.0, 10.0}}
	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&untouched, "domain", "domain value")
	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, []interface{}{0.0, 10.0}, untouched.Values)
}
