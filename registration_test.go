package domwindow

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimerRegistration_SkipsDelayPosition(t *testing.T) {
	rt := goja.New()
	fn, err := rt.RunString(`(function () {})`)
	require.NoError(t, err)

	argv := []goja.Value{fn, rt.ToValue(100), rt.ToValue(`a1`), rt.ToValue(2)}
	reg := NewTimerRegistration(argv)

	assert.True(t, reg.Callback.SameAs(fn))
	require.Len(t, reg.Arguments, 2)
	assert.Equal(t, `a1`, reg.Arguments[0].Export())
	assert.Equal(t, int64(2), reg.Arguments[1].Export())
}

func TestNewTimerRegistration_DoesNotAliasArgv(t *testing.T) {
	rt := goja.New()
	argv := []goja.Value{goja.Undefined(), rt.ToValue(0), rt.ToValue(`kept`)}
	reg := NewTimerRegistration(argv)

	// the caller's buffer is transient, and may be reused
	argv[2] = rt.ToValue(`clobbered`)

	require.Len(t, reg.Arguments, 1)
	assert.Equal(t, `kept`, reg.Arguments[0].Export())
}

func TestNewTimerRegistration_ShortArgv(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		argv []goja.Value
	}{
		{`nil`, nil},
		{`callback only`, []goja.Value{goja.Null()}},
		{`callback and delay`, []goja.Value{goja.Null(), goja.Undefined()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewTimerRegistration(tc.argv)
			require.NotNil(t, reg.Callback)
			assert.Empty(t, reg.Arguments)
		})
	}
	assert.True(t, goja.IsUndefined(NewTimerRegistration(nil).Callback))
}

func TestTimerRegistration_Equal(t *testing.T) {
	rt := goja.New()
	fnA, err := rt.RunString(`(function () {})`)
	require.NoError(t, err)
	fnB, err := rt.RunString(`(function () {})`)
	require.NoError(t, err)

	a := &TimerRegistration{Callback: fnA, Arguments: []goja.Value{rt.ToValue(1), rt.ToValue(`x`)}}

	assert.True(t, a.Equal(&TimerRegistration{Callback: fnA, Arguments: []goja.Value{rt.ToValue(1), rt.ToValue(`x`)}}))
	assert.False(t, a.Equal(&TimerRegistration{Callback: fnB, Arguments: []goja.Value{rt.ToValue(1), rt.ToValue(`x`)}}))
	assert.False(t, a.Equal(&TimerRegistration{Callback: fnA, Arguments: []goja.Value{rt.ToValue(1)}}))
	assert.False(t, a.Equal(&TimerRegistration{Callback: fnA, Arguments: []goja.Value{rt.ToValue(2), rt.ToValue(`x`)}}))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*TimerRegistration)(nil).Equal(nil))
}
