package domwindow

import (
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapper_SetTimeoutFromScript(t *testing.T) {
	w, inbox, facility, rt := newTestWindow(t)

	_, err := rt.RunString(`
		var cb = function (a, b) {};
		setTimeout(cb, 5, 'x', 42);
		window.setTimeout(cb, -10);
	`)
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{5 * time.Millisecond, 0}, facility.Delays())

	facility.fire()
	destroyAndWait(t, w)

	cb := rt.Get(`cb`)
	notifications := inbox.Notifications()
	require.Len(t, notifications, 2)
	assert.True(t, notifications[0].(TimerNotification).Registration.Equal(&TimerRegistration{
		Callback:  cb,
		Arguments: []goja.Value{rt.ToValue(`x`), rt.ToValue(42)},
	}))
	assert.True(t, notifications[1].(TimerNotification).Registration.Equal(&TimerRegistration{Callback: cb}))
}

func TestWrapper_SetTimeoutRequiresFunction(t *testing.T) {
	w, inbox, facility, rt := newTestWindow(t)

	_, err := rt.RunString(`setTimeout('alert(1)', 0)`)
	require.Error(t, err)
	var exception *goja.Exception
	require.ErrorAs(t, err, &exception)
	assert.Contains(t, exception.Error(), `TypeError`)

	assert.Empty(t, facility.Delays())
	destroyAndWait(t, w)
	assert.Empty(t, inbox.Notifications())
}

func TestWrapper_CloseAndAlert(t *testing.T) {
	var alerts []string
	w, inbox, _, rt := newTestWindow(t, WithAlertSink(AlertSinkFunc(func(message string) {
		alerts = append(alerts, message)
	})))

	_, err := rt.RunString(`
		alert('one');
		window.alert(2);
		alert();
		close();
		window.close();
	`)
	require.NoError(t, err)
	destroyAndWait(t, w)

	assert.Equal(t, []string{`one`, `2`, ``}, alerts)
	assert.Equal(t, []Notification{ExitNotification{}, ExitNotification{}}, inbox.Notifications())
	assert.Same(t, w.Object(), rt.Get(`window`).ToObject(rt))
}

func TestWrapper_ThrowsAfterDestroy(t *testing.T) {
	w, _, facility, rt := newTestWindow(t)
	destroyAndWait(t, w)

	for _, src := range [...]string{`setTimeout(function () {}, 0)`, `close()`} {
		_, err := rt.RunString(src)
		require.Error(t, err, src)
		assert.Contains(t, err.Error(), ErrWindowDestroyed.Error())
	}
	assert.Empty(t, facility.Delays())
}
