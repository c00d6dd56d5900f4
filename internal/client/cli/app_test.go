package cli

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	assert.False(t, app.isLoggedIn())

	app.userName = "alice"
	assert.True(t, app.isLoggedIn())
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, app.Mode)
	assert.NotEmpty(t, buf.String())

	buf.Reset()
	app.setMode(ModeOnline)
	assert.Empty(t, buf.String())

	app.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, app.Mode)
	assert.NotEmpty(t, buf.String())
}

func TestGetStatus(t *testing.T) {
	app := &App{}
	assert.Equal(t, "", app.getStatus())

	app.Mode = ModeOffline
	assert.Equal(t, "offline", app.getStatus())
}

func silenceLog(t *testing.T) {
	t.Helper()
	old := log.Default().Writer()
	log.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { log.SetOutput(old) })
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	silenceLog(t)

	fc := &fakeClient{pingErr: errors.New("down")}
	a, _ := newTestApp(t, fc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, ModeOffline, a.Mode)
}

func TestRun_ExitsAndLogsOut(t *testing.T) {
	silenceLog(t)
	captureOutput(t)
	stubPassword(t, "pw")

	fc := &fakeClient{}
	a, _ := newTestApp(t, fc, "login", "alice", "exit")

	a.Run(context.Background())

	assert.Equal(t, "alice", fc.loginUser)
	assert.True(t, fc.loggedOut)
}
