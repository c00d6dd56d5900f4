package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/report"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

type fakeClient struct {
	err error

	registered []string
	loginUser  string
	loginPass  string
	loggedOut  bool
	pingErr    error

	items     []pantry.Item
	lastQuery client.ListQuery
	added     pantry.Item
	patchID   string
	patch     pantry.Patch
	deleted   string
	days      int
	asOf      timex.Date
	report    report.Report

	uploadID   string
	uploadType string
	uploadData []byte
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(_ context.Context, u string, p []byte) error {
	f.registered = append(f.registered, u+":"+string(p))
	return f.err
}
func (f *fakeClient) Login(_ context.Context, u string, p []byte) error {
	f.loginUser, f.loginPass = u, string(p)
	return f.err
}
func (f *fakeClient) Logout(context.Context) error {
	f.loggedOut = true
	return f.err
}
func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeClient) Categories(context.Context) ([]pantry.Category, error) {
	return pantry.Categories, f.err
}
func (f *fakeClient) ListItems(_ context.Context, q client.ListQuery) ([]pantry.Item, error) {
	f.lastQuery = q
	return f.items, f.err
}
func (f *fakeClient) AddItem(_ context.Context, it pantry.Item) (pantry.Item, error) {
	f.added = it
	it.ID = "new-id"
	return it, f.err
}
func (f *fakeClient) UpdateItem(_ context.Context, id string, p pantry.Patch) (pantry.Item, error) {
	f.patchID, f.patch = id, p
	return p.Apply(pantry.Item{ID: id, Name: "Milk", Quantity: "1", Category: pantry.Dairy}), f.err
}
func (f *fakeClient) DeleteItem(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}
func (f *fakeClient) Expiring(_ context.Context, days int) ([]pantry.Item, error) {
	f.days = days
	return f.items, f.err
}
func (f *fakeClient) Summary(_ context.Context, asOf timex.Date) (report.Report, error) {
	f.asOf = asOf
	return f.report, f.err
}
func (f *fakeClient) UploadImage(_ context.Context, id, ct string, data []byte) (pantry.Item, error) {
	f.uploadID, f.uploadType, f.uploadData = id, ct, data
	return pantry.Item{ID: id, ImageURL: "https://cdn.example/x.png"}, f.err
}

var today = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestApp answers prompts from input, one line per prompt.
func newTestApp(t *testing.T, fc *fakeClient, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(&config.Config{}, fc, strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	a.now = func() time.Time { return today }
	return a, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
