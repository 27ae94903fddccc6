package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/store"
	"github.com/avolkenstein/planweave/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with appModel inspection helpers.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel over the given App, sets the
// terminal size, and drains Init().
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

func (d *TestDriver) state() *SharedState {
	return d.appModel().state
}

func (d *TestDriver) activeViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	require.NotNil(d.T, v)
	return v.ID()
}

func (d *TestDriver) stackDepth() int {
	return len(d.appModel().viewStack)
}

// pinNow fixes the TUI clock for the test.
func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

// newTestApp builds an App over a file-backed store seeded with three
// tasks spanning early March 2024.
func newTestApp(t *testing.T) *App {
	t.Helper()

	st := store.New(filepath.Join(t.TempDir(), "tasks.yaml"))
	require.NoError(t, st.Load())

	design, err := st.Add(domain.Task{
		Name:      "Design",
		Status:    domain.StatusCompleted,
		Priority:  domain.PriorityHigh,
		StartDate: day(2024, 3, 1),
		EndDate:   day(2024, 3, 3),
	})
	require.NoError(t, err)

	_, err = st.Add(domain.Task{
		Name:         "Build",
		Status:       domain.StatusNotStarted,
		Priority:     domain.PriorityMedium,
		StartDate:    day(2024, 3, 4),
		EndDate:      day(2024, 3, 8),
		Dependencies: []string{design.ID},
	})
	require.NoError(t, err)

	_, err = st.Add(domain.Task{
		Name:      "Ship",
		Status:    domain.StatusNotStarted,
		Priority:  domain.PriorityLow,
		StartDate: day(2024, 3, 9),
		EndDate:   day(2024, 3, 9),
	})
	require.NoError(t, err)

	return &App{Store: st}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
