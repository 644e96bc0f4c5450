package logger

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	Reset()
	Output = &out
	ErrOutput = &errOut
	t.Cleanup(Reset)
	return &out, &errOut
}

func TestCreateAndUpdate(t *testing.T) {
	out, _ := capture(t)

	Create("app/controllers/user.controller.ts")
	Update("package.json")

	assert.Contains(t, out.String(), "CREATE")
	assert.Contains(t, out.String(), "app/controllers/user.controller.ts")
	assert.Contains(t, out.String(), "UPDATE")
	assert.Contains(t, out.String(), "package.json")
}

func TestErrorGoesToErrOutput(t *testing.T) {
	out, errOut := capture(t)

	Error("The target directory %q already exists.", "my-app")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), `"my-app"`)
}

func TestTestModeSuppressesEverything(t *testing.T) {
	out, errOut := capture(t)
	SetTestMode(true)

	Log("hello")
	Error("boom")
	Command("npm install")

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
	assert.Nil(t, StartSpinner("installing"))
}

func TestDisable(t *testing.T) {
	out, _ := capture(t)

	Disable()
	Log("hidden")
	Enable()
	Log("shown")

	assert.Equal(t, "shown\n", out.String())
}

func TestNilSpinnerStop(t *testing.T) {
	var s *Spinner
	assert.NotPanics(t, s.Stop)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

func TestSpinnerStopsRendering(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	out := &lockedBuffer{}
	Output = out

	s := StartSpinner("installing")
	require.NotNil(t, s)
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	written := out.Len()
	assert.Positive(t, written)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, written, out.Len(), "spinner wrote after Stop")
}
