package broadcast

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	abroadcast "dirpx.dev/dcast/apis/broadcast"
	"dirpx.dev/dcast/apis/level"
	"dirpx.dev/dcast/apis/record"
	asink "dirpx.dev/dcast/apis/sink"
	"dirpx.dev/dcast/apis/sink/policy"
	"dirpx.dev/dcast/runtime/encoder"
	"dirpx.dev/dcast/runtime/encoder/template"
	filesink "dirpx.dev/dcast/runtime/sink/file"
	"dirpx.dev/dcast/runtime/sink/terminal"
	"dirpx.dev/dcast/runtime/worker"
)

// lockedBuf is an io.Writer safe to read from the test goroutine while a
// worker writes.
type lockedBuf struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuf) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuf) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// pausableSink blocks every Emit until released; it models a stalled
// terminal for the backpressure scenario.
type pausableSink struct {
	gate chan struct{}
	out  lockedBuf
}

func (p *pausableSink) Name() string { return "paused" }

func (p *pausableSink) Emit(ctx context.Context, batch []byte) error {
	<-p.gate
	_, err := p.out.Write(batch)
	return err
}

func (p *pausableSink) Sync(ctx context.Context) error  { return nil }
func (p *pausableSink) Close(ctx context.Context) error { return nil }

func newTerminalController(t *testing.T, lvl level.Level, devMode bool, out *lockedBuf) *Controller {
	t.Helper()
	w := worker.New(worker.Config{
		Name:    "terminal",
		Batch:   policy.Synchronous(),
		Encoder: template.New(template.Config{Template: "[{level}] {message}"}, encoderOptions()),
		Sink:    terminal.New("terminal", out),
	})
	w.Start()
	return newController(lvl, devMode, []*worker.Worker{w})
}

func TestLevelFilter(t *testing.T) {
	var out lockedBuf
	c := newTerminalController(t, level.Info, true, &out)
	defer c.Shutdown(context.Background())

	for _, lvl := range []level.Level{level.Trace, level.Debug, level.Info, level.Warn, level.Error} {
		c.Log(record.New(lvl, "t", "x"))
	}

	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{"[INFO] x", "[WARN] x", "[ERROR] x"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnabled_WaitFree(t *testing.T) {
	var out lockedBuf
	c := newTerminalController(t, level.Warn, false, &out)
	defer c.Shutdown(context.Background())

	if c.Enabled(level.Info) {
		t.Fatalf("Info enabled under a Warn filter")
	}
	if !c.Enabled(level.Error) {
		t.Fatalf("Error not enabled under a Warn filter")
	}
}

func TestDevMode_LogIsImmediatelyVisible(t *testing.T) {
	dir := t.TempDir()
	fs, err := filesink.New(filesink.Options{Dir: dir})
	if err != nil {
		t.Fatalf("file sink: %v", err)
	}
	w := worker.New(worker.Config{
		Name:    "file",
		Batch:   policy.Synchronous(),
		Encoder: template.New(template.Config{Template: "{message}"}, encoderOptions()),
		Sink:    fs,
	})
	w.Start()
	c := newController(level.Trace, true, []*worker.Worker{w})
	defer c.Shutdown(context.Background())

	c.Log(record.New(level.Info, "t", "durable line"))

	// Dev-mode contract: by the time Log returned, the bytes are on disk
	// and visible to any other reader.
	data, err := os.ReadFile(filepath.Join(dir, filesink.CurrentName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(data), "durable line\n"; got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
}

func TestBackpressure_BoundedProducerOrderedSurvivors(t *testing.T) {
	paused := &pausableSink{gate: make(chan struct{})}
	w := worker.New(worker.Config{
		Name:          "paused",
		QueueCapacity: 8,
		Backpressure:  policy.BackpressureDropOldest,
		Batch:         policy.Synchronous(),
		Encoder:       template.New(template.Config{Template: "{message}"}, encoderOptions()),
		Sink:          paused,
	})
	w.Start()
	c := newController(level.Trace, false, []*worker.Worker{w})

	for i := 0; i < 10000; i++ {
		start := time.Now()
		c.Log(record.New(level.Info, "t", strconv.Itoa(i)))
		if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
			t.Fatalf("Log(%d) took %v under saturation, want < 10ms", i, elapsed)
		}
	}

	close(paused.gate)
	_ = c.Flush(context.Background())
	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	lines := strings.Fields(paused.out.String())
	if len(lines) == 0 {
		t.Fatalf("no records survived saturation")
	}
	prev := -1
	for _, ln := range lines {
		n, err := strconv.Atoi(ln)
		if err != nil {
			t.Fatalf("non-numeric survivor %q", ln)
		}
		if n <= prev {
			t.Fatalf("out of order: %d after %d", n, prev)
		}
		prev = n
	}
	if prev != 9999 {
		t.Fatalf("last survivor = %d; drop-oldest must keep the freshest record", prev)
	}
}

func TestInstall_SetOnce(t *testing.T) {
	defer Reset()

	var out lockedBuf
	c1 := newTerminalController(t, level.Info, false, &out)
	defer c1.Shutdown(context.Background())
	c2 := newTerminalController(t, level.Info, false, &out)
	defer c2.Shutdown(context.Background())

	if err := Install(c1); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	if err := Install(c2); err != ErrAlreadyInstalled {
		t.Fatalf("second Install = %v, want ErrAlreadyInstalled", err)
	}

	got, ok := Installed()
	if !ok || got != abroadcast.Controller(c1) {
		t.Fatalf("Installed() did not return the first controller")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	var out lockedBuf
	c := newTerminalController(t, level.Info, false, &out)

	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown 1: %v", err)
	}
	if err := c.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown 2: %v", err)
	}

	// Logging after shutdown is a silent no-op.
	c.Log(record.New(level.Error, "t", "ghost"))
	if strings.Contains(out.String(), "ghost") {
		t.Fatalf("record delivered after shutdown")
	}
}

func TestHealth_ReportsPerSink(t *testing.T) {
	var out lockedBuf
	c := newTerminalController(t, level.Info, true, &out)
	defer c.Shutdown(context.Background())

	c.Log(record.New(level.Info, "t", "fine"))

	report := c.Health(context.Background())
	res, ok := report.Find("terminal")
	if !ok {
		t.Fatalf("no health result for terminal sink")
	}
	if !res.OK() {
		t.Fatalf("terminal status = %v, want healthy", res.Status)
	}
}

func TestBuilder_Validation(t *testing.T) {
	b := NewBuilder()
	ctx := context.Background()

	if _, err := b.Build(ctx, abroadcast.Specification{}); err == nil {
		t.Fatalf("empty spec accepted")
	}

	_, err := b.Build(ctx, abroadcast.Specification{
		Sinks: []asink.Specification{
			{Kind: "terminal", Format: asink.Format{Encoder: "xml"}},
		},
	})
	if err == nil {
		t.Fatalf("unknown encoder accepted")
	}

	_, err = b.Build(ctx, abroadcast.Specification{
		Sinks: []asink.Specification{
			{Name: "a", Kind: "terminal"},
			{Name: "a", Kind: "terminal"},
		},
	})
	if err == nil {
		t.Fatalf("duplicate sink names accepted")
	}
}

func TestBuilder_EnvOverridesLevel(t *testing.T) {
	t.Setenv(level.EnvVar, "error")

	c, err := NewBuilder().Build(context.Background(), abroadcast.Specification{
		Level:        level.Info,
		LevelFromEnv: true,
		Sinks:        []asink.Specification{{Kind: "terminal"}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer c.Shutdown(context.Background())

	if c.Enabled(level.Warn) {
		t.Fatalf("Warn enabled; DCAST_LOG=error should have won")
	}
	if !c.Enabled(level.Error) {
		t.Fatalf("Error not enabled under env override")
	}
}

func TestBuilder_SyncModeForcesBatchParameters(t *testing.T) {
	spec := abroadcast.Specification{
		Sync: true,
		Sinks: []asink.Specification{{
			Kind:  "terminal",
			Batch: policy.Batch{MaxBytes: 1 << 20, Interval: time.Hour},
		}},
	}
	norm := spec.Normalize()
	got := norm.Sinks[0].Batch
	want := policy.Synchronous()
	if got != want {
		t.Fatalf("sync-mode batch = %+v, want %+v", got, want)
	}
}

func encoderOptions() encoder.Options { return encoder.Options{} }
