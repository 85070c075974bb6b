package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tasktree/internal/cli"
)

func TestWatchRendersInitialScanAndStopsOnCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedFile(t, dir, "a.md", "Watched thing #task "+inDays(1))

	ctx, cancel := context.WithCancel(context.Background())

	var stdout, stderr bytes.Buffer

	done := make(chan int, 1)
	argv := []string{"tasktree", "-C", dir, "watch"}
	env := []string{"XDG_CONFIG_HOME=" + t.TempDir()}

	go func() {
		done <- cli.Run(ctx, strings.NewReader(""), &stdout, &stderr, argv, env)
	}()

	// Give the initial scan and render a moment, then stop the watcher.
	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case code := <-done:
		if code != 0 {
			t.Fatalf("exit = %d (stderr: %s)", code, stderr.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	if !strings.Contains(stdout.String(), "Watched thing") {
		t.Errorf("initial render missing item:\n%s", stdout.String())
	}
}
