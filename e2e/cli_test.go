package e2e_test

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/connectn/internal/api/response"
)

// cliRunner manages CLI binary execution against a shared redis
type cliRunner struct {
	binaryPath string
	env        []string
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "connectn-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/connectn")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	mr := miniredis.RunT(t)

	return &cliRunner{
		binaryPath: binaryPath,
		env: append(os.Environ(),
			"CONNECTN_STORAGE=redis",
			"CONNECTN_REDIS_URL=redis://"+mr.Addr(),
			"CONNECTN_LOG_LEVEL=error",
		),
	}
}

func (r *cliRunner) command(stdin string, args ...string) *exec.Cmd {
	cmd := exec.Command(r.binaryPath, args...)
	cmd.Env = r.env
	cmd.Stdin = strings.NewReader(stdin)
	return cmd
}

func (r *cliRunner) run(stdin string, args ...string) (string, error) {
	output, err := r.command(stdin, args...).CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startServe runs "connectn serve" as a child process on a free port
func startServe(t *testing.T, r *cliRunner) string {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cmd := r.command("", "serve", "--port", fmt.Sprint(port))
	require.NoError(t, cmd.Start())

	t.Cleanup(func() {
		_ = cmd.Process.Signal(syscall.SIGINT)
		done := make(chan error, 1)
		go func() { done <- cmd.Wait() }()
		select {
		case err := <-done:
			assert.NoError(t, err, "serve should exit cleanly on SIGINT")
		case <-time.After(5 * time.Second):
			_ = cmd.Process.Kill()
			t.Error("serve did not stop after SIGINT")
		}
	})

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatalf("server at %s did not become ready", url)
}

func TestCLI_PlayAndHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	r := newCLIRunner(t)

	// Player 1 wins vertically in the first column
	output, err := r.run("1\n2\n1\n2\n1\n2\n1\n", "play")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Player 1 [GREEN] wins!")

	// Second match ends in a quit
	output, err = r.run("3\nx\n", "play")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Game is ended")

	output, err = r.run("", "history", "-o", "json")
	require.NoError(t, err, output)

	var list response.MatchList
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "quit", list.Matches[0].Outcome)
	assert.Equal(t, "won", list.Matches[1].Outcome)

	output, err = r.run("", "history", "show", list.Matches[1].ID)
	require.NoError(t, err, output)
	assert.Contains(t, output, "player 1 won (vertical)")
}

func TestCLI_ServeHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	r := newCLIRunner(t)

	output, err := r.run("1\n1\n2\n2\n3\n3\n4\n", "play")
	require.NoError(t, err, output)

	serverURL := startServe(t, r)

	output, err = r.run("", "health", "--server", serverURL)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Status: ok")

	output, err = r.run("", "history", "stats", "--server", serverURL, "-o", "json")
	require.NoError(t, err, output)

	var stats response.Stats
	require.NoError(t, json.Unmarshal([]byte(output), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, map[string]int{"horizontal": 1}, stats.WinsByLane)
}

func TestCLI_ErrorHandling(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	r := newCLIRunner(t)

	// Running out of input mid match is an error
	output, err := r.run("1\n", "play")
	assert.Error(t, err)
	assert.Contains(t, output, "input failure")

	// Invalid rules are rejected before the board is drawn
	output, err = r.run("", "play", "--line", "0")
	assert.Error(t, err)
	assert.NotContains(t, output, "choose column")

	// Unknown match
	output, err = r.run("", "history", "show", "missing")
	assert.Error(t, err)
	assert.Contains(t, output, "match not found")
}
