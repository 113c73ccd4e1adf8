package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/trampoline/internal/api"
	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/factory"
	"github.com/mcoot/trampoline/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath  string
	serverURL   string
	projectRoot string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "trampoline-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/trampoline")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath:  binaryPath,
		serverURL:   serverURL,
		projectRoot: projectRoot,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "TRAMPOLINE_DICTIONARY="+filepath.Join(r.projectRoot, "data/words.txt"))
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// runJSON runs a command that must succeed and decodes its JSON output
func (r *cliRunner) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
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

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	projectRoot := findProjectRoot(t)
	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{
		DictionaryPath: filepath.Join(projectRoot, "data/words.txt"),
		Logger:         logger,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Dictionary:     app.DictionaryService,
		Bots:           app.BotService,
		HubManager:     app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
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

	t.Fatal("server did not become ready in time")
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var resp response.Health
	cli.runJSON(t, &resp, "health")
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Dictionary.Loaded)

	output, err := cli.run("health", "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, output, "Status: ok")
}

func TestCLI_GameCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var g response.Game
	cli.runJSON(t, &g, "game", "create", "Alice", "Bob")
	assert.Equal(t, "multiplayer", g.Mode)
	require.Len(t, g.Players, 2)
	require.Len(t, g.Hands["0"], 9)
	gameID := g.ID

	var list response.GameList
	cli.runJSON(t, &list, "game", "list")
	assert.Contains(t, list.Games, gameID)

	// Alice places her first tile, flips it, lifts it and places it again
	tile := strconv.Itoa(g.Hands["0"][0].ID)
	cli.runJSON(t, &g, "game", "place", gameID, "0", tile, "0", "0")
	require.NotNil(t, g.Board.Cells[0][0])
	assert.Len(t, g.Hands["0"], 8)

	g = response.Game{}
	cli.runJSON(t, &g, "game", "flip", gameID, "0", tile)
	assert.Equal(t, 1, g.Board.Cells[0][0].Side)

	g = response.Game{}
	cli.runJSON(t, &g, "game", "remove", gameID, "0", "0", "0")
	assert.Nil(t, g.Board.Cells[0][0])
	assert.Len(t, g.Hands["0"], 9)

	g = response.Game{}
	cli.runJSON(t, &g, "game", "place", gameID, "0", tile, "0", "0")

	// Bob is not on turn yet
	output, err := cli.run("game", "end-turn", gameID, "1")
	assert.Error(t, err)
	assert.Contains(t, output, "NOT_YOUR_TURN")

	g = response.Game{}
	cli.runJSON(t, &g, "game", "end-turn", gameID, "0")
	require.NotNil(t, g.CurrentPlayer)
	assert.Equal(t, 1, *g.CurrentPlayer)
	assert.Len(t, g.Hands["1"], 9)

	g = response.Game{}
	cli.runJSON(t, &g, "game", "force-turn", gameID, "0")
	assert.Equal(t, 0, *g.CurrentPlayer)

	var scores response.Scores
	cli.runJSON(t, &scores, "game", "scores", gameID)
	assert.Equal(t, gameID, scores.GameID)
	// the lone tile only counts when its letter is itself a word
	assert.Equal(t, len(scores.Players[0].Words), scores.Players[0].Positions.All)

	var msg messageResponse
	cli.runJSON(t, &msg, "game", "delete", gameID)
	assert.Equal(t, "Game deleted", msg.Message)

	output, err = cli.run("game", "get", gameID)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_SoloGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var g response.Game
	cli.runJSON(t, &g, "game", "create", "--mode", "solo")
	assert.Nil(t, g.CurrentPlayer)
	assert.Len(t, g.Hands["0"], 117)

	output, err := cli.run("game", "end-turn", g.ID, "0")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_MODE")
}

func TestCLI_AutoPlay(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var g response.Game
	cli.runJSON(t, &g, "game", "create", "Alice", "Bob")

	var res response.AutoPlay
	cli.runJSON(t, &res, "game", "autoplay", g.ID, "0", "--strategy", "random", "--moves", "2")
	require.Len(t, res.Actions, 3)
	assert.Equal(t, "end_turn", res.Actions[2].Type)
	require.NotNil(t, res.Game.CurrentPlayer)
	assert.Equal(t, 1, *res.Game.CurrentPlayer)

	output, err := cli.run("game", "autoplay", g.ID, "1", "--strategy", "clever")
	assert.Error(t, err)
	assert.Contains(t, output, "UNKNOWN_STRATEGY")
}

func TestCLI_Summaries(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var list response.SummaryList
	cli.runJSON(t, &list, "summaries", "list", "--limit", "5")
	assert.Empty(t, list.Summaries)

	output, err := cli.run("summaries", "get", "missing")
	assert.Error(t, err)
	assert.Contains(t, output, "SUMMARY_NOT_FOUND")
}

func TestCLI_Dictionary(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	var status response.DictionaryStatus
	cli.runJSON(t, &status, "dict", "status")
	assert.True(t, status.Loaded)

	var check response.WordCheck
	cli.runJSON(t, &check, "dict", "check", "Château")
	assert.Equal(t, "CHATEAU", check.Normalized)
	assert.True(t, check.Valid)

	check = response.WordCheck{}
	cli.runJSON(t, &check, "dict", "check", "--local", "croissant")
	assert.True(t, check.Valid)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("game", "create", "OnlyOne")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_PLAYER_COUNT")

	output, err = cli.run("game", "place", "missing", "0", "x", "0", "0")
	assert.Error(t, err)
	assert.Contains(t, output, "invalid tile")

	output, err = cli.run("game", "get", "missing")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
