package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                         { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error       { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error          { return s.record("login") }
func (s *stubExec) List(ctx context.Context) error           { return s.record("list") }
func (s *stubExec) Add(ctx context.Context) error            { return s.record("add") }
func (s *stubExec) Show(ctx context.Context) error           { return s.record("show") }
func (s *stubExec) Update(ctx context.Context) error         { return s.record("update") }
func (s *stubExec) Delete(ctx context.Context) error         { return s.record("delete") }
func (s *stubExec) Search(ctx context.Context) error         { return s.record("search") }
func (s *stubExec) Stats(ctx context.Context) error          { return s.record("stats") }
func (s *stubExec) ChangePassword(ctx context.Context) error { return s.record("passwd") }
func (s *stubExec) DeleteAccount(ctx context.Context) error  { return s.record("rmaccount") }
func (s *stubExec) Logout(ctx context.Context) error         { return s.record("logout") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	lines := &[]string{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		*lines = append(*lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return lines
}

func runWith(t *testing.T, stub *stubExec, input string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), stub, func() string { return "test" }, scanner)
}

func TestREPLDispatch(t *testing.T) {
	captureOutput(t)
	stub := &stubExec{loggedIn: true}

	runWith(t, stub, "list\nadd\nshow\nupdate\ndelete\nsearch\nstats\npasswd\nrmaccount\nlogout\nexit\n")
	assert.Equal(t, []string{"list", "add", "show", "update", "delete", "search", "stats", "passwd", "rmaccount", "logout"}, stub.calls)
}

func TestREPLShortListAlias(t *testing.T) {
	captureOutput(t)
	stub := &stubExec{}

	runWith(t, stub, "l\nquit\n")
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestREPLUnknownCommand(t *testing.T) {
	lines := captureOutput(t)
	stub := &stubExec{}

	runWith(t, stub, "frobnicate\nexit\n")
	assert.Empty(t, stub.calls)

	joined := strings.Join(*lines, "")
	assert.Contains(t, joined, "Unknown command: frobnicate")
}

func TestREPLBlankLinesIgnored(t *testing.T) {
	captureOutput(t)
	stub := &stubExec{}

	runWith(t, stub, "\n   \nlogin\nexit\n")
	assert.Equal(t, []string{"login"}, stub.calls)
}

func TestREPLHelpDependsOnLoginState(t *testing.T) {
	lines := captureOutput(t)
	stub := &stubExec{loggedIn: false}
	runWith(t, stub, "help\nexit\n")
	assert.Contains(t, strings.Join(*lines, ""), "register, login, exit")

	lines = captureOutput(t)
	stub = &stubExec{loggedIn: true}
	runWith(t, stub, "help\nexit\n")
	assert.Contains(t, strings.Join(*lines, ""), "stats, passwd, rmaccount")
}

func TestREPLExitsOnEOF(t *testing.T) {
	captureOutput(t)
	stub := &stubExec{}

	// no exit command; scanner EOF ends the loop
	runWith(t, stub, "login\n")
	assert.Equal(t, []string{"login"}, stub.calls)
}
