//go:build mage

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var (
	CmdDir   = "cmd/server"
	BuildDir = "bin"
	Binary   = "toastd"
)

// tools maps each CLI used by the tasks to its install path.
var tools = map[string]string{
	"goimports":     "golang.org/x/tools/cmd/goimports@latest",
	"staticcheck":   "honnef.co/go/tools/cmd/staticcheck@latest",
	"golangci-lint": "github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
	"govulncheck":   "golang.org/x/vuln/cmd/govulncheck@latest",
}

func command(env []string, name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	return cmd
}

func sh(name string, args ...string) error { return command(nil, name, args...).Run() }

func out(name string, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout, cmd.Stderr = &buf, &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

func requireTools(names ...string) error {
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%s not found; run 'mage deps'", name)
		}
	}
	return nil
}

func runAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// goTest runs the test suite with the race detector unless NO_RACE=1.
func goTest(extra ...string) error {
	args := append([]string{"test"}, extra...)
	if os.Getenv("NO_RACE") == "1" {
		return sh("go", append(args, "./...")...)
	}
	return command([]string{"CGO_ENABLED=1"}, "go", append(append(args, "-race"), "./...")...).Run()
}

// ldflags stamps version information into the binary.
func ldflags() string {
	version, err := out("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	commit, err := out("git", "rev-parse", "--short", "HEAD")
	if err != nil || commit == "" {
		commit = "none"
	}
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-s -w -X main.version=%s -X main.commit=%s -X main.buildDate=%s", version, commit, date)
}

// Deps installs the CLI tooling used by lint, fmt and vuln.
func Deps() error {
	if err := sh("go", "mod", "download"); err != nil {
		return err
	}
	for _, pkg := range tools {
		if err := sh("go", "install", pkg); err != nil {
			return err
		}
	}
	return nil
}

// Build compiles toastd into ./bin.
func Build() error {
	name := Binary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	if err := os.MkdirAll(BuildDir, 0o755); err != nil {
		return err
	}
	return sh("go", "build", "-trimpath", "-buildvcs=false",
		"-ldflags", ldflags(),
		"-o", filepath.Join(BuildDir, name),
		"./"+CmdDir)
}

// Run serves the web UI from source. HTTP_ADDR and the other env settings apply.
func Run() error {
	return sh("go", "run", "./"+CmdDir, "serve")
}

// Demo plays the terminal lifecycle demo. DEMO_DURATION overrides the toast lifetime.
func Demo() error {
	args := []string{"run", "./" + CmdDir, "demo"}
	if d := os.Getenv("DEMO_DURATION"); d != "" {
		args = append(args, "--duration", d)
	}
	return sh("go", args...)
}

// Test runs the unit tests; set NO_RACE=1 to skip the race detector.
func Test() error {
	return goTest()
}

// Cover writes coverage.out and coverage.html.
func Cover() error {
	if err := goTest("-coverprofile=coverage.out"); err != nil {
		return err
	}
	fmt.Println("Coverage HTML -> coverage.html")
	return sh("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Vuln checks dependencies for known vulnerabilities.
func Vuln() error {
	if err := requireTools("govulncheck"); err != nil {
		return err
	}
	return sh("govulncheck", "./...")
}

// Lint runs vet, staticcheck and golangci-lint.
func Lint() error {
	if err := requireTools("staticcheck", "golangci-lint"); err != nil {
		return err
	}
	return runAll(
		func() error { return sh("go", "vet", "./...") },
		func() error { return sh("staticcheck", "./...") },
		func() error { return sh("golangci-lint", "run") },
	)
}

// Fmt rewrites sources with gofmt and goimports.
func Fmt() error {
	if err := sh("gofmt", "-w", "."); err != nil {
		return err
	}
	return sh("goimports", "-w", ".")
}

// FmtCheck fails when any file needs gofmt or goimports.
func FmtCheck() error {
	var msgs []string
	for _, tool := range []string{"gofmt", "goimports"} {
		if files, _ := out(tool, "-l", "."); files != "" {
			msgs = append(msgs, "Needs "+tool+":\n"+files)
		}
	}
	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "\n\n"))
	}
	return nil
}

// TidyCheck fails when go mod tidy would change go.mod or go.sum.
func TidyCheck() error {
	before, _ := out("git", "status", "--porcelain", "--", "go.mod", "go.sum")
	if err := sh("go", "mod", "tidy"); err != nil {
		return err
	}
	if after, _ := out("git", "status", "--porcelain", "--", "go.mod", "go.sum"); before != after {
		diff, _ := out("git", "--no-pager", "diff", "--", "go.mod", "go.sum")
		return fmt.Errorf("go.mod/sum changed; run 'go mod tidy' and commit.\n%s", diff)
	}
	return nil
}

// Clean removes build output, coverage files and the local history database.
func Clean() error {
	_ = os.RemoveAll(BuildDir)
	for _, f := range []string{"coverage.out", "coverage.html", "toastd.db", "toastd.db-wal", "toastd.db-shm"} {
		_ = os.Remove(f)
	}
	return nil
}

// Verify runs every check CI runs.
func Verify() error {
	if err := runAll(FmtCheck, TidyCheck, Lint, Vuln, Build, Test); err != nil {
		return err
	}
	fmt.Println("Build + checks passed")
	return nil
}
