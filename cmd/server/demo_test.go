package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toastd/platform/clock"
)

func TestRunDemo_RemovesEveryToast(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, runDemo(ctx, cmd, clock.Real(), 40*time.Millisecond))

	text := out.String()
	assert.Contains(t, text, "success toast")
	assert.Contains(t, text, "success toast paused")
	assert.Contains(t, text, "error toast dismissed")
	assert.Equal(t, 5, strings.Count(text, "toast removed\n"))
	assert.True(t, strings.HasSuffix(text, "all toasts removed\n"))
}

func TestRunDemo_StopsOnCancel(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runDemo(ctx, cmd, clock.Real(), time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVersionCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() {
		versionCmd.SetOut(nil)
		versionFormat = "text"
	})

	versionFormat = "json"
	require.NoError(t, versionCmd.RunE(versionCmd, nil))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "demo", "version"} {
		assert.True(t, names[want], "missing %s", want)
	}
}
