package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/basegen/pkg/errors"
)

func TestRootCommandThreadsLoggerThroughContext(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	if err := root.PersistentPreRunE(cmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if loggerFromContext(cmd.Context()) != c.Logger {
		t.Error("command context does not carry the CLI logger")
	}
}

func TestRoomsRejectsGeometryFormats(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"rooms", "--format", "obj"})

	err := root.Execute()
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("rooms --format obj error = %v, want UNSUPPORTED", err)
	}
}
