// Package history feeds an auxiliary version-control trail of the store.
// The sink is strictly best-effort: a failing recorder never fails the
// operation that triggered it.
package history

import (
	"os/exec"

	"go.uber.org/zap"
)

// Sink records store events on a side channel.
type Sink interface {
	Record(event string) error
}

// Nop is a Sink that records nothing.
type Nop struct{}

// Record implements Sink.
func (Nop) Record(string) error { return nil }

// Git is a Sink committing the store root into a local git repository.
type Git struct {
	Dir string
	L   *zap.Logger
}

// NewGit returns a git-backed sink rooted at dir.
func NewGit(dir string, l *zap.Logger) *Git {
	if l == nil {
		l = zap.NewNop()
	}
	return &Git{Dir: dir, L: l}
}

// Record stages the whole store and commits it with the event as message.
// The repository is initialized on first use.
func (g *Git) Record(event string) error {
	if err := g.git("rev-parse", "--git-dir"); err != nil {
		if err = g.git("init"); err != nil {
			return err
		}
	}
	if err := g.git("add", "-A"); err != nil {
		return err
	}
	// commit fails when nothing changed, which is fine for a side channel
	return g.git("commit", "-m", event)
}

func (g *Git) git(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		g.L.Debug("git history sink",
			zap.Strings("args", args),
			zap.ByteString("output", out),
			zap.Error(err))
	}
	return err
}
