package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/iqbal-mih/Bangla-FAQ-Chatbot-Frontend/internal/audio"
)

// Player renders a decoded clip. Play blocks until the clip finishes or ctx
// is cancelled.
type Player interface {
	Play(ctx context.Context, clip *audio.Clip) error
}

// CommandPlayer pipes the clip into an external program's stdin.
type CommandPlayer struct {
	Command []string
}

// NewCommandPlayer returns a player running command, e.g.
// "ffplay -nodisp -autoexit -loglevel quiet -i -".
func NewCommandPlayer(command []string) *CommandPlayer {
	return &CommandPlayer{Command: command}
}

func (p *CommandPlayer) Play(ctx context.Context, clip *audio.Clip) error {
	if len(p.Command) == 0 {
		return errors.New("no player command configured")
	}
	if clip == nil || clip.Released() {
		return errors.New("clip is empty or released")
	}

	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Stdin = bytes.NewReader(clip.Bytes())

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run player %s: %w", p.Command[0], err)
	}
	return nil
}
