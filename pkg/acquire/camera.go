package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"passgrid/pkg/imageref"
	"passgrid/pkg/task"
)

var ErrNoCamera = errors.New("no camera capture command configured")

// CommandCamera captures a photo by running an external program such as
// fswebcam or imagesnap. The token {output} in Command is replaced with the
// destination file; when absent the path is appended as the last argument.
// A command that exits cleanly without writing the file counts as cancelled.
type CommandCamera struct {
	Command string
	WorkDir string
}

func (c CommandCamera) Launch(ctx context.Context, _ Options) task.Result[[]Asset] {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return task.Failed[[]Asset](ErrNoCamera)
	}
	if err := os.MkdirAll(c.WorkDir, 0o755); err != nil {
		return task.Failed[[]Asset](fmt.Errorf("creating work dir: %w", err))
	}
	out := filepath.Join(c.WorkDir, "capture-"+uuid.NewString()+".jpg")

	args := make([]string, 0, len(fields))
	substituted := false
	for _, f := range fields[1:] {
		if strings.Contains(f, "{output}") {
			f = strings.ReplaceAll(f, "{output}", out)
			substituted = true
		}
		args = append(args, f)
	}
	if !substituted {
		args = append(args, out)
	}

	cmd := exec.CommandContext(ctx, fields[0], args...)
	if msg, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return task.Cancelled[[]Asset]()
		}
		return task.Failed[[]Asset](fmt.Errorf("camera command: %w: %s", err, strings.TrimSpace(string(msg))))
	}
	if _, err := os.Stat(out); errors.Is(err, os.ErrNotExist) {
		return task.Cancelled[[]Asset]()
	}
	return task.Succeeded([]Asset{{Ref: imageref.FromPath(out)}})
}
