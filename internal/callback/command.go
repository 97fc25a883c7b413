package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command returns a HostFunc that runs argv once per point. The parameters
// are written to the process's stdin as one JSON object and its stdout is
// decoded as a single JSON value, so a script printing "-1.5" scores -1.5
// and a script printing "\"oops\"" yields a non-numeric result.
func Command(argv []string) (HostFunc, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("objective command is empty")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, err
	}
	args := append([]string{}, argv[1:]...)
	return func(ctx context.Context, params map[string]any) (any, error) {
		in, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		cmd := exec.CommandContext(ctx, path, args...)
		cmd.Stdin = bytes.NewReader(in)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%s: %w: %s", argv[0], err, msg)
			}
			return nil, fmt.Errorf("%s: %w", argv[0], err)
		}
		dec := json.NewDecoder(&stdout)
		dec.UseNumber()
		var out any
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("%s: decode output: %w", argv[0], err)
		}
		return out, nil
	}, nil
}
