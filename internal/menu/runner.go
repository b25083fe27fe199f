package menu

import (
	"context"
	"errors"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// Runner launches a program and waits for it to finish.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs programs attached to the terminal of this process.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return errors.New("empty command")
	}

	log.Infof("Running %v", argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Infof("%s exited with %d", argv[0], exitErr.ExitCode())
		return nil
	}
	return err
}
