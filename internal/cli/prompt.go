package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrAborted signals the user cancelled a prompt.
var ErrAborted = errors.New("cli: aborted")

// ErrEntityRequired is returned when no entity argument is given and the
// entity cannot be prompted for.
var ErrEntityRequired = errors.New("cli: entity argument is required")

// Prompter asks the user to pick one entity.
type Prompter func(message string, entities []string) (string, error)

// stdinIsTerminal reports whether prompting is possible.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func surveyPrompt(message string, entities []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message: message,
		Options: entities,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", err
	}
	return out, nil
}

func resolveEntity(args []string, entities []string, prompt Prompter) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if prompt == nil || len(entities) == 0 || !stdinIsTerminal() {
		return "", ErrEntityRequired
	}
	entity, err := prompt("Entity:", entities)
	if err != nil {
		return "", fmt.Errorf("cli: choose entity: %w", err)
	}
	return entity, nil
}
