package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"poetry2uv/internal/ports"
)

// RequirementsFileAdapter reads pip requirements listings as produced
// by `poetry export` or `uv export`. Only pinned requirement lines are
// kept; comments, pip options and hash continuations are dropped.
type RequirementsFileAdapter struct{}

func NewRequirementsFileAdapter() RequirementsFileAdapter {
	return RequirementsFileAdapter{}
}

func (a RequirementsFileAdapter) ReadPinned(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("requirements file not found").
			WithCause(err)
	}
	var pins []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		fields := strings.Fields(trimmed)
		// A requirement line is the pin alone, or the pin followed by
		// an environment marker separated with " ; ".
		if len(fields) == 1 || fields[1] == ";" {
			pins = append(pins, fields[0])
		}
	}
	return pins, nil
}

var _ ports.RequirementsPort = RequirementsFileAdapter{}
