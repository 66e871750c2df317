package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary vidcrop relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Commands may be absolute paths or bare names resolved through PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// RequirementFor turns a lookup result into a requirement for CheckBinaries.
func RequirementFor(name, description string, loc Location, optional bool) Requirement {
	desc := description
	if loc.Source != "" {
		desc = fmt.Sprintf("%s (via %s)", description, loc.Source)
	}
	return Requirement{Name: name, Command: loc.Path, Description: desc, Optional: optional}
}
