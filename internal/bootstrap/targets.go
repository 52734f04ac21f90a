package bootstrap

import (
	"strings"

	"github.com/jbemmel/labup/internal/platform/docker"
)

// Join builds the comma-separated probe target list from discovered
// containers. Empty names are dropped and there is no trailing
// separator.
func Join(containers []docker.Container) string {
	names := make([]string, 0, len(containers))
	for _, c := range containers {
		if c.Name == "" {
			continue
		}
		names = append(names, c.Name)
	}
	return strings.Join(names, ",")
}
