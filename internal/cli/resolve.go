package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveSiteID resolves a site reference which can be a full UUID, a
// site name (case-insensitive) or a UUID prefix.
func resolveSiteID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("site ID is required")
	}

	sites, err := app.Sites.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range sites {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var named []string
	for _, s := range sites {
		if strings.EqualFold(s.Name, input) {
			named = append(named, s.ID)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}
	if len(named) > 1 {
		return "", fmt.Errorf("site name %q is ambiguous (%d matches), use the ID", input, len(named))
	}

	var matches []string
	for _, s := range sites {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("site not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("site ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
