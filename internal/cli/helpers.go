package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/agxtool/agx/internal/project"
)

// workspaceRoot returns the workspace root resolved by the persistent pre-run.
func workspaceRoot() (string, error) {
	if resolvedRootPath == "" {
		return "", fmt.Errorf("workspace root is not resolved")
	}
	return resolvedRootPath, nil
}

// workspaceRFCDir resolves the RFC documents directory for the workspace.
func workspaceRFCDir() (string, error) {
	root, err := workspaceRoot()
	if err != nil {
		return "", err
	}
	return project.RFCDirAt(root)
}

// defaultAuthor falls back to the git identity when no --author flag was
// given.
func defaultAuthor() (string, error) {
	out, err := exec.Command("git", "config", "--get", "user.name").Output()
	if err != nil {
		return "", fmt.Errorf("--author is required and git user.name is not configured")
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return "", fmt.Errorf("--author is required and git user.name is empty")
	}
	return name, nil
}
