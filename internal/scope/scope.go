// Package scope maps deployment targets onto the concrete remote scopes
// used in every call to the variable store. The preview target can be
// partitioned by the current git branch, so the resolver owns the single
// place where branch names enter the system.
package scope

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Target is one of the three deployment environments the remote platform
// recognizes. The set is fixed; it is not extensible at runtime.
type Target string

const (
	Development Target = "development"
	Preview     Target = "preview"
	Production  Target = "production"
)

// All returns the targets in the fixed order every operation iterates them.
func All() []Target {
	return []Target{Development, Preview, Production}
}

// Scope is the resolved remote identifier for a target: the target name,
// optionally refined by a git branch when branch-scoped preview is enabled.
type Scope struct {
	Target Target
	Branch string
}

// Args returns the scope as trailing CLI arguments for the remote client.
func (s Scope) Args() []string {
	if s.Branch != "" {
		return []string{string(s.Target), s.Branch}
	}
	return []string{string(s.Target)}
}

func (s Scope) String() string {
	if s.Branch != "" {
		return fmt.Sprintf("%s/%s", s.Target, s.Branch)
	}
	return string(s.Target)
}

// BranchResolver reports the current branch of the working copy. It is an
// interface so tests can substitute a fixed branch without a git repository.
type BranchResolver interface {
	CurrentBranch() (string, error)
}

// Resolve maps a target to its remote scope. Only the preview target is
// ever branch-scoped; resolution failure is the caller's problem and must
// abort the run rather than silently fall back to the unscoped preview.
func Resolve(target Target, branchScoped bool, branches BranchResolver) (Scope, error) {
	if target != Preview || !branchScoped {
		return Scope{Target: target}, nil
	}

	branch, err := branches.CurrentBranch()
	if err != nil {
		return Scope{}, fmt.Errorf("failed to resolve branch for preview scope: %w", err)
	}
	return Scope{Target: Preview, Branch: branch}, nil
}

// GitBranches resolves the current branch from the git repository enclosing
// dir, walking up parent directories the way the git CLI does.
type GitBranches struct {
	Dir string
}

func (g GitBranches) CurrentBranch() (string, error) {
	dir := g.Dir
	if dir == "" {
		dir = "."
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached; branch-scoped preview needs a checked-out branch")
	}
	return head.Name().Short(), nil
}
