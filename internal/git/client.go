package git

import (
	"github.com/go-git/go-git/v5"
)

// RealClient implements Client using go-git
type RealClient struct{}

// NewClient creates a new RealClient
func NewClient() *RealClient {
	return &RealClient{}
}

// PlainInit calls git.PlainInit
func (c *RealClient) PlainInit(path string, isBare bool) (*git.Repository, error) {
	return git.PlainInit(path, isBare)
}

// IsRepository reports whether path is inside an existing work tree
func (c *RealClient) IsRepository(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}
