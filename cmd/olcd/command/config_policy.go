package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-olc/internal/policy"
)

type PolicyConfig struct {
	Path string `json:"path,omitempty"`
}

func (c *PolicyConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("policy: invalid path %q: %w", c.Path, err)
	}
	return nil
}

func (c *PolicyConfig) buildPolicy() (*policy.Policy, error) {
	return policy.Load(c.Path)
}
