package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRewriteCommand(t *testing.T) {
	cmd := NewRewriteCommand()

	assert.Equal(t, "rewrite [sql]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"geostore", "json"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "g", cmd.Flags().Lookup("geostore").Shorthand)
}
