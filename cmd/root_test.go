package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["serve"], "serve command registered")
	assert.True(t, names["validate"], "validate command registered")
}

func TestServeFlags(t *testing.T) {
	assert.NotNil(t, serveCmd.Flags().Lookup("port"))
	assert.NotNil(t, validateCmd.Flags().Lookup("zoom-level"))
}
