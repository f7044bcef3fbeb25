package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, Host)
	assert.NotEmpty(t, Port)
}

func TestAddr(t *testing.T) {
	assert.Equal(t, Host+":"+Port, Addr())
	assert.Contains(t, Addr(), ":")
}
