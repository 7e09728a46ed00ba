package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("Flash Flood Warning", "flood"))
	assert.True(t, ContainsAnyFold("SEVERE", "extreme", "severe"))
	assert.False(t, ContainsAnyFold("Red Flag Warning", "flood", "quake"))
	assert.False(t, ContainsAnyFold("anything", ""))
	assert.False(t, ContainsAnyFold("anything"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty("", " "))
}
