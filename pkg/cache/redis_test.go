package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "legal-intake:taxonomy:categories", Key("taxonomy", "categories"))
	assert.Equal(t, "legal-intake:", Key())
}
