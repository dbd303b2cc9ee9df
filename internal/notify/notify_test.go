package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	c.Success("Product created", "")
	c.Error("Could not save banner", "The storefront rejected the request.")
	assert.Equal(t, "[ok] Product created\n[error] Could not save banner: The storefront rejected the request.\n", buf.String())
}

func TestConsole_Quiet(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)
	c.Success("Saved", "x")
	c.Error("Failed", "")
	assert.Equal(t, "[error] Failed\n", buf.String())
}
