package main

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/af-corp/model-catalog/internal/auth"
)

func TestKeygenCommand(t *testing.T) {
	out, err := run(t, "keygen", "--name", "ops", "--env", "dev", "--expires", "30d")
	require.NoError(t, err)
	require.Contains(t, out, "Name:       ops")
	require.Contains(t, out, "(not stored)")

	key := regexp.MustCompile(`catalog-dev-[a-z2-7]{26}`).FindString(out)
	require.NotEmpty(t, key, "raw key should be printed")
	require.Contains(t, out, "Key Hash:   "+auth.HashKey(key))
	require.Contains(t, out, "Key Prefix: "+auth.KeyPrefix(key))
}

func TestKeygenCommand_Validation(t *testing.T) {
	_, err := run(t, "keygen")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--name")

	_, err = run(t, "keygen", "--name", "ops", "--expires", "soon")
	require.Error(t, err)
}
