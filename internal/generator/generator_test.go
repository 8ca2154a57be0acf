package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicForSeed(t *testing.T) {
	a := New(7)
	b := New(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.User(), b.User())
	}

	assert.Equal(t, a.Post(), b.Post())
}

func TestUniqueEmails(t *testing.T) {
	gen := New(1)
	users := gen.Users(500)
	require.Len(t, users, 500)

	seen := make(map[string]bool, len(users))

	for _, u := range users {
		assert.False(t, seen[u.Email], "duplicate email %s", u.Email)
		seen[u.Email] = true

		assert.NotEmpty(t, u.Name)
		assert.GreaterOrEqual(t, u.Age, 18)
		assert.LessOrEqual(t, u.Age, 80)
	}
}
