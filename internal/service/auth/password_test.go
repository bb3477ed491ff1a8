package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier_Compare(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(string(hash), "correct horse"))
	assert.ErrorIs(t, v.Compare(string(hash), "battery staple"), ErrPasswordMismatch)

	err = v.Compare("not-a-hash", "correct horse")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.NotErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptVerifier_CompareMissing(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { NewBcryptVerifier().CompareMissing("correct horse") })
	cost, err := bcrypt.Cost(missingUserHash())
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
