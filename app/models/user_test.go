package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserStartsTrial(t *testing.T) {
	before := time.Now()
	user, err := CreateUser("Maria Souza", "maria@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, SubscriptionStatusTrial, user.SubscriptionStatus)
	require.NotNil(t, user.SubscriptionExpiresAt)

	want := before.Add(TrialDuration)
	assert.WithinDuration(t, want, *user.SubscriptionExpiresAt, 5*time.Second)

	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestCreateUserValidates(t *testing.T) {
	_, err := CreateUser("Jo", "not-an-email", "x")
	assert.Error(t, err)
}
