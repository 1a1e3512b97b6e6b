// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rotation

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func cred(kind models.CredentialKind, marker byte) models.WrappingCredential {
	return models.WrappingCredential{
		Kind:    kind,
		Salt:    []byte{marker, marker},
		KDFCost: crypto.ProfilePasswordV1.Name,
	}
}

func kindsOf(creds []models.WrappingCredential) []models.CredentialKind {
	out := make([]models.CredentialKind, 0, len(creds))
	for _, c := range creds {
		out = append(out, c.Kind)
	}
	return out
}

func TestPasswordChange_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	cache := session.NewKeyCache()

	contentKey := []byte("content-key")
	oldPassword := cred(models.CredentialPassword, 0x01)
	oldRecovery := cred(models.CredentialRecovery, 0x02)
	pinCred := cred(models.CredentialPIN, 0x03)
	current := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{oldPassword, oldRecovery, pinCred}}

	newPassword := cred(models.CredentialPassword, 0x11)
	newRecovery := cred(models.CredentialRecovery, 0x12)

	gomock.InOrder(
		vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(current, nil),
		keys.EXPECT().UnwrapCredential(oldPassword, "old password").Return(contentKey, nil),
		keys.EXPECT().NewCredential(models.CredentialPassword, "new password", contentKey).Return(newPassword, nil),
		keys.EXPECT().GeneratePhrase().Return("alpha beta gamma", nil),
		keys.EXPECT().NewCredential(models.CredentialRecovery, "alpha beta gamma", contentKey).Return(newRecovery, nil),
		keys.EXPECT().LoginVerifier("alice", "new password").Return("new-verifier", nil),
		vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error) {
				assert.Equal(t, int64(7), req.UserID)
				assert.Equal(t, int64(3), req.ExpectedVersion)
				assert.Equal(t, "new-verifier", req.NewVerifier)
				// PIN survives, old password and recovery are superseded.
				assert.ElementsMatch(t,
					[]models.CredentialKind{models.CredentialPIN, models.CredentialPassword, models.CredentialRecovery},
					kindsOf(req.Credentials))
				assert.Contains(t, req.Credentials, pinCred)
				assert.Contains(t, req.Credentials, newPassword)
				assert.NotContains(t, req.Credentials, oldPassword)
				return models.CredentialSet{UserID: 7, Version: 4, Credentials: req.Credentials}, nil
			}),
	)

	flow := NewPasswordChange(vault, keys, cache, logger.Nop())
	res, err := flow.Run(context.Background(), 7, "alice", "old password", "new password")
	require.NoError(t, err)

	assert.Equal(t, "alpha beta gamma", res.RecoveryPhrase)
	assert.Equal(t, int64(4), res.CredentialSet.Version)
	assert.Equal(t, StateDone, flow.State())

	cached, err := cache.Get(7)
	require.NoError(t, err)
	assert.Equal(t, contentKey, cached)
}

func TestPasswordChange_WrongCurrentPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	cache := session.NewKeyCache()

	oldPassword := cred(models.CredentialPassword, 0x01)
	current := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{oldPassword}}

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(current, nil)
	keys.EXPECT().UnwrapCredential(oldPassword, "wrong").Return(nil, crypto.ErrAuthentication)

	flow := NewPasswordChange(vault, keys, cache, logger.Nop())
	_, err := flow.Run(context.Background(), 7, "alice", "wrong", "new password")

	assert.ErrorIs(t, err, crypto.ErrAuthentication)
	assert.Equal(t, StateIdle, flow.State(), "failure must reset the flow")
	assert.False(t, cache.Has(7))
}

func TestPasswordChange_NoPasswordCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)

	current := models.CredentialSet{UserID: 7, Version: 1, Credentials: []models.WrappingCredential{cred(models.CredentialPIN, 0x03)}}
	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(current, nil)

	flow := NewPasswordChange(vault, keys, session.NewKeyCache(), logger.Nop())
	_, err := flow.Run(context.Background(), 7, "alice", "password", "new password")

	assert.ErrorIs(t, err, ErrCredentialMissing)
	assert.Equal(t, StateIdle, flow.State())
}

// A concurrent rotation on another device bumps the version between fetch
// and submit. The flow re-fetches, re-proves the current password against
// the fresh salts and retries exactly once.
func TestPasswordChange_ConflictRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	cache := session.NewKeyCache()

	contentKey := []byte("content-key")
	stalePassword := cred(models.CredentialPassword, 0x01)
	stale := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{stalePassword}}
	freshPassword := cred(models.CredentialPassword, 0x02)
	fresh := models.CredentialSet{UserID: 7, Version: 5, Credentials: []models.WrappingCredential{freshPassword}}

	newPassword := cred(models.CredentialPassword, 0x11)
	newRecovery := cred(models.CredentialRecovery, 0x12)

	derive := func() {
		keys.EXPECT().NewCredential(models.CredentialPassword, "new password", contentKey).Return(newPassword, nil)
		keys.EXPECT().GeneratePhrase().Return("alpha beta gamma", nil)
		keys.EXPECT().NewCredential(models.CredentialRecovery, "alpha beta gamma", contentKey).Return(newRecovery, nil)
		keys.EXPECT().LoginVerifier("alice", "new password").Return("new-verifier", nil)
	}

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(stale, nil)
	keys.EXPECT().UnwrapCredential(stalePassword, "old password").Return(contentKey, nil)
	derive()
	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).Return(models.CredentialSet{}, adapter.ErrConflict)

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(fresh, nil)
	keys.EXPECT().UnwrapCredential(freshPassword, "old password").Return(contentKey, nil)
	derive()
	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error) {
			assert.Equal(t, int64(5), req.ExpectedVersion, "retry must carry the refreshed version")
			return models.CredentialSet{UserID: 7, Version: 6, Credentials: req.Credentials}, nil
		})

	flow := NewPasswordChange(vault, keys, cache, logger.Nop())
	res, err := flow.Run(context.Background(), 7, "alice", "old password", "new password")
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.CredentialSet.Version)
	assert.Equal(t, StateDone, flow.State())
}

func TestPasswordChange_SecondConflictFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)

	contentKey := []byte("content-key")
	passwordCred := cred(models.CredentialPassword, 0x01)
	set := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{passwordCred}}

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(set, nil).Times(2)
	keys.EXPECT().UnwrapCredential(passwordCred, "old password").Return(contentKey, nil).Times(2)
	keys.EXPECT().NewCredential(gomock.Any(), gomock.Any(), contentKey).Return(cred(models.CredentialPassword, 0x11), nil).Times(4)
	keys.EXPECT().GeneratePhrase().Return("alpha beta gamma", nil).Times(2)
	keys.EXPECT().LoginVerifier("alice", "new password").Return("new-verifier", nil).Times(2)
	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).Return(models.CredentialSet{}, adapter.ErrConflict).Times(2)

	flow := NewPasswordChange(vault, keys, session.NewKeyCache(), logger.Nop())
	_, err := flow.Run(context.Background(), 7, "alice", "old password", "new password")

	assert.ErrorIs(t, err, adapter.ErrConflict, "one retry only")
	assert.Equal(t, StateIdle, flow.State())
}

func TestPasswordChange_SingleUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)

	contentKey := []byte("content-key")
	passwordCred := cred(models.CredentialPassword, 0x01)
	set := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{passwordCred}}

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(set, nil)
	keys.EXPECT().UnwrapCredential(passwordCred, "old password").Return(contentKey, nil)
	keys.EXPECT().NewCredential(gomock.Any(), gomock.Any(), contentKey).Return(cred(models.CredentialPassword, 0x11), nil).Times(2)
	keys.EXPECT().GeneratePhrase().Return("alpha beta gamma", nil)
	keys.EXPECT().LoginVerifier("alice", "new password").Return("new-verifier", nil)
	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).Return(set, nil)

	flow := NewPasswordChange(vault, keys, session.NewKeyCache(), logger.Nop())
	_, err := flow.Run(context.Background(), 7, "alice", "old password", "new password")
	require.NoError(t, err)

	_, err = flow.Run(context.Background(), 7, "alice", "old password", "another password")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPasswordChange_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(models.CredentialSet{}, adapter.ErrUnauthorized)

	flow := NewPasswordChange(vault, keys, session.NewKeyCache(), logger.Nop())
	_, err := flow.Run(context.Background(), 7, "alice", "old password", "new password")

	assert.True(t, errors.Is(err, adapter.ErrUnauthorized))
	assert.Equal(t, StateIdle, flow.State())
}
