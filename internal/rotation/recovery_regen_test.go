// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rotation

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRecoveryRegen_WithPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	cache := session.NewKeyCache()

	contentKey := []byte("content-key")
	passwordCred := cred(models.CredentialPassword, 0x01)
	oldRecovery := cred(models.CredentialRecovery, 0x02)
	set := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{passwordCred, oldRecovery}}

	newRecovery := cred(models.CredentialRecovery, 0x12)

	gomock.InOrder(
		vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(set, nil),
		keys.EXPECT().UnwrapCredential(passwordCred, "password").Return(contentKey, nil),
		keys.EXPECT().GeneratePhrase().Return("delta epsilon zeta", nil),
		keys.EXPECT().NewCredential(models.CredentialRecovery, "delta epsilon zeta", contentKey).Return(newRecovery, nil),
		vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error) {
				assert.Equal(t, int64(3), req.ExpectedVersion)
				assert.Empty(t, req.NewVerifier, "the password did not change, the verifier must not either")
				// Only the recovery credential is superseded.
				assert.Contains(t, req.Credentials, passwordCred)
				assert.Contains(t, req.Credentials, newRecovery)
				assert.NotContains(t, req.Credentials, oldRecovery)
				return models.CredentialSet{UserID: 7, Version: 4, Credentials: req.Credentials}, nil
			}),
	)

	flow := NewRecoveryRegen(vault, keys, cache, logger.Nop())
	res, err := flow.Run(context.Background(), 7, "password")
	require.NoError(t, err)

	assert.Equal(t, "delta epsilon zeta", res.RecoveryPhrase)
	assert.Equal(t, StateDone, flow.State())
	assert.True(t, cache.Has(7))
}

// An unlocked session can regenerate without re-entering the password: the
// content key comes from the cache and no credential is unwrapped.
func TestRecoveryRegen_WithCachedKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	cache := session.NewKeyCache()

	contentKey := []byte("content-key")
	cache.Put(7, contentKey)

	set := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{
		cred(models.CredentialPassword, 0x01),
		cred(models.CredentialRecovery, 0x02),
	}}

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(set, nil)
	keys.EXPECT().GeneratePhrase().Return("delta epsilon zeta", nil)
	keys.EXPECT().NewCredential(models.CredentialRecovery, "delta epsilon zeta", contentKey).Return(cred(models.CredentialRecovery, 0x12), nil)
	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).Return(models.CredentialSet{UserID: 7, Version: 4}, nil)

	flow := NewRecoveryRegen(vault, keys, cache, logger.Nop())
	res, err := flow.Run(context.Background(), 7, "")
	require.NoError(t, err)
	assert.Equal(t, "delta epsilon zeta", res.RecoveryPhrase)
}

func TestRecoveryRegen_LockedWithoutPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)

	set := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{cred(models.CredentialPassword, 0x01)}}
	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(set, nil)

	flow := NewRecoveryRegen(vault, keys, session.NewKeyCache(), logger.Nop())
	_, err := flow.Run(context.Background(), 7, "")

	assert.ErrorIs(t, err, session.ErrUnlockRequired)
	assert.Equal(t, StateIdle, flow.State())
}

func TestRecoveryRegen_ConflictRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mock.NewMockVaultServer(ctrl)
	keys := mock.NewMockKeyChainService(ctrl)
	cache := session.NewKeyCache()

	contentKey := []byte("content-key")
	passwordCred := cred(models.CredentialPassword, 0x01)
	stale := models.CredentialSet{UserID: 7, Version: 3, Credentials: []models.WrappingCredential{passwordCred}}
	fresh := models.CredentialSet{UserID: 7, Version: 5, Credentials: []models.WrappingCredential{passwordCred}}

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(stale, nil)
	keys.EXPECT().UnwrapCredential(passwordCred, "password").Return(contentKey, nil).Times(2)
	keys.EXPECT().GeneratePhrase().Return("delta epsilon zeta", nil).Times(2)
	keys.EXPECT().NewCredential(models.CredentialRecovery, "delta epsilon zeta", contentKey).Return(cred(models.CredentialRecovery, 0x12), nil).Times(2)

	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).Return(models.CredentialSet{}, adapter.ErrConflict)
	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).Return(fresh, nil)
	vault.EXPECT().ReplaceCredentialSet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error) {
			assert.Equal(t, int64(5), req.ExpectedVersion)
			return models.CredentialSet{UserID: 7, Version: 6, Credentials: req.Credentials}, nil
		})

	flow := NewRecoveryRegen(vault, keys, cache, logger.Nop())
	res, err := flow.Run(context.Background(), 7, "password")
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.CredentialSet.Version)
}
