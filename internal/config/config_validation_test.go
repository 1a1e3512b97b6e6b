package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{
		Adapter: ClientAdapter{ServerURL: "https://vault.example.com", RequestTimeout: 15 * time.Second},
		Storage: ClientStorage{CachePath: "/tmp/notes.db"},
	}
	assert.NoError(t, valid.validate())

	noURL := valid
	noURL.Adapter.ServerURL = ""
	assert.ErrorIs(t, noURL.validate(), ErrInvalidClientConfigs)

	noTimeout := valid
	noTimeout.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidClientConfigs)

	noCache := valid
	noCache.Storage.CachePath = ""
	assert.ErrorIs(t, noCache.validate(), ErrInvalidStorageConfigs)
}
