package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobgate/blobgate/internal/conf"
)

func minioConf(name string, active bool) conf.ProviderConf {
	return conf.ProviderConf{
		Name:      name,
		Type:      "minio",
		Endpoint:  "127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "blobgate",
		Active:    active,
	}
}

func TestBuildRegistry(t *testing.T) {
	registry, err := BuildRegistry([]conf.ProviderConf{
		minioConf("primary", false),
		minioConf("secondary", true),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []string{"primary", "secondary"}, registry.Names())
	assert.Equal(t, "secondary", registry.ActiveName())
}

func TestBuildRegistry_FirstActiveWins(t *testing.T) {
	registry, err := BuildRegistry([]conf.ProviderConf{
		minioConf("a", true),
		minioConf("b", true),
	})
	require.NoError(t, err)

	assert.Equal(t, "a", registry.ActiveName())
}

func TestBuildRegistry_NoActive(t *testing.T) {
	registry, err := BuildRegistry([]conf.ProviderConf{
		minioConf("only", false),
	})
	require.NoError(t, err)

	assert.Equal(t, "", registry.ActiveName())
	_, err = registry.Active()
	assert.Error(t, err)
}

func TestBuildRegistry_UnsupportedType(t *testing.T) {
	_, err := BuildRegistry([]conf.ProviderConf{
		{Name: "bad", Type: "ftp"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `provider "bad"`)
}

func TestBuildRegistry_Empty(t *testing.T) {
	registry, err := BuildRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, registry.Len())
}
