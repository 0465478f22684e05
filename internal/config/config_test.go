package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younsl/awsmods/internal/eip"
	"github.com/younsl/awsmods/internal/layer"
	"github.com/younsl/awsmods/internal/models"
)

func TestLoadFile_EIPParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eip.yaml")
	data := `
device_id: i-1212f003
ip: 93.184.216.119
in_vpc: true
resource_tags:
  Name: web
tag_name: env
tag_value: prod
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	p := DefaultEIPParams()
	require.NoError(t, LoadFile(path, &p))
	require.NoError(t, p.Normalize())

	assert.Equal(t, "i-1212f003", p.DeviceID)
	assert.Equal(t, "93.184.216.119", p.PublicIP)
	assert.Empty(t, p.IP)
	assert.Equal(t, map[string]string{"Name": "web"}, p.Tags)
	assert.Nil(t, p.ResourceTags)
	assert.True(t, p.PurgeTags)
	assert.Equal(t, eip.StatePresent, p.State)
}

func TestLoadBytes_RejectsUnknownKeys(t *testing.T) {
	p := DefaultEIPParams()
	err := loadBytes([]byte("public_ip: 1.2.3.4\nregion_name: eu-west-1\n"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region_name")
}

func TestLoadBytes_Empty(t *testing.T) {
	p := DefaultEIPParams()
	require.NoError(t, loadBytes(nil, &p))
	assert.Equal(t, DefaultEIPParams(), p)
}

func TestLoadFile_Missing(t *testing.T) {
	p := DefaultEIPParams()
	err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read params file")
}

func TestOverlay(t *testing.T) {
	fromFile := EIPParams{PublicIP: "198.51.100.1", DeviceID: "i-1", PurgeTags: true}
	fromFlags := EIPParams{PublicIP: "198.51.100.2", DeviceID: "", PurgeTags: false}
	set := map[string]bool{"public_ip": true, "purge_tags": true}

	Overlay(&fromFile, &fromFlags, func(key string) bool { return set[key] })

	assert.Equal(t, "198.51.100.2", fromFile.PublicIP)
	assert.Equal(t, "i-1", fromFile.DeviceID)
	assert.False(t, fromFile.PurgeTags)
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "reuse-existing-ip-allowed", FlagName("reuse_existing_ip_allowed"))
	assert.Equal(t, "state", FlagName("state"))
}

func TestEIPParams_DesiredState(t *testing.T) {
	t.Run("interface in vpc", func(t *testing.T) {
		p := DefaultEIPParams()
		p.DeviceID = "eni-c8ad70f3"
		p.InVPC = true
		p.State = eip.StateAbsent

		desired, err := p.DesiredState(true)
		require.NoError(t, err)
		assert.Equal(t, eip.NetworkInterface{InterfaceID: "eni-c8ad70f3"}, desired.Device)
		assert.Equal(t, models.DomainVPC, desired.Domain)
		assert.True(t, desired.DryRun)
		assert.True(t, desired.PurgeTags)
	})

	t.Run("tag filter", func(t *testing.T) {
		p := DefaultEIPParams()
		p.TagName = "env"
		p.ReuseExistingIPAllowed = true

		desired, err := p.DesiredState(false)
		require.NoError(t, err)
		assert.Equal(t, &eip.TagFilter{Key: "env"}, desired.TagFilter)
		assert.Equal(t, models.DomainStandard, desired.Domain)
	})

	tests := []struct {
		name    string
		mutate  func(p *EIPParams)
		wantErr string
	}{
		{"interface outside vpc", func(p *EIPParams) { p.DeviceID = "eni-1" }, "in_vpc must be true"},
		{"tag value without name", func(p *EIPParams) { p.TagValue = "prod" }, "tag_name, tag_value"},
		{"private ip without device", func(p *EIPParams) { p.PrivateIPAddress = "10.0.0.1" }, "device_id"},
		{"conflicting alias", func(p *EIPParams) {
			p.PublicIP = "1.1.1.1"
			p.IP = "2.2.2.2"
		}, "public_ip|ip"},
		{"unresolved self", func(p *EIPParams) { p.DeviceID = SelfDevice }, "resolved"},
		{"bad state", func(p *EIPParams) { p.State = "gone" }, "state must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultEIPParams()
			tt.mutate(&p)

			_, err := p.DesiredState(false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLayerInfoParams_Query(t *testing.T) {
	q, err := LayerInfoParams{LayerName: "deps", CompatibleRuntime: "python3.12"}.Query()
	require.NoError(t, err)
	assert.Equal(t, models.LayerQuery{Name: "deps", CompatibleRuntime: "python3.12"}, q)
}

func TestLayerParams_Request(t *testing.T) {
	p := DefaultLayerParams()
	require.NoError(t, loadBytes([]byte(`
layer_name: deps
content:
  s3_bucket: layers
  s3_key: deps.zip
compatible_runtimes: [python3.11, python3.12]
`), &p))

	req, err := p.Request()
	require.NoError(t, err)
	assert.Equal(t, "deps", req.Name)
	assert.Equal(t, layer.StatePresent, req.State)
	assert.Equal(t, &layer.Content{S3Bucket: "layers", S3Key: "deps.zip"}, req.Content)
	assert.Equal(t, []string{"python3.11", "python3.12"}, req.CompatibleRuntimes)

	absent := DefaultLayerParams()
	require.NoError(t, loadBytes([]byte("state: absent\nname: deps\nversion: 4\n"), &absent))
	req, err = absent.Request()
	require.NoError(t, err)
	require.NotNil(t, req.Version)
	assert.Equal(t, int64(4), *req.Version)

	_, err = LayerParams{State: layer.StateAbsent, Name: "deps"}.Request()
	var invalid *layer.ValidationError
	require.ErrorAs(t, err, &invalid)
}
