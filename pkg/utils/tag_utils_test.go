package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFilter(t *testing.T) {
	tests := []struct {
		name       string
		key, value string
		wantName   string
		wantValues []string
	}{
		{"key only", "env", "", "tag-key", []string{"env"}},
		{"key only with prefix", "tag:env", "", "tag-key", []string{"env"}},
		{"key and value", "env", "prod", "tag:env", []string{"prod"}},
		{"prefixed key and value", "tag:env", "prod", "tag:env", []string{"prod"}},
		// the prefix is removed as a whole, not character by character
		{"key made of prefix letters", "tag:gat", "", "tag-key", []string{"gat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, values := TagFilter(tt.key, tt.value)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantValues, values)
		})
	}
}

func TestCompareTags(t *testing.T) {
	current := map[string]string{
		"Name":                     "web",
		"env":                      "dev",
		"owner":                    "ops",
		"aws:cloudformation:stack": "s1",
	}
	desired := map[string]string{
		"Name": "web",
		"env":  "prod",
		"team": "net",
	}

	toSet, toRemove := CompareTags(current, desired, true)
	assert.Equal(t, map[string]string{"env": "prod", "team": "net"}, toSet)
	assert.Equal(t, []string{"owner"}, toRemove)

	toSet, toRemove = CompareTags(current, desired, false)
	assert.Len(t, toSet, 2)
	assert.Empty(t, toRemove)

	toSet, toRemove = CompareTags(desired, desired, true)
	assert.Empty(t, toSet)
	assert.Empty(t, toRemove)
}

func TestConvertToEC2TagsIsSorted(t *testing.T) {
	tags := ConvertToEC2Tags(map[string]string{"b": "2", "a": "1"})
	require.Len(t, tags, 2)
	assert.Equal(t, "a", aws.ToString(tags[0].Key))
	assert.Equal(t, "b", aws.ToString(tags[1].Key))
}

func TestTagSpecifications(t *testing.T) {
	assert.Nil(t, TagSpecifications(types.ResourceTypeElasticIp, nil))

	specs := TagSpecifications(types.ResourceTypeElasticIp, map[string]string{"env": "prod"})
	require.Len(t, specs, 1)
	assert.Equal(t, types.ResourceTypeElasticIp, specs[0].ResourceType)
	assert.Equal(t, map[string]string{"env": "prod"}, GetTagsMap(specs[0].Tags))
}

func TestGetTagsMap(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("Name"), Value: aws.String("web")},
		{Key: aws.String("empty")},
	}
	assert.Equal(t, map[string]string{"Name": "web", "empty": ""}, GetTagsMap(tags))
}
