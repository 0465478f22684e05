package utils

import (
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// awsReservedPrefix marks tags owned by AWS; they are never purged
const awsReservedPrefix = "aws:"

// GetTagsMap converts a slice of tags to a map
func GetTagsMap(tags []types.Tag) map[string]string {
	result := make(map[string]string)
	for _, tag := range tags {
		if tag.Key != nil {
			result[*tag.Key] = aws.ToString(tag.Value)
		}
	}
	return result
}

// ConvertToEC2Tags converts a map of tags to a slice of EC2 tags, sorted by key
// so that requests are deterministic
func ConvertToEC2Tags(tags map[string]string) []types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		result = append(result, types.Tag{
			Key:   aws.String(k),
			Value: aws.String(tags[k]),
		})
	}
	return result
}

// TagSpecifications wraps tags for a create call. Nil when there are no tags.
func TagSpecifications(resourceType types.ResourceType, tags map[string]string) []types.TagSpecification {
	if len(tags) == 0 {
		return nil
	}
	return []types.TagSpecification{{
		ResourceType: resourceType,
		Tags:         ConvertToEC2Tags(tags),
	}}
}

// TagFilter returns the describe-filter for a tag search. A key alone matches
// any resource carrying the key; key and value match exactly. A leading "tag:"
// on the key is accepted and normalized.
func TagFilter(key, value string) (name string, values []string) {
	key = strings.TrimPrefix(key, "tag:")
	if value == "" {
		return "tag-key", []string{key}
	}
	return "tag:" + key, []string{value}
}

// CompareTags returns the tags to set and the keys to remove so that current
// becomes desired. With purge false nothing is removed. Keys with the aws:
// prefix are never removed.
func CompareTags(current, desired map[string]string, purge bool) (toSet map[string]string, toRemove []string) {
	toSet = make(map[string]string)
	for k, v := range desired {
		if cur, ok := current[k]; !ok || cur != v {
			toSet[k] = v
		}
	}

	if purge {
		for k := range current {
			if strings.HasPrefix(k, awsReservedPrefix) {
				continue
			}
			if _, ok := desired[k]; !ok {
				toRemove = append(toRemove, k)
			}
		}
		sort.Strings(toRemove)
	}

	return toSet, toRemove
}
