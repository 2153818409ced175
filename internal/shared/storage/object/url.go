package object

import (
	"net/url"
	"strings"
)

// JoinPublicURL builds base/bucket/key, escaping each key segment.
func JoinPublicURL(base, bucket, key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
