package bucket

import (
	"context"
	"path"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
)

// StoredObject is one uploaded file in the media folder.
type StoredObject struct {
	Path         string
	URL          string
	Size         int64
	LastModified time.Time
}

// ListObjects lists the media folder, newest first, with canonical paths.
func (b *Bucket) ListObjects(ctx context.Context) ([]StoredObject, error) {
	prefix := path.Join(b.BaseFolder, b.Folder) + "/"
	objectCh := b.Client.ListObjects(ctx, b.S3BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	out := []StoredObject{}
	for o := range objectCh {
		if o.Err != nil {
			return nil, o.Err
		}
		out = append(out, StoredObject{
			Path:         b.canonicalPath(o.Key),
			URL:          b.getCDNURL(o.Key),
			Size:         o.Size,
			LastModified: o.LastModified,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}
