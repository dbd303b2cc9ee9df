package bucket

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
)

// toRemoveCh converts a string slice to a <-chan minio.ObjectInfo
func toRemoveCh(keys []string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	go func() {
		for _, key := range keys {
			ch <- minio.ObjectInfo{Key: key}
		}
		close(ch)
	}()
	return ch
}

// DeleteObjects removes stored files given their canonical /objects/ paths,
// e.g. uploads orphaned by an abandoned draft.
func (b *Bucket) DeleteObjects(ctx context.Context, paths []string) error {
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		k, err := b.objectKey(p)
		if err != nil {
			return err
		}
		keys = append(keys, k)
	}

	var errMsgs []string
	for dErr := range b.Client.RemoveObjects(ctx, b.S3BucketName, toRemoveCh(keys), minio.RemoveObjectsOptions{}) {
		slog.Default().ErrorContext(ctx, "failed to delete object from s3 bucket",
			slog.String("object_key", dErr.ObjectName),
			slog.String("err", dErr.Err.Error()),
		)
		errMsgs = append(errMsgs, dErr.Err.Error())
	}
	if len(errMsgs) > 0 {
		return fmt.Errorf("errors during deletion: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}
