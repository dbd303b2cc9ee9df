package bucket

import (
	"fmt"
	"path"
	"strings"

	"github.com/photobooksgallery/pbg-manager/internal/entity"
)

const (
	contentTypeJPEG  = "image/jpeg"
	contentTypePNG   = "image/png"
	contentTypeWebP  = "image/webp"
	contentTypeMP4   = "video/mp4"
	contentTypeWebM  = "video/webm"
	contentTypeOctet = "application/octet-stream"
)

func fileExtensionFromContentType(contentType string) string {
	switch contentType {
	case contentTypeJPEG:
		return "jpg"
	case contentTypePNG:
		return "png"
	case contentTypeWebP:
		return "webp"
	case contentTypeMP4:
		return "mp4"
	case contentTypeWebM:
		return "webm"
	case contentTypeOctet:
		return "bin"
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) > 1 && parts[1] != "" {
			return parts[1]
		}
		return "bin"
	}
}

// storedContentType is the content type the object will have once uploaded.
func (b *Bucket) storedContentType(f entity.LocalFile) string {
	if b.ConvertWebP && convertible(f.ContentType) {
		return contentTypeWebP
	}
	if f.ContentType == "" {
		return contentTypeOctet
	}
	return f.ContentType
}

func (b *Bucket) constructFullPath(folder, fileName, ext string) string {
	return path.Clean(path.Join(b.BaseFolder, folder, fileName) + "." + ext)
}

// objectPath is deterministic so the target request and the upload agree on
// the key without shared state.
func (b *Bucket) objectPath(fileId string, f entity.LocalFile) string {
	return b.constructFullPath(b.Folder, fileId, fileExtensionFromContentType(b.storedContentType(f)))
}

func (b *Bucket) getCDNURL(filePath string) string {
	if b.CDNEndpoint != "" {
		return fmt.Sprintf("https://%s/%s", b.CDNEndpoint, filePath)
	}
	return fmt.Sprintf("https://%s.%s/%s", b.S3BucketName, b.S3Endpoint, filePath)
}

// canonicalPath is the /objects/ path of key: the key without the base folder.
func (b *Bucket) canonicalPath(key string) string {
	rel := path.Clean(key)
	if base := path.Clean(b.BaseFolder); base != "." && base != "/" {
		rel = strings.TrimPrefix(rel, base+"/")
	}
	return "/objects/" + strings.TrimPrefix(rel, "/")
}

// objectKey maps a canonical /objects/<folder>/<file> path back to its key.
func (b *Bucket) objectKey(canonical string) (string, error) {
	rest, ok := strings.CutPrefix(canonical, "/objects/")
	if !ok || rest == "" {
		return "", fmt.Errorf("not an object path: %q", canonical)
	}
	return path.Clean(path.Join(b.BaseFolder, rest)), nil
}
