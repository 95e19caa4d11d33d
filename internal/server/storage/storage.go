// Package storage abstracts where uploaded photo blobs live. The rest of
// the application only sees opaque URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// PhotoStorage saves an uploaded blob and returns the URL under which it can
// be served.
type PhotoStorage interface {
	Save(ctx context.Context, origName string, r io.Reader) (string, error)
}

// RandomObjectKey builds a collision-free storage key for an upload,
// bucketed by date and keeping the original file extension.
func RandomObjectKey(origName string) string {
	d := time.Now()
	return fmt.Sprintf("photos/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(origName))
}
