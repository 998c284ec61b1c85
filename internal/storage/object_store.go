package storage

import "context"

// StoredObject references a blob that now lives in the remote store. RemoteID
// is what Delete needs; URL is what clients render.
type StoredObject struct {
	RemoteID string
	URL      string
}

// PutRequest describes one blob to persist remotely.
type PutRequest struct {
	// LocalPath points at the temp file holding the bytes.
	LocalPath string
	// Folder is a destination hint, e.g. "restaurants/<email>".
	Folder string
	// Name is the base name for the remote key, without extension.
	Name string
	// Ext is the original filename extension, dot included.
	Ext         string
	ContentType string
}

// ObjectStore is the remote blob store boundary. Both calls are bounded by
// the caller's context; a timeout reads as any other failure. Delete of an
// already-deleted or never-existing id succeeds.
type ObjectStore interface {
	Put(ctx context.Context, req PutRequest) (*StoredObject, error)
	Delete(ctx context.Context, remoteID string) error
}
