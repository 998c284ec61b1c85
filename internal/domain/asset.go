package domain

// AssetKind names the image slots a restaurant can fill.
type AssetKind string

const (
	AssetKindLogo AssetKind = "logo"
	AssetKindMap  AssetKind = "map"
)

// AssetRef is a durable reference to a remotely stored binary. RemoteID is
// the store-side identifier needed to delete the object later; a bare URL is
// not enough.
type AssetRef struct {
	URL      string `json:"url"`
	RemoteID string `json:"remote_id"`
}

// AssetState tracks one asset through a single upload batch.
type AssetState string

const (
	AssetStatePending    AssetState = "PENDING"
	AssetStateUploaded   AssetState = "UPLOADED"
	AssetStateRolledBack AssetState = "ROLLED_BACK"
	AssetStateFailed     AssetState = "FAILED"
)
