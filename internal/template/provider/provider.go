package provider

import "context"

// NodeKind distinguishes remote files from directories.
type NodeKind int

const (
	NodeFile NodeKind = iota
	NodeDirectory
)

// String returns the string representation of the kind.
func (k NodeKind) String() string {
	if k == NodeDirectory {
		return "directory"
	}
	return "file"
}

// RemoteNode is one entry of a remote directory listing, normalized across
// providers. It only lives for the duration of a fetch.
type RemoteNode struct {
	// Name is the entry name within its directory.
	Name string
	// Kind is file or directory.
	Kind NodeKind
	// URL lists a directory or, for providers serving files by path, reads a file.
	URL string
	// BlobID references file content for providers serving blobs by id.
	BlobID string
}

// IsDir reports whether the node is a directory.
func (n RemoteNode) IsDir() bool {
	return n.Kind == NodeDirectory
}

// Provider abstracts a git hosting service's tree API.
type Provider interface {
	// Name returns the provider name (e.g., "github", "gitlab").
	Name() string

	// ListChildren lists the entries of the remote directory at url.
	ListChildren(ctx context.Context, url string) ([]RemoteNode, error)

	// ReadFile returns the content of a file node.
	ReadFile(ctx context.Context, node RemoteNode) ([]byte, error)
}
