package catalog

// DefaultExtension is the artifact filter applied when none is configured.
const DefaultExtension = ".zip"

// Entry is one line of GET /catalog.
type Entry struct {
	PackageName string `json:"packageName"`
	SHA256      string `json:"sha256"` // lower hex, 64 chars
	Version     string `json:"version"`
}
