package models

// FeedFile is a feed file found in a remote folder
type FeedFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Ref      string `json:"ref"` // reference usable in brands.yaml, e.g. drive://<id>
}

// FeedSyncResult reports a Drive folder mirror
type FeedSyncResult struct {
	Total      int      `json:"total"`
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Files      []string `json:"files"`
	Errors     []string `json:"errors"`
}
