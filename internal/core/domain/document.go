package domain

// RawDocument represents opaque bytes fetched from a document source.
// It is the source's output before normalisation.
type RawDocument struct {
	// URI is the original location (file path, object key).
	URI string

	// Ext is the lowercased file extension including the dot (e.g. ".pdf").
	// Normalisers are selected by extension.
	Ext string

	// Content is the raw bytes.
	Content []byte
}

// Document represents a loaded knowledge-base document after normalisation.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Source is the document identifier carried into chunk metadata,
	// typically the base filename (e.g. "returns_policy.txt").
	Source string

	// Content is the full text content after normalisation,
	// before chunking.
	Content string
}

// Chunk is the unit of indexing and retrieval: a bounded contiguous
// slice of a source document's text plus its attribution metadata.
type Chunk struct {
	// Content is the trimmed chunk text.
	Content string

	// Source identifies the document this chunk came from.
	Source string

	// ChunkID is the sequence number within the source document,
	// starting at 0 for each document.
	ChunkID int
}

// RetrievalResult is a single nearest-neighbour hit.
type RetrievalResult struct {
	// Chunk is the matched passage with its metadata.
	Chunk Chunk

	// Distance is the non-negative squared Euclidean distance between
	// the query embedding and the chunk embedding. Lower is more
	// relevant. There is no upper bound and no normalisation.
	Distance float64
}

// ChatMessage is a single turn of a conversation transcript.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
