package ports

import "poetry2uv/internal/types"

type DocumentPort interface {
	WriteDocument(path string, doc types.Document) error
	ReadDocument(path string) (types.Document, error)
}
