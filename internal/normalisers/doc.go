// Package normalisers provides implementations of the Normaliser
// interface for the document formats the knowledge base accepts.
// Each normaliser knows how to extract text content from a specific
// file extension.
package normalisers
