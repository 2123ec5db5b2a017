// Package connectors provides implementations of the DocumentSource
// interface. Each connector knows how to list raw documents from a
// specific location type. Only the local filesystem source is in scope;
// remote sources sit behind the same port.
package connectors
