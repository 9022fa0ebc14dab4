// Package core defines the shared data model for searchit: documents, index
// metadata, keyword statistics, and the fatal error taxonomy. The model types
// are plain structs; serialization lives in the storage package.
package core
