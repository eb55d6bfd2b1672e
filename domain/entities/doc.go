// Package entities provides the core domain entities of smithybuild.
// These are the model documents read from disk, the projection entries
// derived from them, and the manifest assembled from those entries.
package entities
