// Package ports defines the interfaces between the epigraph core and its
// adapters (model stores).
package ports
