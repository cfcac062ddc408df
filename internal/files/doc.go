// Package files locates DTA files on disk for batch processing.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//	found, err := discovery.FindDTAFiles("measurements", "*.DTA")
package files
