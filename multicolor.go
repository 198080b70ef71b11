/*
Package multicolor is a library for converting indexed images into the
multicolor sprite and tileset formats used by 8-bit home computers.

A single image is converted with a Converter and a Job; many images can be
converted at once from an XML project manifest with Converter.Build.
Converted output can optionally be cached in a Catalog so unchanged images
are not converted again.
*/
package multicolor

import "log"

// Converter runs conversion jobs
type Converter struct {
	db     *Catalog
	logger *log.Logger
}

// New returns a Converter. db may be nil in which case nothing is cached.
func New(db *Catalog, logger *log.Logger) *Converter {
	return &Converter{
		db:     db,
		logger: logger,
	}
}
