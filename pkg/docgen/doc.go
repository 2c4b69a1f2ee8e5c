// Package docgen converts raw intake field bags into the flat key/value input
// consumed by the document-generation service.
//
// The conversion runs in two pure steps. A Resolver inspects one category's
// field bag, probing every historical field name recorded in an AliasTable,
// and produces a Resolution. A Mapper turns resolutions into an Output whose
// key set is fixed by the protected Schema. Neither step performs I/O or reads
// global state; the intake schema version is always passed in explicitly.
package docgen
