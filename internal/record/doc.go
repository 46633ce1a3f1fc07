// Package record defines the record model shared by both sides of a
// translation: an ordered field mapping plus the two pseudo-fields (entry
// kind and label) that live outside the ordinary field namespace.
//
// Source records (BibLaTeX/BibTeX entries) travel as Entry values
// ({type, label, properties}); target records (CSL-JSON items) are plain
// ordered objects. Structured values produced by converters are Date and
// Name.
package record
