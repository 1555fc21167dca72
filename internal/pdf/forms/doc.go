// Package forms reads the interactive form widgets of a PDF document.
//
// A Document is opened once, which also builds its FormEnvironment from the
// catalog's /AcroForm field tree. Pages are borrowed from the Document and
// decode their widget annotations into plain Widget values: field name,
// label, value, options, type, flags and rectangle. Inheritable attributes
// (/FT, /Ff, /V, /DV, /Opt, /TU) are resolved through the field tree the way
// a conforming viewer does.
//
// Object access goes through pdfcpu; this package never edits or writes a
// document.
package forms
