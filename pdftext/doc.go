// Package pdftext extracts text from PDF files using two backends.
//
// The primary backend reads positioned spans per page, which preserves
// layout and feeds table-cell construction. The fallback backend walks
// raw page content streams into one linear blob and guesses page
// boundaries, for documents the primary reader cannot parse. The empty
// path synthesizes blank page records so downstream stages always see
// one record per page.
package pdftext
