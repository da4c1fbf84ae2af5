// Package policyscan extracts text, table cells, and surrender-value
// tables from Korean insurance-product PDF files.
//
// Basic usage:
//
//	result, warnings, err := policyscan.Open("product.pdf").Extract()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", policyscan.FormatWarnings(warnings))
//	}
//
// With OCR enhancement (requires a build with -tags ocr and Tesseract
// installed):
//
//	result, _, err := policyscan.Open("scanned.pdf").
//	    WithOCR(ocr.Detect()).
//	    Extract()
//
// Extraction always yields one PageRecord per page: pages the primary
// reader handles carry positioned spans and table cells; documents it
// cannot parse fall back to a linear reading with approximate page
// boundaries; documents neither backend can read come back as empty
// records with Success=false.
package policyscan

import "context"

// Open prepares an Extractor for the PDF file at filename. Extraction
// runs when a terminal operation such as Extract is called.
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromURL downloads a remote PDF to a temporary file and prepares an
// Extractor for it. The temporary file is removed by the terminal
// operation. Download errors surface on the terminal operation, in
// keeping with the fail-fast chain.
func FromURL(ctx context.Context, url string) *Extractor {
	path, err := fetchToTemp(ctx, url)
	return &Extractor{
		filename: path,
		tempFile: path != "",
		options:  defaultOptions(),
		err:      err,
	}
}

// Must is a helper that wraps a call returning (T, error) and panics
// on error. Intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustExtract wraps a terminal operation, discarding warnings and
// panicking on error.
func MustExtract[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
