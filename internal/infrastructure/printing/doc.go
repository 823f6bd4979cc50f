// Package printing turns document trees into printable output.
//
// It contains:
//   - TemplateEngine, which renders a document tree into self-contained HTML
//   - PDFRenderer, with two implementations:
//     MarotoRenderer lays the tree out natively in Go,
//     ChromedpRenderer prints the HTML through a headless Chrome
//
// Example usage:
//
//	renderer, err := NewPDFRenderer(&EngineConfig{Engine: EngineMaroto})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	result, err := renderer.Render(ctx, &RenderRequest{Document: doc})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Generated PDF: %d bytes\n", len(result.PDFData))
package printing
