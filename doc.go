// Package howto builds simple instruction pages: a title, a short
// description, ordered code snippets and ordered illustrations, exported as a
// single self-contained HTML file.
//
// # Quick Start
//
// Fill a Form, collect it into a Document and render it:
//
//	form := howto.NewForm()
//	form.SetTitle("Setup")
//	form.UpdateCodeRow(0, howto.CodeRow{Language: "bash", Body: "make install"})
//
//	doc := howto.Collect(form)
//	page := howto.Render(doc)
//	os.WriteFile(howto.Filename(doc.Title), []byte(page), 0644)
//
// Collect and Render are pure: they never fail, never perform I/O and always
// produce the same page for the same input.
//
// # Pipeline
//
//  1. Collect reads a FormState (a Form, a source file, an HTTP form) and
//     returns a normalized Document: fields trimmed, empty rows dropped.
//  2. Render turns the Document into a standalone HTML5 page with inline CSS.
//  3. Filename derives the download name from the title via Slugify.
//  4. Generator.Export optionally prints the page to PDF with headless
//     Chrome (go-rod).
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := howto.NewGenerator(
//	    howto.WithStyle("print"),
//	    howto.WithLabels(howto.LabelsRU),
//	    howto.WithHighlighting("monokai"),
//	    howto.WithTimeout(time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	res, err := gen.Export(ctx, howto.ExportInput{Document: doc, PDF: true})
//
// # Parallel Processing
//
// For batch exports, use GeneratorPool. Each generator owns at most one
// browser, started on its first PDF export.
//
//	pool := howto.NewGeneratorPool(howto.ResolvePoolSize(0), opts...)
//	defer pool.Close()
//
//	gen, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
package howto
