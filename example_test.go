package howto_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-howto"
)

// Example builds a page from a form and derives its file name.
func Example() {
	form := howto.NewForm()
	form.SetTitle("  Setup  ")
	form.UpdateCodeRow(0, howto.CodeRow{Language: "bash", Body: "echo hi"})

	doc := howto.Collect(form)
	page := howto.Render(doc)

	fmt.Println(howto.Filename(doc.Title))
	fmt.Println(strings.Contains(page, `<pre class="code" data-lang="bash"><code>echo hi</code></pre>`))
	// Output:
	// setup.html
	// true
}

// ExampleSlugify shows diacritics being dropped from Cyrillic titles.
func ExampleSlugify() {
	fmt.Println(howto.Slugify("Быстрый старт!"))
	fmt.Println(howto.Filename(""))
	// Output:
	// быстрыи-старт
	// instruction.html
}

// ExampleCollect shows blank rows being dropped.
func ExampleCollect() {
	form := howto.NewForm()
	form.AddCodeRow(howto.CodeRow{Language: "sql", Body: "SELECT 1;"})
	form.AddImageRow(howto.ImageRow{URL: " https://example.com/a.png ", Alt: "Dashboard"})

	doc := howto.Collect(form)
	fmt.Println(len(doc.CodeEntries), len(doc.ImageEntries))
	fmt.Println(doc.ImageEntries[0].URL)
	// Output:
	// 1 1
	// https://example.com/a.png
}

// ExampleGenerator_Export exports HTML with Russian labels.
// Set ExportInput.PDF to also print the page (requires Chrome).
func ExampleGenerator_Export() {
	gen, err := howto.NewGenerator(howto.WithLabels(howto.LabelsRU))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer gen.Close()

	res, err := gen.Export(context.Background(), howto.ExportInput{
		Document: howto.Document{Description: "Run `make`"},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Filename)
	fmt.Println(strings.Contains(string(res.HTML), "<h1>Инструкция</h1>"))
	fmt.Println(strings.Contains(string(res.HTML), `<code class="muted">make</code>`))
	// Output:
	// instruction.html
	// true
	// true
}
