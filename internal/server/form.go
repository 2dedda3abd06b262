package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/alnah/go-howto"
)

// Form field names shared with the form template.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldCodeLang    = "code_lang"
	fieldCodeBody    = "code_body"
	fieldImageURL    = "img_url"
	fieldImageAlt    = "img_alt"
	fieldAction      = "action"
	fieldFormat      = "format"
)

// formFromValues rebuilds a Form from submitted values. Repeated fields are
// paired by position; a missing partner is empty.
func formFromValues(values url.Values) *howto.Form {
	form := howto.NewForm()
	form.SetTitle(values.Get(fieldTitle))
	form.SetDescription(values.Get(fieldDescription))

	langs, bodies := values[fieldCodeLang], values[fieldCodeBody]
	for i := range max(len(langs), len(bodies)) {
		row := howto.CodeRow{Language: at(langs, i), Body: at(bodies, i)}
		if i == 0 {
			form.UpdateCodeRow(0, row)
			continue
		}
		form.AddCodeRow(row)
	}

	urls, alts := values[fieldImageURL], values[fieldImageAlt]
	for i := range max(len(urls), len(alts)) {
		row := howto.ImageRow{URL: at(urls, i), Alt: at(alts, i)}
		if i == 0 {
			form.UpdateImageRow(0, row)
			continue
		}
		form.AddImageRow(row)
	}
	return form
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// applyAction runs one editing action on form. Unknown actions and
// malformed indexes leave the form unchanged.
func applyAction(form *howto.Form, action string) {
	name, arg, _ := strings.Cut(action, ":")
	switch name {
	case "add_code":
		form.AddCodeRow(howto.CodeRow{})
	case "add_image":
		form.AddImageRow(howto.ImageRow{})
	case "remove_code":
		if i, err := strconv.Atoi(arg); err == nil {
			form.RemoveCodeRow(i)
		}
	case "remove_image":
		if i, err := strconv.Atoi(arg); err == nil {
			form.RemoveImageRow(i)
		}
	case "reset":
		form.Reset()
	}
}
