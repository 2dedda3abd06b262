package howto

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Labels holds the fixed strings of the page chrome.
type Labels struct {
	Lang          string // value of <html lang>
	DefaultTitle  string // used when the title is empty
	CodeHeading   string // heading of the code section
	ImagesHeading string // heading of the image section
}

// Label presets.
var (
	LabelsEN = Labels{
		Lang:          "en",
		DefaultTitle:  "Instruction",
		CodeHeading:   "Code / Commands",
		ImagesHeading: "Illustrations",
	}
	LabelsRU = Labels{
		Lang:          "ru",
		DefaultTitle:  "Инструкция",
		CodeHeading:   "Код / Команды",
		ImagesHeading: "Иллюстрации",
	}
)

var labelPresets = map[string]Labels{
	"en": LabelsEN,
	"ru": LabelsRU,
}

// LabelsFor returns the preset for a language tag. Regional variants match
// their base language, so "ru-RU" and "RU" both select LabelsRU.
func LabelsFor(tag string) (Labels, error) {
	if tag == "" {
		return LabelsEN, nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return Labels{}, fmt.Errorf("%w: %q", ErrUnknownLabels, tag)
	}
	base, _ := parsed.Base()
	labels, ok := labelPresets[strings.ToLower(base.String())]
	if !ok {
		return Labels{}, fmt.Errorf("%w: %q", ErrUnknownLabels, tag)
	}
	return labels, nil
}

// LabelPresets lists the language tags LabelsFor accepts, sorted.
func LabelPresets() []string {
	names := make([]string, 0, len(labelPresets))
	for name := range labelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
