package howto

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "cyrillic with breve", input: "Быстрый старт!", want: "быстрыи-старт"},
		{name: "ascii words", input: "Setup Guide", want: "setup-guide"},
		{name: "latin accents stripped", input: "Café Crème", want: "cafe-creme"},
		{name: "runs collapse", input: "a  --  b", want: "a-b"},
		{name: "edges trimmed", input: "  !!hello!!  ", want: "hello"},
		{name: "digits kept", input: "Step 2 of 10", want: "step-2-of-10"},
		{name: "compatibility forms decomposed", input: "ﬁle №1", want: "file-no1"},
		{name: "ё loses diaeresis", input: "Ёлка", want: "елка"},
		{name: "emoji removed", input: "Deploy 🚀 now", want: "deploy-now"},
		{name: "cjk removed", input: "安装", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "?!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{title: "Быстрый старт!", want: "быстрыи-старт.html"},
		{title: "", want: "instruction.html"},
		{title: "安装", want: "instruction.html"},
		{title: "Setup", want: "setup.html"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			if got := Filename(tt.title); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}

	if got := FilenameWithExt("Setup", ".pdf"); got != "setup.pdf" {
		t.Errorf("FilenameWithExt() = %q, want setup.pdf", got)
	}
}
