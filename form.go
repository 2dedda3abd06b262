package howto

import "sync"

// Form is an in-memory FormState mirroring the editing surface of an
// instruction page: two text fields and two growable lists of rows.
// A Form is safe for concurrent use.
type Form struct {
	mu          sync.RWMutex
	title       string
	description string
	code        []CodeRow
	images      []ImageRow
}

// Compile-time interface check.
var _ FormState = (*Form)(nil)

// NewForm returns a form with one empty code row and one empty image row.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset clears every field and leaves one empty row of each kind.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.title = ""
	f.description = ""
	f.code = []CodeRow{{}}
	f.images = []ImageRow{{}}
}

// SetTitle sets the raw title.
func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	f.title = title
	f.mu.Unlock()
}

// SetDescription sets the raw description.
func (f *Form) SetDescription(description string) {
	f.mu.Lock()
	f.description = description
	f.mu.Unlock()
}

// AddCodeRow appends a code row and returns its index.
func (f *Form) AddCodeRow(row CodeRow) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.code = append(f.code, row)
	return len(f.code) - 1
}

// AddImageRow appends an image row and returns its index.
func (f *Form) AddImageRow(row ImageRow) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.images = append(f.images, row)
	return len(f.images) - 1
}

// UpdateCodeRow replaces the code row at i. Out-of-range indexes are ignored.
func (f *Form) UpdateCodeRow(i int, row CodeRow) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i >= 0 && i < len(f.code) {
		f.code[i] = row
	}
}

// UpdateImageRow replaces the image row at i. Out-of-range indexes are ignored.
func (f *Form) UpdateImageRow(i int, row ImageRow) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i >= 0 && i < len(f.images) {
		f.images[i] = row
	}
}

// RemoveCodeRow deletes the code row at i. Out-of-range indexes are ignored.
// Removing the last row leaves the list empty.
func (f *Form) RemoveCodeRow(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i >= 0 && i < len(f.code) {
		f.code = append(f.code[:i], f.code[i+1:]...)
	}
}

// RemoveImageRow deletes the image row at i. Out-of-range indexes are ignored.
func (f *Form) RemoveImageRow(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i >= 0 && i < len(f.images) {
		f.images = append(f.images[:i], f.images[i+1:]...)
	}
}

// Title returns the raw title.
func (f *Form) Title() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.title
}

// Description returns the raw description.
func (f *Form) Description() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.description
}

// CodeRows returns a copy of the code rows.
func (f *Form) CodeRows() []CodeRow {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]CodeRow(nil), f.code...)
}

// ImageRows returns a copy of the image rows.
func (f *Form) ImageRows() []ImageRow {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]ImageRow(nil), f.images...)
}
