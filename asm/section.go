package asm

// Section is a named, independently addressed region of the output image.
type Section struct {
	Name string
	Base uint32
	Data []byte
}

// SectionLayout maps section names to their base addresses.
type SectionLayout map[string]uint32

// Default section bases.
const (
	TextBase = uint32(0x00000000)
	DataBase = uint32(0x10000000)
	BssBase  = uint32(0x10040000)
)

const textSection = ".text"

// DefaultLayout is the section layout used unless the assembler is
// configured otherwise.
var DefaultLayout = SectionLayout{
	".text": TextBase,
	".data": DataBase,
	".bss":  BssBase,
}

// SectionWriter tracks a per-section write cursor and the active section.
// Pass 2 only advances cursors to assign addresses; pass 3 writes bytes.
// Both walks go through this type so their address bookkeeping cannot
// diverge. Re-entering a section resumes its previous cursor.
type SectionWriter struct {
	layout   SectionLayout
	sections []*Section
	cursors  map[string]uint32
	active   *Section
}

// NewSectionWriter creates a writer over a layout with no active section.
func NewSectionWriter(layout SectionLayout) *SectionWriter {
	return &SectionWriter{
		layout:  layout,
		cursors: make(map[string]uint32, len(layout)),
	}
}

// Switch makes a section the target of subsequent writes, creating it on
// first use and resuming its cursor otherwise.
func (w *SectionWriter) Switch(name string) error {
	for _, section := range w.sections {
		if section.Name == name {
			w.active = section
			return nil
		}
	}

	base, ok := w.layout[name]
	if !ok {
		return ErrSectionUnknown(name)
	}

	section := &Section{Name: name, Base: base}
	w.sections = append(w.sections, section)
	w.active = section
	return nil
}

// Cursor returns the address the next byte will be placed at.
func (w *SectionWriter) Cursor() uint32 {
	return w.active.Base + w.cursors[w.active.Name]
}

// Advance moves the active cursor without emitting bytes.
func (w *SectionWriter) Advance(count uint32) {
	w.cursors[w.active.Name] += count
}

// Write appends bytes to the active section.
func (w *SectionWriter) Write(data []byte) {
	w.active.Data = append(w.active.Data, data...)
	w.cursors[w.active.Name] += uint32(len(data))
}

// Image captures the written sections, in first-activation order.
func (w *SectionWriter) Image() *Image {
	return &Image{Sections: w.sections}
}

// Image is the assembled binary program: named sections, each with a base
// address and its byte contents.
type Image struct {
	Sections []*Section
}

// Section finds a section by name, or nil.
func (im *Image) Section(name string) *Section {
	for _, section := range im.Sections {
		if section.Name == name {
			return section
		}
	}
	return nil
}

// Binary concatenates all section contents in section order.
func (im *Image) Binary() (out []byte) {
	for _, section := range im.Sections {
		out = append(out, section.Data...)
	}
	return
}
