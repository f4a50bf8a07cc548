package fontlib

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gopkg.in/yaml.v3"

	"github.com/overtype/typeover/pkg/types"
)

// Table maps a font family and weight to a font file. A Table is built
// once and injected into a Resolver; lookups never mutate it.
type Table map[string]map[types.FontWeight]string

// DefaultTable covers the families shipped with most Linux desktop
// installs. Entries that are missing on the running system simply fall
// back to the embedded Go fonts at resolve time.
func DefaultTable() Table {
	return Table{
		"DejaVu Sans": {
			types.FontWeightRegular: "DejaVuSans.ttf",
			types.FontWeightBold:    "DejaVuSans-Bold.ttf",
			types.FontWeightItalic:  "DejaVuSans-Oblique.ttf",
		},
		"Arial": {
			types.FontWeightRegular: "Arial.ttf",
			types.FontWeightBold:    "Arial Bold.ttf",
			types.FontWeightItalic:  "Arial Italic.ttf",
		},
		"Liberation Serif": {
			types.FontWeightRegular: "LiberationSerif-Regular.ttf",
			types.FontWeightBold:    "LiberationSerif-Bold.ttf",
			types.FontWeightItalic:  "LiberationSerif-Italic.ttf",
		},
	}
}

// Families returns the family names in the table.
func (t Table) Families() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	return names
}

// LoadTable reads a YAML font table:
//
//	DejaVu Sans:
//	  regular: DejaVuSans.ttf
//	  bold: DejaVuSans-Bold.ttf
//
// File values may be absolute paths or bare names resolved against the
// well-known font directories.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read fonts config")
	}

	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, errors.Wrap(err, "failed to parse fonts config")
	}
	return t, nil
}

// Directories searched for bare font file names, in order.
var fontDirs = []string{
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/truetype/liberation",
	"/usr/share/fonts/truetype/msttcorefonts",
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/Library/Fonts",
	"fonts",
}

// Resolver resolves family and weight names against an immutable Table.
// Resolution never fails: when the requested font cannot be found or
// parsed, the embedded Go font for the weight is substituted.
type Resolver struct {
	table Table
}

func NewResolver(table Table) *Resolver {
	return &Resolver{table: table}
}

// Face returns a font face at the given pixel size. The boolean reports
// whether the embedded fallback was substituted for the requested font.
func (r *Resolver) Face(family string, weight types.FontWeight, sizePx int) (font.Face, bool) {
	if path, ok := r.lookup(family, weight); ok {
		if face, err := loadFace(path, sizePx); err == nil {
			return face, false
		}
	}
	return FallbackFace(weight, sizePx), true
}

// lookup finds the font file for family+weight. A missing weight falls
// back to the family's regular cut before giving up on the family.
func (r *Resolver) lookup(family string, weight types.FontWeight) (string, bool) {
	weights, ok := r.table[family]
	if !ok {
		return "", false
	}

	file, ok := weights[weight]
	if !ok {
		file, ok = weights[types.FontWeightRegular]
	}
	if !ok || file == "" {
		return "", false
	}

	if filepath.IsAbs(file) {
		if _, err := os.Stat(file); err == nil {
			return file, true
		}
		return "", false
	}
	for _, dir := range fontDirs {
		p := filepath.Join(dir, file)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func loadFace(path string, sizePx int) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse font %s", path)
	}

	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// FallbackFace returns a face for the embedded Go font matching the
// weight. It succeeds unconditionally: if the compiled-in font somehow
// fails to parse, the fixed 7x13 bitmap face is the last resort.
func FallbackFace(weight types.FontWeight, sizePx int) font.Face {
	var src []byte
	switch weight {
	case types.FontWeightBold:
		src = gobold.TTF
	case types.FontWeightItalic:
		src = goitalic.TTF
	default:
		src = goregular.TTF
	}

	f, err := opentype.Parse(src)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
