package types

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
	FontWeightItalic  FontWeight = "italic"
)
