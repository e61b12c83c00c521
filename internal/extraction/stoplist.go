package extraction

// defaultStoplist holds normalized tokens that look like mentions but never
// name a place: generic travel hashtags, caption filler, platform noise.
var defaultStoplist = map[string]struct{}{
	"travel":          {},
	"travelgram":      {},
	"wanderlust":      {},
	"vacation":        {},
	"holiday":         {},
	"trip":            {},
	"adventure":       {},
	"explore":         {},
	"instagood":       {},
	"instatravel":     {},
	"photooftheday":   {},
	"picoftheday":     {},
	"beautiful":       {},
	"amazing":         {},
	"love":            {},
	"food":            {},
	"foodie":          {},
	"foodporn":        {},
	"yummy":           {},
	"delicious":       {},
	"brunch":          {},
	"coffee":          {},
	"ootd":            {},
	"tbt":             {},
	"throwback":       {},
	"weekend":         {},
	"goodvibes":       {},
	"blessed":         {},
	"nofilter":        {},
	"follow":          {},
	"followme":        {},
	"like4like":       {},
	"must visit":      {},
	"hidden gem":      {},
	"bucket list":     {},
	"date night":      {},
	"girls trip":      {},
	"best day ever":   {},
	"love this place": {},
}

// Stoplisted reports whether a normalized mention should be discarded.
func Stoplisted(normalized string) bool {
	_, ok := defaultStoplist[normalized]
	return ok
}
