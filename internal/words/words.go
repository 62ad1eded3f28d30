// Package words carries the default corpus boards are drawn from. The
// corpus is a plain word list so board generation stays a pure function;
// deployments can swap in their own list at construction time.
package words

// Default returns a copy of the built-in corpus.
func Default() []string {
	return append([]string(nil), defaultCorpus...)
}

var defaultCorpus = []string{
	"anchor", "arrow", "badge", "bank", "beach", "bell", "bridge", "brush",
	"button", "cable", "candle", "canyon", "castle", "chain", "chair",
	"cinema", "circle", "cloud", "comet", "compass", "copper", "crane",
	"crown", "crystal", "desert", "diamond", "dragon", "drum", "engine",
	"feather", "fence", "flute", "forest", "fountain", "garden", "glacier",
	"glove", "hammer", "harbor", "helmet", "island", "jungle", "kettle",
	"ladder", "lantern", "lemon", "library", "magnet", "marble", "meadow",
	"mirror", "needle", "orbit", "organ", "palace", "parade", "pearl",
	"piano", "pillar", "pirate", "planet", "pocket", "prism", "pyramid",
	"ribbon", "river", "rocket", "saddle", "shadow", "shield", "signal",
	"spider", "spring", "statue", "summit", "temple", "theater", "thunder",
	"tiger", "tower", "train", "trumpet", "tunnel", "valley", "violin",
	"volcano", "wagon", "whale", "window", "zebra",
}
