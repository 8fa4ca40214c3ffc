package directory

import "github.com/poiesic/soundlens/core"

// bundledStations is the default directory shipped with the engine.
// Entries are ordered roughly by expected audience size.
var bundledStations = []*core.Station{
	{
		Name:      "Groove Salad",
		Genre:     "ambient",
		Country:   "US",
		StreamURL: "https://ice.somafm.example/groovesalad",
		Tags:      []string{"chill", "downtempo", "electronic"},
	},
	{
		Name:      "Deep House Collective",
		Genre:     "house",
		Country:   "DE",
		StreamURL: "https://streams.dhc.example/deep",
		Tags:      []string{"electronic", "danceable", "deep"},
	},
	{
		Name:      "Blue Note After Hours",
		Genre:     "jazz",
		Country:   "FR",
		StreamURL: "https://radio.bluenote.example/afterhours",
		Tags:      []string{"mellow", "late-night", "instrumental"},
	},
	{
		Name:      "Classic Rock Freeway",
		Genre:     "rock",
		Country:   "US",
		StreamURL: "https://streams.freeway.example/classicrock",
		Tags:      []string{"classic", "guitar", "70s", "80s"},
	},
	{
		Name:      "Lofi Basement",
		Genre:     "lofi",
		Country:   "JP",
		StreamURL: "https://cast.lofibasement.example/main",
		Tags:      []string{"chill", "study", "beats"},
	},
	{
		Name:      "Symphony Hall",
		Genre:     "classical",
		Country:   "AT",
		StreamURL: "https://radio.symphonyhall.example/live",
		Tags:      []string{"orchestral", "calm", "instrumental"},
	},
	{
		Name:      "Bassline FM",
		Genre:     "drum and bass",
		Country:   "UK",
		StreamURL: "https://streams.bassline.example/dnb",
		Tags:      []string{"energetic", "fast", "electronic"},
	},
	{
		Name:      "Campfire Folk",
		Genre:     "folk",
		Country:   "CA",
		StreamURL: "https://cast.campfire.example/folk",
		Tags:      []string{"acoustic", "mellow", "songwriter"},
	},
	{
		Name:      "Salsa Caliente",
		Genre:     "latin",
		Country:   "CO",
		StreamURL: "https://radio.caliente.example/salsa",
		Tags:      []string{"danceable", "upbeat", "brass"},
	},
	{
		Name:      "Night Drive Synthwave",
		Genre:     "synthwave",
		Country:   "SE",
		StreamURL: "https://streams.nightdrive.example/synth",
		Tags:      []string{"retro", "electronic", "dreamy"},
	},
}
