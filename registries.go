// registries.go - case-sensitive name -> resource path registries
//
// License: GPLv3 or later

package main

// fontRegistry maps the four configurable font names to their resource
// paths. Unknown names are a config error caught at init.
var fontRegistry = map[string]string{
	"liberation_sans_bold": "assets/fonts/LiberationSans-Bold.ttf",
	"b612_mono_bold":       "assets/fonts/B612Mono-Bold.ttf",
	"share_tech_mono":      "assets/fonts/ShareTechMono-Regular.ttf",
	"orbitron_bold":        "assets/fonts/Orbitron-Bold.ttf",
}

const defaultFontName = "liberation_sans_bold"

// navballSkinRegistry maps the 13 skin names to PNG filenames. An unknown
// name falls back to "stock" rather than failing init, since
// skins are cosmetic.
var navballSkinRegistry = map[string]string{
	"stock":               "assets/navball/stock.png",
	"stock_iva":           "assets/navball/stock_iva.png",
	"5thHorseman_v2":      "assets/navball/5thHorseman_v2.png",
	"5thHorseman_black":   "assets/navball/5thHorseman_black.png",
	"5thHorseman_brown":   "assets/navball/5thHorseman_brown.png",
	"jafo":                "assets/navball/jafo.png",
	"kbob_v2":             "assets/navball/kbob_v2.png",
	"ordinary_kerman":     "assets/navball/ordinary_kerman.png",
	"trekky":              "assets/navball/trekky.png",
	"apollo":              "assets/navball/apollo.png",
	"white_owl":           "assets/navball/white_owl.png",
	"zasnold":             "assets/navball/zasnold.png",
	"falconb":             "assets/navball/falconb.png",
}

const defaultNavballSkin = "stock"

func resolveNavballSkin(name string) string {
	if path, ok := navballSkinRegistry[name]; ok {
		return path
	}
	logWarn("config: unknown navball skin %q, falling back to %q", name, defaultNavballSkin)
	return navballSkinRegistry[defaultNavballSkin]
}

// centerIndicatorRegistry maps navball center-indicator names to SVG
// resource paths.
var centerIndicatorRegistry = map[string]string{
	"circle":    "assets/vector/center_circle.svg",
	"rectangle": "assets/vector/center_rectangle.svg",
	"crosshair": "assets/vector/center_crosshair.svg",
}

const defaultCenterIndicator = "crosshair"

func resolveCenterIndicator(name string) string {
	if path, ok := centerIndicatorRegistry[name]; ok {
		return path
	}
	logWarn("config: unknown center indicator %q, falling back to %q", name, defaultCenterIndicator)
	return centerIndicatorRegistry[defaultCenterIndicator]
}
