// config.go - JSON configuration document, default-fill pattern
//
// License: GPLv3 or later

package main

import "encoding/json"

// Config is the parsed configuration document. Every field has
// a documented default; LoadConfig fills in anything the JSON document
// omits rather than leaving zero values, since a zero radius or zero
// font size would silently disable a widget instead of rendering it with
// its intended look.
type Config struct {
	Crosshair           CrosshairConfig           `json:"crosshair"`
	Timestamp           TimestampConfig           `json:"timestamp"`
	SpeedIndicators     SpeedIndicatorsConfig     `json:"speed_indicators"`
	VariantInfo         VariantInfoConfig         `json:"variant_info"`
	Navball             NavballConfig             `json:"navball"`
	CelestialIndicators CelestialIndicatorsConfig `json:"celestial_indicators"`
	SharpnessHeatmap    SharpnessHeatmapConfig    `json:"sharpness_heatmap"`
	Detections          DetectionsConfig          `json:"detections"`
	ROI                 ROIConfig                 `json:"roi"`
	AutofocusDebug      AutofocusDebugConfig      `json:"autofocus_debug"`
	SAMMask             SAMMaskConfig             `json:"sam_mask"`
}

type CenterDotConfig struct {
	Enabled   bool   `json:"enabled"`
	Radius    int    `json:"radius"`
	ColorHex  string `json:"color"`
	Thickness int    `json:"thickness"`
}

type CrossConfig struct {
	Enabled   bool   `json:"enabled"`
	Length    int    `json:"length"`
	Gap       int    `json:"gap"`
	Thickness int    `json:"thickness"`
	ColorHex  string `json:"color"`
}

type CircleConfig struct {
	Enabled   bool   `json:"enabled"`
	Radius    int    `json:"radius"`
	Thickness int    `json:"thickness"`
	ColorHex  string `json:"color"`
}

type CrosshairConfig struct {
	Enabled     bool            `json:"enabled"`
	Orientation string          `json:"orientation"` // "vertical" or "diagonal"
	CenterDot   CenterDotConfig `json:"center_dot"`
	Cross       CrossConfig     `json:"cross"`
	Circle      CircleConfig    `json:"circle"`
}

type TimestampConfig struct {
	Enabled   bool    `json:"enabled"`
	PositionX int     `json:"position_x"`
	PositionY int     `json:"position_y"`
	ColorHex  string  `json:"color"`
	FontSize  float64 `json:"font_size"`
	Font      string  `json:"font"`
}

type SpeedIndicatorsConfig struct {
	Enabled            bool    `json:"enabled"`
	ColorHex           string  `json:"color"`
	FontSize           float64 `json:"font_size"`
	Threshold          float64 `json:"threshold"`
	MaxSpeedAzimuth    float64 `json:"max_speed_azimuth"`
	MaxSpeedElevation  float64 `json:"max_speed_elevation"`
	Font               string  `json:"font"`
}

type VariantInfoConfig struct {
	Enabled   bool    `json:"enabled"`
	PositionX int     `json:"position_x"`
	PositionY int     `json:"position_y"`
	ColorHex  string  `json:"color"`
	FontSize  float64 `json:"font_size"`
	Font      string  `json:"font"`
}

type CenterIndicatorConfig struct {
	Enabled   bool    `json:"enabled"`
	Scale     float64 `json:"scale"`
	Indicator string  `json:"indicator"`
}

type NavballConfig struct {
	Enabled          bool                  `json:"enabled"`
	PositionX        int                   `json:"position_x"`
	PositionY        int                   `json:"position_y"`
	Size             int                   `json:"size"`
	Skin             string                `json:"skin"`
	ShowLevelMarker  bool                  `json:"show_level_marker"`
	CenterIndicator  CenterIndicatorConfig `json:"center_indicator"`
}

type CelestialIndicatorsConfig struct {
	Enabled             bool    `json:"enabled"`
	ShowSun             bool    `json:"show_sun"`
	ShowMoon            bool    `json:"show_moon"`
	Scale               float64 `json:"scale"`
	VisibilityThreshold float64 `json:"visibility_threshold"`
	SunFrontSVG         string  `json:"sun_front_svg"`
	SunBackSVG          string  `json:"sun_back_svg"`
	MoonFrontSVG        string  `json:"moon_front_svg"`
	MoonBackSVG         string  `json:"moon_back_svg"`
}

type SharpnessHeatmapConfig struct {
	Enabled       bool    `json:"enabled"`
	PositionX     int     `json:"position_x"`
	PositionY     int     `json:"position_y"`
	CellSize      int     `json:"cell_size"`
	ShowLabel     bool    `json:"show_label"`
	LabelFontSize float64 `json:"label_font_size"`
}

type DetectionsConfig struct {
	Enabled        bool    `json:"enabled"`
	ColorHex       string  `json:"color"`
	BoxThickness   int     `json:"box_thickness"`
	PerClassColor  bool    `json:"per_class_color"`
	LabelFontSize  float64 `json:"label_font_size"`
	MinConfidence  float64 `json:"min_confidence"`
}

type ROIConfig struct {
	Enabled        bool    `json:"enabled"`
	BoxThickness   int     `json:"box_thickness"`
	LabelFontSize  float64 `json:"label_font_size"`
	ColorFocusHex  string  `json:"color_focus"`
	ColorTrackHex  string  `json:"color_track"`
	ColorZoomHex   string  `json:"color_zoom"`
	ColorFXHex     string  `json:"color_fx"`
}

type AutofocusDebugConfig struct {
	Enabled         bool `json:"enabled"`
	PositionX       int  `json:"position_x"`
	PositionY       int  `json:"position_y"`
	BarHeight       int  `json:"bar_height"`
	HeatmapCellSize int  `json:"heatmap_cell_size"`
	ChartWidth      int  `json:"chart_width"`
}

type SAMMaskConfig struct {
	Enabled         bool    `json:"enabled"`
	ColorHex        string  `json:"color"`
	BoxThickness    int     `json:"box_thickness"`
	PerStateColor   bool    `json:"per_state_color"`
	LabelFontSize   float64 `json:"label_font_size"`
	CentroidRadius  int     `json:"centroid_radius"`
	MaskEnabled     bool    `json:"mask_enabled"`
	MaskAlpha       float64 `json:"mask_alpha"`
}

// DefaultConfig returns a document with every field at its documented
// default, used as the unmarshal target so missing JSON keys keep
// sensible values instead of zeroing out.
func DefaultConfig() Config {
	return Config{
		Crosshair: CrosshairConfig{
			Enabled:     true,
			Orientation: "vertical",
			CenterDot:   CenterDotConfig{Enabled: true, Radius: 2, ColorHex: "#00FF00", Thickness: 1},
			Cross:       CrossConfig{Enabled: true, Length: 20, Gap: 8, Thickness: 2, ColorHex: "#00FF00"},
			Circle:      CircleConfig{Enabled: false, Radius: 40, Thickness: 1, ColorHex: "#00FF00"},
		},
		Timestamp: TimestampConfig{
			Enabled: true, PositionX: 10, PositionY: 10, ColorHex: "#FFFFFF", FontSize: 18, Font: defaultFontName,
		},
		SpeedIndicators: SpeedIndicatorsConfig{
			Enabled: true, ColorHex: "#FFFF00", FontSize: 14, Threshold: 0.05,
			MaxSpeedAzimuth: 60, MaxSpeedElevation: 60, Font: defaultFontName,
		},
		VariantInfo: VariantInfoConfig{
			Enabled: false, PositionX: 10, PositionY: 40, ColorHex: "#AAAAAA", FontSize: 12, Font: "share_tech_mono",
		},
		Navball: NavballConfig{
			Enabled: true, PositionX: 960, PositionY: 850, Size: 180, Skin: defaultNavballSkin, ShowLevelMarker: true,
			CenterIndicator: CenterIndicatorConfig{Enabled: true, Scale: 1.0, Indicator: defaultCenterIndicator},
		},
		CelestialIndicators: CelestialIndicatorsConfig{
			Enabled: false, ShowSun: true, ShowMoon: true, Scale: 0.15, VisibilityThreshold: -5,
			SunFrontSVG: "assets/vector/sun_front.svg", SunBackSVG: "assets/vector/sun_back.svg",
			MoonFrontSVG: "assets/vector/moon_front.svg", MoonBackSVG: "assets/vector/moon_back.svg",
		},
		SharpnessHeatmap: SharpnessHeatmapConfig{
			Enabled: false, PositionX: 1700, PositionY: 10, CellSize: 12, ShowLabel: true, LabelFontSize: 12,
		},
		Detections: DetectionsConfig{
			Enabled: true, ColorHex: "#FF0000", BoxThickness: 2, PerClassColor: true, LabelFontSize: 12, MinConfidence: 0.25,
		},
		ROI: ROIConfig{
			Enabled: true, BoxThickness: 1, LabelFontSize: 10,
			ColorFocusHex: "#00FFFF", ColorTrackHex: "#FF00FF", ColorZoomHex: "#FFFF00", ColorFXHex: "#FF8800",
		},
		AutofocusDebug: AutofocusDebugConfig{
			Enabled: false, PositionX: 10, PositionY: 400, BarHeight: 120, HeatmapCellSize: 10, ChartWidth: 240,
		},
		SAMMask: SAMMaskConfig{
			Enabled: true, ColorHex: "#00FF00", BoxThickness: 2, PerStateColor: true, LabelFontSize: 12,
			CentroidRadius: 3, MaskEnabled: true, MaskAlpha: 0.4,
		},
	}
}

// LoadConfig reads and parses the JSON configuration document at path,
// starting from DefaultConfig so missing keys keep their default rather
// than zero-valuing. Any error here is fatal to init.
func LoadConfig(loader ResourceLoader, path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := loader.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Details: "read", Err: err}
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigError{Path: path, Details: "parse", Err: err}
	}
	return cfg, nil
}
