package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/edifyx/internal/theme"
)

// View holds canvas zoom, resampling and reload settings.
type View struct {
	ZoomStep float64
	ZoomMin  float64
	ZoomMax  float64
	Resample string

	// AutoOrient applies EXIF orientation to imported JPEG files.
	AutoOrient bool
	// Watch reloads the imported image when the file changes on disk.
	Watch bool
}

// Export holds encoder settings.
type Export struct {
	JPEGQuality    int
	PNGCompression string
}

// Notify holds notification settings.
type Notify struct {
	Import bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	ExportDir string
	View      View
	Export    Export
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Empty allows fallback to env and the built-in theme
		View: View{
			ZoomStep:   1.2,
			ZoomMin:    0.05,
			ZoomMax:    20,
			Resample:   "linear",
			AutoOrient: true,
		},
		Export: Export{
			JPEGQuality:    95,
			PNGCompression: "default",
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[view]\n")
	fmt.Fprintf(&sb, "zoom_step = %g\n", c.View.ZoomStep)
	fmt.Fprintf(&sb, "zoom_min = %g\n", c.View.ZoomMin)
	fmt.Fprintf(&sb, "zoom_max = %g\n", c.View.ZoomMax)
	fmt.Fprintf(&sb, "resample = %s\n", c.View.Resample)
	fmt.Fprintf(&sb, "auto_orient = %t\n", c.View.AutoOrient)
	fmt.Fprintf(&sb, "watch = %t\n", c.View.Watch)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.Export.JPEGQuality)
	fmt.Fprintf(&sb, "png_compression = %s\n", c.Export.PNGCompression)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "import = %v\n", c.Notify.Import)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(theme.Format(c.Themes[name]))
		sb.WriteString("\n")
	}

	return sb.String()
}

// ResolveTheme picks the theme to use. An explicit name wins, then the
// EDIFYX_THEME value passed as env, then the config's theme key. Names
// defined in a [theme.<name>] section are returned directly; anything else
// goes through the theme loader.
func (c *Config) ResolveTheme(explicit, env string, l *theme.Loader) (*theme.Theme, error) {
	name := c.Theme
	if env != "" {
		name = env
	}
	if explicit != "" {
		name = explicit
	}
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(name)
}
