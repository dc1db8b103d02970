package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/edifyx/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "view":
			err = setViewField(&cfg.View, key, value)
		case currentSection == "export":
			err = setExportField(&cfg.Export, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cfg.View.ZoomMin > cfg.View.ZoomMax {
		return nil, fmt.Errorf("error in section [view]: zoom_min %g exceeds zoom_max %g", cfg.View.ZoomMin, cfg.View.ZoomMax)
	}
	return cfg, nil
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "export_dir":
		cfg.ExportDir = value
	}
	return nil
}

func setViewField(v *View, key, value string) error {
	k := strings.ToLower(key)
	switch k {
	case "zoom_step", "zoom_min", "zoom_max":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
		if f <= 0 {
			return fmt.Errorf("key %s must be positive", key)
		}
		switch k {
		case "zoom_step":
			if f <= 1 {
				return fmt.Errorf("key %s must be greater than 1", key)
			}
			v.ZoomStep = f
		case "zoom_min":
			v.ZoomMin = f
		case "zoom_max":
			v.ZoomMax = f
		}
	case "resample":
		v.Resample = strings.ToLower(value)
	case "watch", "auto_orient":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		if k == "watch" {
			v.Watch = b
		} else {
			v.AutoOrient = b
		}
	}
	return nil
}

func setExportField(e *Export, key, value string) error {
	switch strings.ToLower(key) {
	case "jpeg_quality":
		q, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		if q < 1 || q > 100 {
			return fmt.Errorf("jpeg_quality %d out of range 1-100", q)
		}
		e.JPEGQuality = q
	case "png_compression":
		e.PNGCompression = strings.ToLower(value)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "import":
		n.Import = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}
