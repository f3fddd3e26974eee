package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagLookAt     = flag.String("lookat", "", "Initial camera as eye,center,up (nine comma-separated floats)")
	flagController = flag.String("controller", "", "Camera controller: first-person or trackball")
	flagVertex     = flag.String("vertex-shader", "", "Path to a vertex shader overriding the built-in one")
	flagFragment   = flag.String("fragment-shader", "", "Path to a fragment shader overriding the built-in one")
	flagOutput     = flag.String("output", "", "Render one frame to this PNG file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ScenePath returns the positional scene file argument, or "" if absent.
func ScenePath() string {
	return flag.Arg(0)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagLookAt != "" {
		cfg.Camera.LookAt = *flagLookAt
	}
	if *flagController != "" {
		cfg.Camera.Controller = *flagController
	}
	if *flagVertex != "" {
		cfg.Shaders.Vertex = *flagVertex
	}
	if *flagFragment != "" {
		cfg.Shaders.Fragment = *flagFragment
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
}
