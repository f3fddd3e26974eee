// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Shaders  ShadersConfig  `yaml:"shaders"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	VSync  bool    `yaml:"vsync"`
	FOV    float32 `yaml:"fov"` // Vertical field of view in degrees
}

// CameraConfig holds camera controller settings.
type CameraConfig struct {
	// Controller selects the interaction model: "first-person" or
	// "trackball".
	Controller string `yaml:"controller"`
	// LookAt seeds the camera as eye,center,up: nine comma-separated
	// floats. Empty means frame the scene bounds.
	LookAt string `yaml:"lookat"`
}

// ShadersConfig holds optional GLSL override paths. Empty paths select
// the embedded defaults.
type ShadersConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// OutputConfig holds offline rendering settings.
type OutputConfig struct {
	// Path, when set, renders a single frame to this PNG file and exits
	// without opening a visible window.
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    70,
		},
		Camera: CameraConfig{
			Controller: "first-person",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
