package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/truthscene/pkg/scene"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TRUTHSCENE_FPS", "")
	t.Setenv("TRUTHSCENE_LOG_LEVEL", "")
	t.Setenv("TRUTHSCENE_SOUND", "")
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, scene.DefaultTuning(), cfg.Scene)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "truthscene.yaml")

	cfg := DefaultConfig()
	cfg.Render.FPS = 30
	cfg.Scene.Camera.LandingDamping = 0.1
	cfg.Scene.Accents.Accents[0].Kind = scene.AccentCTA
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "truthscene.yaml")
	data := []byte("render:\n  fps: 24\nscene:\n  navigation:\n    transition_hold: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Render.FPS)
	assert.Equal(t, 2.0, cfg.Scene.Navigation.TransitionHold)
	assert.Equal(t, 0.03, cfg.Scene.Camera.LandingDamping)
	assert.Equal(t, "#d4a574", cfg.Render.Accent)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truthscene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render: [1, 2"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRUTHSCENE_FPS", "90")
	t.Setenv("TRUTHSCENE_LOG_LEVEL", "debug")
	t.Setenv("TRUTHSCENE_SOUND", "true")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, 90, cfg.Render.FPS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Sound.Enabled)

	t.Setenv("TRUTHSCENE_FPS", "fast")
	cfg = DefaultConfig()
	cfg.applyEnvOverrides()
	assert.Equal(t, 60, cfg.Render.FPS, "malformed values are ignored")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"fps", func(c *Config) { c.Render.FPS = 0 }, "render.fps"},
		{"color", func(c *Config) { c.Render.Accent = "gold" }, "gold"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"zero damping", func(c *Config) { c.Scene.Camera.DashboardDamping = 0 }, "camera.dashboard_damping"},
		{"damping above one", func(c *Config) { c.Scene.Accents.Damping = 1.5 }, "accents.damping"},
		{"unbounded scatter", func(c *Config) { c.Scene.Particles.ScatterDrag = 1 }, "scatter_drag"},
		{"negative pool", func(c *Config) { c.Scene.Particles.PoolSize = -1 }, "must not be negative"},
		{"shape", func(c *Config) { c.Scene.Core.Layers[1].Shape = "blob" }, "layers[middle]"},
		{"accent kind", func(c *Config) { c.Scene.Accents.Accents[2].Kind = "hero" }, "accents[2]"},
		{"intro", func(c *Config) { c.Scene.Intro.Glowing = -1 }, "intro durations"},
		{"fov", func(c *Config) { c.Scene.Camera.FOV = 180 }, "fov_degrees"},
		{"page", func(c *Config) { c.Page.Viewports = 0.5 }, "page.viewports"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.FPS = 0
	cfg.Sound.Tone = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "render.fps")
	assert.ErrorContains(t, err, "sound.tone")
}
