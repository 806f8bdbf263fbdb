package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/rooms"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL:         "postgres://localhost:5432/scheduler",
		MorningWindow:       "08:00-12:00",
		AfternoonWindow:     "13:00-17:00",
		ClosingSites:        []string{"site-a", "site-b"},
		FrontDeskCategories: []string{"reception"},
		Rooms:               []string{"room-1", "room-2", "room-3"},
		PreferredRooms:      map[string]string{"cataract": "room-1"},
		RoomLayouts: []RoomLayout{
			{ProcedureType: "cataract", FlowCount: 2, Rooms: []string{"room-1", "room-2"}},
		},
		DemandTemplates: []DemandTemplate{
			{RRule: "FREQ=WEEKLY;BYDAY=MO,WE", Category: "consultation", Window: "08:00-12:00", Quantity: 2},
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := Validate(validConfig())
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/scheduler",
		MorningWindow:   "08:00-12:00",
		AfternoonWindow: "13:00-17:00",
		ClosingSites:    []string{"site-a"},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NoClosingSites(t *testing.T) {
	cfg := validConfig()
	cfg.ClosingSites = nil

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidWindow(t *testing.T) {
	cfg := validConfig()
	cfg.AfternoonWindow = "17:00-13:00"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid afternoonWindow")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := validConfig()
	cfg.DemandTemplates[0].RRule = "INVALID_RRULE_SYNTAX"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_TemplateWindowMalformed(t *testing.T) {
	cfg := validConfig()
	cfg.DemandTemplates[0].Window = "morning"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid window in demandTemplates[0]")
}

func TestValidate_PreferredRoomUnknown(t *testing.T) {
	cfg := validConfig()
	cfg.PreferredRooms["retina"] = "room-9"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown room")
}

func TestValidate_LayoutRoomUnknown(t *testing.T) {
	cfg := validConfig()
	cfg.RoomLayouts[0].Rooms = []string{"room-1", "room-9"}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown room")
}

func TestWindows(t *testing.T) {
	cfg := validConfig()

	ws, err := cfg.Windows()
	require.NoError(t, err)
	assert.Equal(t, 8*60, ws.Morning.StartMinute)
	assert.Equal(t, 12*60, ws.Morning.EndMinute)
	assert.Equal(t, 13*60, ws.Afternoon.StartMinute)
	assert.Equal(t, 17*60, ws.Afternoon.EndMinute)
}

func TestRoomConfig(t *testing.T) {
	cfg := validConfig()

	rc := cfg.RoomConfig()
	assert.Equal(t, []string{"room-1", "room-2", "room-3"}, rc.Rooms)
	assert.Equal(t, "room-1", rc.PreferredRoom["cataract"])
	key := rooms.LayoutKey{ProcedureType: "cataract", FlowCount: 2}
	assert.Equal(t, []string{"room-1", "room-2"}, rc.Layouts[key])
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validYAML := `
databaseURL: "postgres://localhost:5432/scheduler"
morningWindow: "08:00-12:00"
afternoonWindow: "13:00-17:00"
closingSites:
  - "site-a"
  - "site-b"
frontDeskCategories:
  - "reception"
rooms:
  - "room-1"
  - "room-2"
preferredRooms:
  cataract: "room-1"
roomLayouts:
  - procedureType: "cataract"
    flowCount: 2
    rooms:
      - "room-1"
      - "room-2"
demandTemplates:
  - rrule: "FREQ=WEEKLY;BYDAY=MO,WE"
    category: "consultation"
    window: "08:00-12:00"
    quantity: 2
seed: 42
`

	err := os.WriteFile(configPath, []byte(validYAML), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/scheduler", cfg.DatabaseURL)
	assert.Equal(t, []string{"site-a", "site-b"}, cfg.ClosingSites)
	assert.Equal(t, []string{"reception"}, cfg.FrontDeskCategories)

	require.Len(t, cfg.DemandTemplates, 1)
	tmpl := cfg.DemandTemplates[0]
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO,WE", tmpl.RRule)
	assert.Equal(t, "consultation", tmpl.Category)
	assert.Equal(t, 2.0, tmpl.Quantity)

	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
}

func TestLoadFromPath_NilSeed(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "no_seed.yaml")

	minimalYAML := `
databaseURL: "postgres://localhost:5432/scheduler"
morningWindow: "08:00-12:00"
afternoonWindow: "13:00-17:00"
closingSites:
  - "site-a"
`

	err := os.WriteFile(configPath, []byte(minimalYAML), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Nil(t, cfg.Seed)
	assert.Empty(t, cfg.DemandTemplates)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
databaseURL: "postgres://localhost:5432/scheduler"
  invalid indentation
closingSites:
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
