package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/rooms"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/core/timeslot"
)

// RoomLayout defines the exact rooms to book when a procedure type runs a
// given number of concurrent flows in one half-day.
type RoomLayout struct {
	ProcedureType string   `yaml:"procedureType" validate:"required"`
	FlowCount     int      `yaml:"flowCount" validate:"min=2"`
	Rooms         []string `yaml:"rooms" validate:"min=1,dive,required"`
}

// DemandTemplate generates recurring demand records from an rrule. Each
// occurrence date produces one record with the given category, clock window
// and quantity.
type DemandTemplate struct {
	RRule    string  `yaml:"rrule" validate:"required"`
	Category string  `yaml:"category" validate:"required"`
	Window   string  `yaml:"window" validate:"required"`
	Quantity float64 `yaml:"quantity" validate:"gt=0"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL         string            `yaml:"databaseURL" validate:"required"`
	MorningWindow       string            `yaml:"morningWindow" validate:"required"`
	AfternoonWindow     string            `yaml:"afternoonWindow" validate:"required"`
	ClosingSites        []string          `yaml:"closingSites" validate:"min=1,dive,required"`
	FrontDeskCategories []string          `yaml:"frontDeskCategories,omitempty"`
	Rooms               []string          `yaml:"rooms,omitempty"`
	PreferredRooms      map[string]string `yaml:"preferredRooms,omitempty"`
	RoomLayouts         []RoomLayout      `yaml:"roomLayouts,omitempty" validate:"dive"`
	DemandTemplates     []DemandTemplate  `yaml:"demandTemplates,omitempty" validate:"dive"`
	Seed                *int64            `yaml:"seed,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from scheduler_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the half-day clock windows
// and the rrule syntax of each demand template.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := timeslot.ParseWindow(cfg.MorningWindow); err != nil {
		return fmt.Errorf("invalid morningWindow: %w", err)
	}
	if _, err := timeslot.ParseWindow(cfg.AfternoonWindow); err != nil {
		return fmt.Errorf("invalid afternoonWindow: %w", err)
	}

	for i, tmpl := range cfg.DemandTemplates {
		if _, err := rrule.StrToRRule(tmpl.RRule); err != nil {
			return fmt.Errorf("invalid rrule in demandTemplates[%d]: %w", i, err)
		}
		if _, err := timeslot.ParseWindow(tmpl.Window); err != nil {
			return fmt.Errorf("invalid window in demandTemplates[%d]: %w", i, err)
		}
	}

	roomSet := make(map[string]bool, len(cfg.Rooms))
	for _, room := range cfg.Rooms {
		roomSet[room] = true
	}
	for procType, room := range cfg.PreferredRooms {
		if !roomSet[room] {
			return fmt.Errorf("preferredRooms[%s] names unknown room %q", procType, room)
		}
	}
	for i, layout := range cfg.RoomLayouts {
		for _, room := range layout.Rooms {
			if !roomSet[room] {
				return fmt.Errorf("roomLayouts[%d] names unknown room %q", i, room)
			}
		}
	}

	return nil
}

// Windows returns the parsed half-day windows. Validate must have accepted
// the config first.
func (c *Config) Windows() (timeslot.Windows, error) {
	morning, err := timeslot.ParseWindow(c.MorningWindow)
	if err != nil {
		return timeslot.Windows{}, fmt.Errorf("invalid morningWindow: %w", err)
	}
	afternoon, err := timeslot.ParseWindow(c.AfternoonWindow)
	if err != nil {
		return timeslot.Windows{}, fmt.Errorf("invalid afternoonWindow: %w", err)
	}
	return timeslot.Windows{Morning: morning, Afternoon: afternoon}, nil
}

// RoomConfig converts the room sections into the allocator's configuration.
func (c *Config) RoomConfig() rooms.Config {
	cfg := rooms.Config{
		Rooms:         c.Rooms,
		PreferredRoom: c.PreferredRooms,
		Layouts:       make(map[rooms.LayoutKey][]string, len(c.RoomLayouts)),
	}
	for _, layout := range c.RoomLayouts {
		key := rooms.LayoutKey{ProcedureType: layout.ProcedureType, FlowCount: layout.FlowCount}
		cfg.Layouts[key] = layout.Rooms
	}
	return cfg
}

// findConfigFile searches for scheduler_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "scheduler_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
