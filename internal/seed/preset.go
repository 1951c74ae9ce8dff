package seed

import (
	"fmt"
	"os"

	"shareit/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Preset is a deterministic dataset described in YAML. Unlike the random
// seeder it produces the same rows every run, which demo environments rely on.
type Preset struct {
	Users []PresetUser `yaml:"users"`
}

// PresetUser describes one user and the items they own.
type PresetUser struct {
	Name  string       `yaml:"name"`
	Email string       `yaml:"email"`
	Items []PresetItem `yaml:"items"`
}

// PresetItem describes one item listing.
type PresetItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var preset Preset
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if len(preset.Users) == 0 {
		return nil, fmt.Errorf("preset %s defines no users", path)
	}
	return &preset, nil
}

// Apply persists the preset. Users are matched by email, so re-applying a
// preset is idempotent.
func (p *Preset) Apply(db *gorm.DB) error {
	for _, pu := range p.Users {
		user := &models.User{Name: pu.Name, Email: pu.Email}
		err := db.Where("email = ?", pu.Email).First(user).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("lookup preset user %s: %w", pu.Email, err)
			}
			if err := db.Create(user).Error; err != nil {
				return fmt.Errorf("create preset user %s: %w", pu.Email, err)
			}
		}

		for _, pi := range pu.Items {
			var count int64
			if err := db.Model(&models.Item{}).
				Where("owner_id = ? AND name = ?", user.ID, pi.Name).
				Count(&count).Error; err != nil {
				return fmt.Errorf("lookup preset item %s: %w", pi.Name, err)
			}
			if count > 0 {
				continue
			}
			item := &models.Item{
				Name:        pi.Name,
				Description: pi.Description,
				Available:   pi.Available,
				OwnerID:     user.ID,
			}
			if err := db.Create(item).Error; err != nil {
				return fmt.Errorf("create preset item %s: %w", pi.Name, err)
			}
		}
	}
	return nil
}
