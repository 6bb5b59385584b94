// Package catalog loads requester profiles and candidate catalogs from YAML
// files and validates them before they reach the matching core.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/brandmatch/internal/model"
)

//go:embed sample.yaml
var sampleCatalog []byte

const (
	influencersKey = "influencers"
	brandsKey      = "brands"
)

// Catalog holds both candidate populations in file order.
type Catalog struct {
	Influencers []model.Profile
	Brands      []model.Profile
}

// Candidates returns the population searched for the given direction.
func (c *Catalog) Candidates(direction model.Direction) []model.Profile {
	if direction == model.InfluencerToBrand {
		return c.Brands
	}
	return c.Influencers
}

// Sample returns the built-in demo catalog.
func Sample() (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(sampleCatalog)); err != nil {
		return nil, fmt.Errorf("reading sample catalog: %w", err)
	}
	return fromViper(v, "sample catalog")
}

// Load reads a catalog file. Files may hold either or both populations.
func Load(path string) (*Catalog, error) {
	v, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return fromViper(v, path)
}

// LoadWithOverrides starts from the sample catalog and replaces each
// population that has a file configured.
func LoadWithOverrides(influencersPath, brandsPath string) (*Catalog, error) {
	c, err := Sample()
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(influencersPath); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c.Influencers = loaded.Influencers
	}

	if path := strings.TrimSpace(brandsPath); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c.Brands = loaded.Brands
	}

	return c, nil
}

// LoadProfile reads a single profile whose fields are top level keys.
func LoadProfile(path string, direction model.Direction) (model.Profile, error) {
	v, err := readFile(path)
	if err != nil {
		return model.Profile{}, err
	}

	var profile model.Profile
	if err := decode(v.AllSettings(), &profile); err != nil {
		return model.Profile{}, fmt.Errorf("decoding profile %s: %w", path, err)
	}

	requesterRole := brandsKey
	if direction == model.InfluencerToBrand {
		requesterRole = influencersKey
	}

	if err := Validate(profile, requesterRole); err != nil {
		return model.Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}

	return profile, nil
}

func readFile(path string) (*viper.Viper, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file path is empty")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return v, nil
}

func fromViper(v *viper.Viper, origin string) (*Catalog, error) {
	c := &Catalog{}

	for _, section := range []struct {
		key  string
		dest *[]model.Profile
	}{
		{key: influencersKey, dest: &c.Influencers},
		{key: brandsKey, dest: &c.Brands},
	} {
		raw := v.Get(section.key)
		if raw == nil {
			continue
		}

		var profiles []model.Profile
		if err := decode(raw, &profiles); err != nil {
			return nil, fmt.Errorf("decoding %s from %s: %w", section.key, origin, err)
		}

		for i, p := range profiles {
			if err := Validate(p, section.key); err != nil {
				return nil, fmt.Errorf("%s[%d] in %s: %w", section.key, i, origin, err)
			}
		}

		*section.dest = profiles
	}

	return c, nil
}

func decode(input any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

var validate = validator.New()

// Validate checks field ranges and the fields each role needs for scoring.
func Validate(p model.Profile, role string) error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if strings.TrimSpace(p.NicheOrValues) == "" {
		switch role {
		case influencersKey:
			return errors.New("niche_or_values is required for influencers")
		case brandsKey:
			return errors.New("niche_or_values is required for brands")
		}
	}

	return nil
}
