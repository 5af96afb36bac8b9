package config

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/market-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry exposes the upstream data source profiles of an ini file:
//
//	[default]
//	host      = https://api.example.com/v1
//	token     = ...
//	rows_path = $.data
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (domain.SourceConfig, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load sources file %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

// NewRegistryFromBytes builds a registry from ini content held in memory.
func NewRegistryFromBytes(data []byte) (Registry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse sources: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if section.HasKey("host") {
			profiles = append(profiles, section.Name())
		}
	}
	sort.Strings(profiles)
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (domain.SourceConfig, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil || !section.HasKey("host") {
		return domain.SourceConfig{}, fmt.Errorf("profile %s not found", profile)
	}

	return domain.SourceConfig{
		Name:     profile,
		Host:     section.Key("host").String(),
		Token:    section.Key("token").String(),
		RowsPath: section.Key("rows_path").String(),
	}, nil
}
