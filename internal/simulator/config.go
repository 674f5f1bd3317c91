// Copyright 2025 EURECOM
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Contributors:
//   Giulio CAROTA
//   Thomas DU
//   Adlen KSENTINI

package simulator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/models"
	"gitlab.eurecom.fr/open-exposure/fapisim/fapi-engine/internal/trafficgen"
)

const (
	defaultExecutorQueueSize = 1024
	defaultControlQueueSize  = 64
	// maxNofSlotsAhead bounds the message buffer to one frame at the highest numerology.
	maxNofSlotsAhead = 160
)

type AppConfig struct {
	HttpVersion   uint16 `yaml:"httpVersion"`
	OamPort       uint16 `yaml:"oamPort"`
	MetricsPort   uint16 `yaml:"metricsPort"`
	InitOnStartup bool   `yaml:"initOnStartup"`
	LogLevel      string `yaml:"logLevel"`
	/* Custom configuration parameters */
	Cells []CellProfile `yaml:"cells"`
}

// CellProfile describes one simulated cell: its data path sizing, its emulated UEs and the
// CONFIG.request sent to it when the simulation starts.
type CellProfile struct {
	ID                string            `yaml:"id" json:"id"`
	Numerology        uint8             `yaml:"numerology" json:"numerology"`
	L2NofSlotsAhead   int               `yaml:"l2NofSlotsAhead" json:"l2NofSlotsAhead"`
	ExecutorQueueSize int               `yaml:"executorQueueSize,omitempty" json:"executorQueueSize,omitempty"`
	NumOfUe           int               `yaml:"numOfUe" json:"numOfUe"`
	TrafficProfile    string            `yaml:"trafficProfile" json:"trafficProfile"`
	MaxUesPerSlot     int               `yaml:"maxUesPerSlot,omitempty" json:"maxUesPerSlot,omitempty"`
	Seed              uint64            `yaml:"seed,omitempty" json:"seed,omitempty"`
	CellConfig        models.CellConfig `yaml:"cellConfig" json:"cellConfig"`
}

func InitConfig(configPath string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg := AppConfig{}
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate returns every problem found in the configuration, joined.
func (cfg *AppConfig) Validate() error {
	var errs []error
	if cfg.OamPort == 0 {
		errs = append(errs, errors.New("oamPort is required"))
	}
	if cfg.HttpVersion != 0 && cfg.HttpVersion != 1 && cfg.HttpVersion != 2 {
		errs = append(errs, fmt.Errorf("httpVersion %d is not supported", cfg.HttpVersion))
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown logLevel %q", cfg.LogLevel))
	}
	if cfg.InitOnStartup && len(cfg.Cells) == 0 {
		errs = append(errs, errors.New("when initializing from startup, at least one cell must be defined"))
	}
	errs = append(errs, validateCells(cfg.Cells))
	return errors.Join(errs...)
}

func validateCells(cells []CellProfile) error {
	var errs []error
	seen := make(map[string]bool, len(cells))
	for i := range cells {
		if err := cells[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("cells[%d]: %w", i, err))
		}
		if seen[cells[i].ID] {
			errs = append(errs, fmt.Errorf("cells[%d]: duplicate cell id %q", i, cells[i].ID))
		}
		seen[cells[i].ID] = true
	}
	return errors.Join(errs...)
}

func (p *CellProfile) Validate() error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if p.Numerology > models.MaxNumerology {
		errs = append(errs, fmt.Errorf("numerology %d is above %d", p.Numerology, models.MaxNumerology))
	}
	if n := p.CellConfig.Numerology(); n != p.Numerology {
		errs = append(errs, fmt.Errorf("cellConfig.ssb.scsCommon %d does not match numerology %d", n, p.Numerology))
	}
	if p.L2NofSlotsAhead < 0 || p.L2NofSlotsAhead > maxNofSlotsAhead {
		errs = append(errs, fmt.Errorf("l2NofSlotsAhead %d is out of [0, %d]", p.L2NofSlotsAhead, maxNofSlotsAhead))
	}
	if p.ExecutorQueueSize < 0 {
		errs = append(errs, fmt.Errorf("executorQueueSize %d is negative", p.ExecutorQueueSize))
	}
	if p.NumOfUe < 0 {
		errs = append(errs, fmt.Errorf("numOfUe %d is negative", p.NumOfUe))
	}
	if p.NumOfUe > 0 && !trafficgen.ValidProfile(p.TrafficProfile) {
		errs = append(errs, fmt.Errorf("trafficProfile %q is not one of %v", p.TrafficProfile, trafficgen.Profiles()))
	}
	return errors.Join(errs...)
}

func (p *CellProfile) executorQueueSize() int {
	if p.ExecutorQueueSize == 0 {
		return defaultExecutorQueueSize
	}
	return p.ExecutorQueueSize
}

func (cfg *AppConfig) Dumps() string {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Sprintf("<unprintable config: %v>", err)
	}
	return string(d)
}
