package output

import (
	"github.com/fiplan/goal-tracker/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the plan report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	return yaml.Marshal(report)
}
