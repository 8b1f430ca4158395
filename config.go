package sdk

import (
	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/kelseyhightower/envconfig"
)

// LoadFromEnv reads the verifier configuration from the environment.
// Variable names are listed in constant/env.go.
func LoadFromEnv() (model.Config, error) {
	var cfg model.Config

	if err := envconfig.Process("", &cfg); err != nil {
		return model.Config{}, err
	}

	return cfg, nil
}
